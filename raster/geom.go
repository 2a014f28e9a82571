// Package raster turns a glyph's on/off-curve contour points into an
// anti-aliased grayscale bitmap: quadratic Bézier flattening into straight
// line segments, then an analytic-area scanline accumulator that turns
// those segments into signed coverage without ever sampling a pixel center.
package raster

import (
	"math"

	"github.com/glyphwright/rasterfont/truetype"
)

const (
	maxAngleDegrees  = 17.0
	subdivisionSteps = 20
	subdivisionDelta = 1.0 / (1.0 + subdivisionSteps)
)

// Line is one flattened edge, in the coordinate system the accumulator
// scans: already translated so the glyph's bounding box starts at the
// origin, and (unless the font was loaded with FlipVertical) mirrored so
// +y points down. The four nudge fields are precomputed from the segment's
// direction so the scanline DDA can pick its first and last grid cell
// without a conditional in the hot loop.
type Line struct {
	X0, Y0, X1, Y1 float32

	xFirstAdj, yFirstAdj     float32
	xStartCeil, yStartCeil   bool
	xEndCeil, yEndCeil       bool
}

func newLine(x0, y0, x1, y1 float32) Line {
	l := Line{X0: x0, Y0: y0, X1: x1, Y1: y1}
	l.xStartCeil = x1 < x0
	if !l.xStartCeil {
		l.xFirstAdj = 1
	}
	l.yStartCeil = y1 < y0
	if !l.yStartCeil {
		l.yFirstAdj = 1
	}
	l.xEndCeil = x1 > x0
	l.yEndCeil = y1 > y0
	return l
}

// nudge rounds v down to the containing grid line (floor), or — when
// ceilExclusive is set — to the grid line strictly below v, which is
// floor(v)-1 on the (common, here) case where v lands exactly on an
// integer. Scanning a segment whose direction reverses at that exact
// boundary needs the "cell to the other side" answer, not floor(v) itself.
func nudge(v float32, ceilExclusive bool) float32 {
	f := math.Floor(float64(v))
	if ceilExclusive && f == float64(v) {
		f--
	}
	return float32(f)
}

type point struct{ x, y float32 }

func mid(a, b point) point {
	return point{(a.x + b.x) / 2, (a.y + b.y) / 2}
}

func quadAt(t float32, p0, c, p1 point) point {
	mt := 1 - t
	return point{
		x: mt*mt*p0.x + 2*mt*t*c.x + t*t*p1.x,
		y: mt*mt*p0.y + 2*mt*t*c.y + t*t*p1.y,
	}
}

func quadTangentAngle(t float32, p0, c, p1 point) float32 {
	mt := 1 - t
	dx := 2*mt*(c.x-p0.x) + 2*t*(p1.x-c.x)
	dy := 2*mt*(c.y-p0.y) + 2*t*(p1.y-c.y)
	return float32(math.Atan2(float64(dy), float64(dx)))
}

func angleDiffDegrees(a, b float32) float32 {
	d := float64(a - b)
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	deg := d * 180 / math.Pi
	if deg < 0 {
		deg = -deg
	}
	return float32(deg)
}

// outlineBuilder accumulates raw (untranslated, unmirrored) line segments
// for a glyph as its contours are walked.
type outlineBuilder struct {
	lines []rawLine
}

type rawLine struct {
	x0, y0, x1, y1 float32
}

func (b *outlineBuilder) line(p0, p1 point) {
	if p0.y == p1.y {
		return
	}
	b.lines = append(b.lines, rawLine{p0.x, p0.y, p1.x, p1.y})
}

// subdivide walks the quadratic Bézier (p0, control, p1) in 20 uniform
// parameter steps, emitting a new segment from the last emission anchor
// whenever the tangent has turned more than 17° since that anchor, and
// always emits a final segment into p1.
func (b *outlineBuilder) subdivide(p0, control, p1 point) {
	anchor := p0
	lastAngle := quadTangentAngle(0, p0, control, p1)
	for k := 1; k <= subdivisionSteps; k++ {
		t := float32(k) * subdivisionDelta
		angle := quadTangentAngle(t, p0, control, p1)
		if angleDiffDegrees(angle, lastAngle) > maxAngleDegrees {
			cur := quadAt(t, p0, control, p1)
			b.line(anchor, cur)
			anchor = cur
			lastAngle = angle
		}
	}
	b.line(anchor, p1)
}

// Flatten builds the flattened, rasterizer-ready line list for one glyph's
// contour points: it walks each contour's (previous, current, next)
// triples, emits straight segments between consecutive on-curve points and
// adaptively-subdivided quadratic Béziers around off-curve control points,
// then translates the result so (xmin, ymin) lands at the origin and
// mirrors it vertically unless flipVertical is set.
func Flatten(points []truetype.RawPoint, xmin, ymin, ymax float32, flipVertical bool) []Line {
	b := &outlineBuilder{}
	start := 0
	for start < len(points) {
		end := start
		for end < len(points) && !points[end].EndOfContour {
			end++
		}
		if end < len(points) {
			end++ // include the EndOfContour point itself
		}
		flattenContour(b, points[start:end])
		start = end
	}

	height := ymax - ymin
	lines := make([]Line, 0, len(b.lines))
	for _, rl := range b.lines {
		x0, y0 := rl.x0-xmin, rl.y0-ymin
		x1, y1 := rl.x1-xmin, rl.y1-ymin
		if !flipVertical {
			y0 = height - y0
			y1 = height - y1
		}
		if y0 == y1 {
			continue
		}
		lines = append(lines, newLine(x0, y0, x1, y1))
	}
	return lines
}

func flattenContour(b *outlineBuilder, pts []truetype.RawPoint) {
	n := len(pts)
	if n == 0 {
		return
	}
	pt := func(i int) point { p := pts[i]; return point{p.X, p.Y} }
	onCurve := func(i int) bool { return pts[i].OnCurve }

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		if onCurve(i) && onCurve(next) {
			b.line(pt(i), pt(next))
			continue
		}
		if onCurve(i) {
			continue
		}
		var startPt point
		if onCurve(prev) {
			startPt = pt(prev)
		} else {
			startPt = mid(pt(prev), pt(i))
		}
		var endPt point
		if onCurve(next) {
			endPt = pt(next)
		} else {
			endPt = mid(pt(i), pt(next))
		}
		b.subdivide(startPt, pt(i), endPt)
	}
}
