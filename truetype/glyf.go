package truetype

// Simple glyph point flags, per the 'glyf' table format.
const (
	flagOnCurvePoint         = 0x01
	flagXShortVector         = 0x02
	flagYShortVector         = 0x04
	flagRepeat               = 0x08
	flagXIsSameOrPositive    = 0x10
	flagYIsSameOrPositive    = 0x20
)

// Compound glyph component flags.
const (
	flagArgsAreWords            = 0x0001
	flagArgsAreXYValues         = 0x0002
	flagWeHaveAScale            = 0x0008
	flagMoreComponents          = 0x0020
	flagWeHaveXAndYScale        = 0x0040
	flagWeHaveATwoByTwo         = 0x0080
	flagWeHaveInstructions      = 0x0100
	flagUseMyMetrics            = 0x0200
	flagScaledComponentOffset   = 0x0800
	flagUnscaledComponentOffset = 0x1000
)

// maxCompoundRecursion bounds how many levels of compound-glyph nesting
// parseGlyph will follow. The format this parser was distilled from places
// no limit on this; a font with a component cycle would otherwise recurse
// or loop forever.
const maxCompoundRecursion = 8

// RawPoint is one point of a glyph's outline in font design units, before
// curve flattening: its position, its on/off-curve flag, and whether it
// opens or closes a contour.
type RawPoint struct {
	X, Y                       float32
	OnCurve                    bool
	StartOfContour, EndOfContour bool
}

// Glyph is a parsed 'glyf' entry: its bounding box (the header's, widened
// to cover every point) and the raw points of every contour, concatenated. MetricsIndex is the glyph id whose
// hmtx/vmtx entry supplies this glyph's advance and bearing — itself for a
// simple glyph or an ordinary compound, or a component's id when that
// component carries USE_MY_METRICS.
type Glyph struct {
	NumContours            int16
	XMin, YMin, XMax, YMax float32
	MetricsIndex           int
	Points                 []RawPoint
}

func parseGlyph(glyf []byte, locs []glyphLocation, index int) (Glyph, error) {
	return parseGlyphRecursive(glyf, locs, index, 0)
}

func parseGlyphRecursive(glyf []byte, locs []glyphLocation, index, depth int) (Glyph, error) {
	if index < 0 || index >= len(locs) {
		return Glyph{}, errBadBounds(index)
	}
	loc := locs[index]
	if loc.start == loc.end {
		return Glyph{MetricsIndex: index}, nil
	}
	if depth > maxCompoundRecursion {
		return Glyph{}, errUnsupportedCompound(index, "compound glyph nesting too deep")
	}
	if loc.start > loc.end || uint64(loc.end) > uint64(len(glyf)) {
		return Glyph{}, errTruncated("glyf")
	}
	r := newReader(glyf[loc.start:loc.end], "glyf")

	numContours, err := r.i16()
	if err != nil {
		return Glyph{}, err
	}
	xMin, err := r.i16()
	if err != nil {
		return Glyph{}, err
	}
	yMin, err := r.i16()
	if err != nil {
		return Glyph{}, err
	}
	xMax, err := r.i16()
	if err != nil {
		return Glyph{}, err
	}
	yMax, err := r.i16()
	if err != nil {
		return Glyph{}, err
	}

	g := Glyph{NumContours: numContours, MetricsIndex: index}
	if numContours >= 0 {
		points, err := parseSimpleGlyph(r, numContours)
		if err != nil {
			return Glyph{}, err
		}
		g.Points = points
	} else {
		points, metricsIndex, err := parseCompoundGlyph(r, glyf, locs, index, depth)
		if err != nil {
			return Glyph{}, err
		}
		g.Points = points
		g.MetricsIndex = metricsIndex
	}

	// A degenerate sentinel bbox (used by some compound glyphs that carry
	// no bbox of their own) is treated as an empty 0,0,0,0 box rather than
	// the nonsensical box it describes literally.
	var fxMin, fyMin, fxMax, fyMax float32
	if xMin == 32767 && yMin == 32767 && xMax == -32767 && yMax == -32767 {
		fxMin, fyMin, fxMax, fyMax = 0, 0, 0, 0
	} else if xMin > xMax || yMin > yMax {
		return Glyph{}, errBadBounds(index)
	} else {
		fxMin, fyMin, fxMax, fyMax = float32(xMin), float32(yMin), float32(xMax), float32(yMax)
	}

	// The header bbox is only a hint: off-curve control points and
	// compound-transformed points can lie outside it, so widen it to cover
	// every point this glyph actually produced.
	for _, p := range g.Points {
		if p.X < fxMin {
			fxMin = p.X
		}
		if p.X > fxMax {
			fxMax = p.X
		}
		if p.Y < fyMin {
			fyMin = p.Y
		}
		if p.Y > fyMax {
			fyMax = p.Y
		}
	}
	g.XMin, g.YMin, g.XMax, g.YMax = fxMin, fyMin, fxMax, fyMax
	return g, nil
}

func parseSimpleGlyph(r *reader, numContours int16) ([]RawPoint, error) {
	endPts := make([]uint16, numContours)
	for i := range endPts {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		endPts[i] = v
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}

	instructionLength, err := r.u16()
	if err != nil {
		return nil, err
	}
	if err := r.skip(int(instructionLength)); err != nil {
		return nil, err
	}

	flags := make([]uint8, numPoints)
	for i := 0; i < numPoints; {
		flag, err := r.u8()
		if err != nil {
			return nil, err
		}
		flags[i] = flag
		i++
		if flag&flagRepeat != 0 {
			count, err := r.u8()
			if err != nil {
				return nil, err
			}
			for j := uint8(0); j < count && i < numPoints; j++ {
				flags[i] = flag
				i++
			}
		}
	}

	xs := make([]float32, numPoints)
	var x int32
	for i, flag := range flags {
		if flag&flagXShortVector != 0 {
			d, err := r.u8()
			if err != nil {
				return nil, err
			}
			if flag&flagXIsSameOrPositive != 0 {
				x += int32(d)
			} else {
				x -= int32(d)
			}
		} else if flag&flagXIsSameOrPositive == 0 {
			d, err := r.i16()
			if err != nil {
				return nil, err
			}
			x += int32(d)
		}
		xs[i] = float32(x)
	}

	ys := make([]float32, numPoints)
	var y int32
	for i, flag := range flags {
		if flag&flagYShortVector != 0 {
			d, err := r.u8()
			if err != nil {
				return nil, err
			}
			if flag&flagYIsSameOrPositive != 0 {
				y += int32(d)
			} else {
				y -= int32(d)
			}
		} else if flag&flagYIsSameOrPositive == 0 {
			d, err := r.i16()
			if err != nil {
				return nil, err
			}
			y += int32(d)
		}
		ys[i] = float32(y)
	}

	points := make([]RawPoint, numPoints)
	contour := 0
	contourStart := 0
	for i := 0; i < numPoints; i++ {
		isStart := i == contourStart
		isEnd := contour < len(endPts) && i == int(endPts[contour])
		points[i] = RawPoint{
			X:              xs[i],
			Y:              ys[i],
			OnCurve:        flags[i]&flagOnCurvePoint != 0,
			StartOfContour: isStart,
			EndOfContour:   isEnd,
		}
		if isEnd {
			contour++
			contourStart = i + 1
		}
	}
	return points, nil
}

func parseCompoundGlyph(r *reader, glyf []byte, locs []glyphLocation, selfIndex, depth int) ([]RawPoint, int, error) {
	metricsIndex := selfIndex
	var points []RawPoint
	for {
		flags, err := r.u16()
		if err != nil {
			return nil, 0, err
		}
		componentIndex, err := r.u16()
		if err != nil {
			return nil, 0, err
		}

		var dx, dy float32
		if flags&flagArgsAreXYValues == 0 {
			return nil, 0, errUnsupportedCompound(selfIndex, "matched point number component placement is not supported")
		}
		if flags&flagArgsAreWords != 0 {
			a, err := r.i16()
			if err != nil {
				return nil, 0, err
			}
			b, err := r.i16()
			if err != nil {
				return nil, 0, err
			}
			dx, dy = float32(a), float32(b)
		} else {
			a, err := r.i8()
			if err != nil {
				return nil, 0, err
			}
			b, err := r.i8()
			if err != nil {
				return nil, 0, err
			}
			dx, dy = float32(a), float32(b)
		}

		a, b, c, d := float32(1), float32(0), float32(0), float32(1)
		switch {
		case flags&flagWeHaveATwoByTwo != 0:
			if a, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
			if b, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
			if c, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
			if d, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
		case flags&flagWeHaveXAndYScale != 0:
			if a, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
			if d, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
		case flags&flagWeHaveAScale != 0:
			if a, err = r.f2dot14(); err != nil {
				return nil, 0, err
			}
			d = a
		}

		if flags&flagScaledComponentOffset != 0 && flags&flagUnscaledComponentOffset == 0 {
			return nil, 0, errUnsupportedCompound(selfIndex, "scaled component offset without unscaled component offset is not supported")
		}

		child, err := parseGlyphRecursive(glyf, locs, int(componentIndex), depth+1)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range child.Points {
			points = append(points, RawPoint{
				X:              a*p.X + c*p.Y + dx,
				Y:              b*p.X + d*p.Y + dy,
				OnCurve:        p.OnCurve,
				StartOfContour: p.StartOfContour,
				EndOfContour:   p.EndOfContour,
			})
		}
		if flags&flagUseMyMetrics != 0 {
			metricsIndex = int(componentIndex)
		}
		if flags&flagMoreComponents == 0 {
			if flags&flagWeHaveInstructions != 0 {
				n, err := r.u16()
				if err != nil {
					return nil, 0, err
				}
				if err := r.skip(int(n)); err != nil {
					return nil, 0, err
				}
			}
			break
		}
	}
	return points, metricsIndex, nil
}
