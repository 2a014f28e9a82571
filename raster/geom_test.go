package raster

import (
	"testing"

	"github.com/glyphwright/rasterfont/truetype"
)

func squarePoints() []truetype.RawPoint {
	return []truetype.RawPoint{
		{X: 0, Y: 0, OnCurve: true, StartOfContour: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: true},
		{X: 0, Y: 10, OnCurve: true, EndOfContour: true},
	}
}

func TestFlattenDropsHorizontalEdges(t *testing.T) {
	lines := Flatten(squarePoints(), 0, 0, 10, true)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2 (the two vertical edges; horizontal ones have y0==y1 and are dropped)", len(lines))
	}
	for _, l := range lines {
		if l.Y0 == l.Y1 {
			t.Errorf("line %+v has y0==y1, should have been dropped", l)
		}
	}
}

func TestFlattenMirrorsByDefault(t *testing.T) {
	unmirrored := Flatten(squarePoints(), 0, 0, 10, true)
	mirrored := Flatten(squarePoints(), 0, 0, 10, false)
	for i := range unmirrored {
		if unmirrored[i].Y0 == mirrored[i].Y0 && unmirrored[i].Y1 == mirrored[i].Y1 {
			t.Errorf("line %d unchanged by mirroring: %+v", i, unmirrored[i])
		}
	}
}

func TestFlattenTranslatesToOrigin(t *testing.T) {
	points := squarePoints()
	for i := range points {
		points[i].X += 5
		points[i].Y += 5
	}
	lines := Flatten(points, 5, 5, 15, true)
	for _, l := range lines {
		if l.X0 < 0 || l.X1 < 0 || l.Y0 < 0 || l.Y1 < 0 {
			t.Errorf("line %+v has a negative coordinate after translating (xmin,ymin)->(0,0)", l)
		}
	}
}

func TestSubdivideQuadraticEmitsFinalSegment(t *testing.T) {
	b := &outlineBuilder{}
	b.subdivide(point{0, 0}, point{5, 10}, point{10, 0})
	if len(b.lines) == 0 {
		t.Fatal("subdivide produced no line segments")
	}
	last := b.lines[len(b.lines)-1]
	if last.x1 != 10 || last.y1 != 0 {
		t.Errorf("final segment endpoint = (%v,%v), want (10,0)", last.x1, last.y1)
	}
}
