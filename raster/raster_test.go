package raster

import (
	"testing"

	"github.com/glyphwright/rasterfont/truetype"
)

func TestCanvasRasterizesFilledSquare(t *testing.T) {
	points := []truetype.RawPoint{
		{X: 0, Y: 0, OnCurve: true, StartOfContour: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: true},
		{X: 0, Y: 10, OnCurve: true, EndOfContour: true},
	}
	lines := Flatten(points, 0, 0, 10, true)

	c := NewCanvas(10, 10)
	c.Draw(lines, 1.0)
	bitmap := c.Bitmap()

	if len(bitmap) != 100 {
		t.Fatalf("len(bitmap) = %d, want 100", len(bitmap))
	}
	if v := bitmap[5*10+5]; v < 250 {
		t.Errorf("center pixel coverage = %d, want near 255 (fully inside the square)", v)
	}
	if v := bitmap[0]; v < 250 {
		t.Errorf("corner pixel (0,0) coverage = %d, want near 255", v)
	}
}

func TestCanvasEmptyOutlineIsBlank(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Draw(nil, 1.0)
	bitmap := c.Bitmap()
	for i, v := range bitmap {
		if v != 0 {
			t.Errorf("bitmap[%d] = %d, want 0 (no lines drawn)", i, v)
		}
	}
}

func TestNudgeFloorVersusCeilExclusive(t *testing.T) {
	if got := nudge(2.3, false); got != 2 {
		t.Errorf("nudge(2.3, floor) = %v, want 2", got)
	}
	if got := nudge(2.3, true); got != 2 {
		t.Errorf("nudge(2.3, ceilExclusive) = %v, want 2", got)
	}
	if got := nudge(2.0, false); got != 2 {
		t.Errorf("nudge(2.0, floor) = %v, want 2", got)
	}
	if got := nudge(2.0, true); got != 1 {
		t.Errorf("nudge(2.0, ceilExclusive) = %v, want 1 (strictly below an exact integer)", got)
	}
}
