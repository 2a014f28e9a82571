// Package ximage adapts a *rasterfont.Font to golang.org/x/image/font.Face,
// for callers already built against that ecosystem's text-layout and
// image/draw compositing conventions. It is a thin wrapper: all parsing and
// rasterization is done by package rasterfont, this package only converts
// between its plain-float API and golang.org/x/image's fixed-point one.
package ximage

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/glyphwright/rasterfont"
)

// face implements golang.org/x/image/font.Face over a *rasterfont.Font at
// a fixed pixel size. Construct one with NewFace.
type face struct {
	f  *rasterfont.Font
	px float32
}

// NewFace returns a font.Face that rasterizes f at px pixels per em. The
// returned Face shares f's immutable parsed data; callers may create many
// faces at different sizes from one *rasterfont.Font.
func NewFace(f *rasterfont.Font, px float32) font.Face {
	return &face{f: f, px: px}
}

func (fc *face) Close() error { return nil }

func (fc *face) Metrics() font.Metrics {
	ascent := fixed.I(0)
	descent := fixed.I(0)
	if fc.f.HasHorizontalMetrics() {
		ascent = toFixed(fc.f.Ascent(fc.px))
		descent = toFixed(-fc.f.Descent(fc.px))
	}
	return font.Metrics{
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		XHeight:    ascent,
		CapHeight:  ascent,
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}

// Kern is always 0: kerning-pair ('kern') parsing is out of scope.
func (fc *face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (fc *face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	m := fc.f.Metrics(r, fc.px)
	return toFixed(m.AdvanceWidth), true
}

func (fc *face) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	m := fc.f.Metrics(r, fc.px)
	bounds := fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: toFixed(m.BearingLeft), Y: -toFixed(m.BearingTop)},
		Max: fixed.Point26_6{
			X: toFixed(m.BearingLeft) + fixed.I(m.Width),
			Y: -toFixed(m.BearingTop) + fixed.I(m.Height),
		},
	}
	return bounds, toFixed(m.AdvanceWidth), true
}

// Glyph rasterizes r and returns it as an *image.Alpha mask positioned so
// dot (the pen position, baseline-relative) lands at the glyph's origin.
func (fc *face) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	m, bitmap := fc.f.Rasterize(r, fc.px)
	advance := toFixed(m.AdvanceWidth)
	if bitmap == nil {
		return image.Rectangle{}, nil, image.Point{}, advance, true
	}
	mask := &image.Alpha{
		Pix:    bitmap,
		Stride: m.Width,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
	x0 := (dot.X + toFixed(m.BearingLeft)).Floor()
	y0 := (dot.Y - toFixed(m.BearingTop)).Floor()
	dr := image.Rect(x0, y0, x0+m.Width, y0+m.Height)
	return dr, mask, image.Point{}, advance, true
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
