// Package rasterfont parses a TrueType/OpenType font buffer and rasterizes
// individual glyphs into 8-bit grayscale coverage bitmaps at a requested
// pixel size. It does no text layout, shaping, or hinting: given a rune or
// glyph index and a size, it returns layout metrics and, where the glyph
// has ink, a bitmap.
package rasterfont

import (
	"math"

	"github.com/glyphwright/rasterfont/raster"
	"github.com/glyphwright/rasterfont/truetype"
)

// ParseError and its Kind are re-exported from the truetype package so
// callers never need to import it directly just to inspect why
// construction failed.
type ParseError = truetype.ParseError
type ErrorKind = truetype.Kind

const (
	ErrNotAFont             = truetype.NotAFont
	ErrTruncatedTable       = truetype.TruncatedTable
	ErrMissingRequiredTable = truetype.MissingRequiredTable
	ErrBadMagic             = truetype.BadMagic
	ErrBadHead              = truetype.BadHead
	ErrBadGlyphBounds       = truetype.BadGlyphBounds
	ErrUnsupportedCompound  = truetype.UnsupportedCompound
	ErrUnsupportedCharMap   = truetype.UnsupportedCharMap
)

// FontSettings configures how a Font is constructed from a buffer. The
// zero value is the ordinary default: mirror the outline so it renders
// with +y down.
type FontSettings struct {
	// FlipVertical, when true, skips the vertical mirror normally applied
	// to account for TrueType's y-up outline coordinates. Leave false to
	// get a bitmap laid out top-to-bottom like an image.
	FlipVertical bool
	// Scale is an optional performance hint: a caller that knows it will
	// only ever rasterize at one pixel size may set this so a future
	// implementation can skip work for sizes that will never be
	// requested. It has no effect on the metrics or bitmaps this
	// implementation produces.
	Scale float32
}

// Metrics describes a glyph's layout at a specific pixel size: its pixel
// bounding box and its advance.
type Metrics struct {
	Width, Height               int
	BearingLeft, BearingTop     float32
	AdvanceWidth, AdvanceHeight float32
}

type glyph struct {
	lines                       []raster.Line
	width, height               float32
	bearingLeft, bearingTop     float32
	advanceWidth, advanceHeight float32
}

// Font is a parsed, immutable font ready to rasterize glyphs from. It is
// safe for concurrent read-only use: Metrics and Rasterize calls share no
// mutable state, each allocating its own accumulator and bitmap.
type Font struct {
	unitsPerEm    float32
	glyphs        []glyph
	charToGlyph   map[uint32]uint32
	hasHMetrics   bool
	hasVMetrics   bool
	newLineWidth  float32
	newLineHeight float32
	ascent        float32
	descent       float32
}

// NewFont parses data and flattens every glyph's outline at unit scale, so
// Metrics and Rasterize calls never re-walk contour points. It fails with a
// *ParseError if data isn't a well-formed, supported font.
func NewFont(data []byte, settings FontSettings) (*Font, error) {
	raw, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	glyphs := make([]glyph, len(raw.Glyphs))
	for i, g := range raw.Glyphs {
		lines := raster.Flatten(g.Points, g.XMin, g.YMin, g.YMax, settings.FlipVertical)
		var aw, lsb, ah, tsb float32
		if raw.HasHorizontalMetrics {
			hm := raw.HMetrics[g.MetricsIndex]
			aw, lsb = float32(hm.AdvanceWidth), float32(hm.LeftSideBearing)
		}
		if raw.HasVerticalMetrics {
			vm := raw.VMetrics[g.MetricsIndex]
			ah, tsb = float32(vm.AdvanceHeight), float32(vm.TopSideBearing)
		}
		glyphs[i] = glyph{
			lines:         lines,
			width:         g.XMax - g.XMin,
			height:        g.YMax - g.YMin,
			bearingLeft:   lsb,
			bearingTop:    tsb,
			advanceWidth:  aw,
			advanceHeight: ah,
		}
	}

	f := &Font{
		unitsPerEm:  float32(raw.UnitsPerEm),
		glyphs:      glyphs,
		charToGlyph: raw.CharToGlyph,
		hasHMetrics: raw.HasHorizontalMetrics,
		hasVMetrics: raw.HasVerticalMetrics,
	}
	if raw.HasHorizontalMetrics {
		f.newLineHeight = float32(raw.Ascent) - float32(raw.Descent) + float32(raw.LineGap)
		f.ascent, f.descent = float32(raw.Ascent), float32(raw.Descent)
	}
	if raw.HasVerticalMetrics {
		f.newLineWidth = float32(raw.VAscent) - float32(raw.VDescent) + float32(raw.VLineGap)
	}
	return f, nil
}

// Ascent and Descent are the font's horizontal-layout vertical metrics,
// scaled to px. Both are 0 if the font has no horizontal metrics table.
func (f *Font) Ascent(px float32) float32  { return f.ascent * scaleFactor(px, f.unitsPerEm) }
func (f *Font) Descent(px float32) float32 { return f.descent * scaleFactor(px, f.unitsPerEm) }

// UnitsPerEm is the font's design-unit em square size, as declared in head.
func (f *Font) UnitsPerEm() int { return int(f.unitsPerEm) }

// GlyphCount is the number of glyphs the font defines, including .notdef.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// HasHorizontalMetrics reports whether the font carries hhea/hmtx.
func (f *Font) HasHorizontalMetrics() bool { return f.hasHMetrics }

// HasVerticalMetrics reports whether the font carries vhea/vmtx.
func (f *Font) HasVerticalMetrics() bool { return f.hasVMetrics }

// NewLineHeight is the recommended horizontal-layout line advance,
// ascent-descent+lineGap scaled to px, or 0 if the font has no horizontal
// metrics.
func (f *Font) NewLineHeight(px float32) float32 {
	return f.newLineHeight * scaleFactor(px, f.unitsPerEm)
}

// NewLineWidth is the recommended vertical-layout line advance, or 0 if the
// font has no vertical metrics.
func (f *Font) NewLineWidth(px float32) float32 {
	return f.newLineWidth * scaleFactor(px, f.unitsPerEm)
}

// LookupGlyphIndex maps a rune to a glyph index via the font's cmap,
// returning 0 (.notdef) if the rune isn't mapped.
func (f *Font) LookupGlyphIndex(r rune) int {
	if gid, ok := f.charToGlyph[uint32(r)]; ok {
		return int(gid)
	}
	return 0
}

func scaleFactor(px, unitsPerEm float32) float32 {
	if unitsPerEm == 0 {
		return 0
	}
	return px / unitsPerEm
}

func (f *Font) metricsFor(g *glyph, s float32) Metrics {
	return Metrics{
		Width:         int(math.Ceil(float64(s * g.width))),
		Height:        int(math.Ceil(float64(s * g.height))),
		BearingLeft:   s * g.bearingLeft,
		BearingTop:    s * g.bearingTop,
		AdvanceWidth:  s * g.advanceWidth,
		AdvanceHeight: s * g.advanceHeight,
	}
}

// Metrics returns r's layout metrics at the given pixel size.
func (f *Font) Metrics(r rune, px float32) Metrics {
	return f.MetricsIndexed(f.LookupGlyphIndex(r), px)
}

// MetricsIndexed returns the metrics for the glyph at index, at the given
// pixel size.
func (f *Font) MetricsIndexed(index int, px float32) Metrics {
	g := &f.glyphs[index]
	return f.metricsFor(g, scaleFactor(px, f.unitsPerEm))
}

// Rasterize returns r's metrics and grayscale coverage bitmap (row-major,
// Width*Height bytes, one byte of coverage per pixel) at the given pixel
// size. The bitmap is nil when the glyph has no ink at this size (an empty
// outline, or a pixel bounding box with a zero dimension).
func (f *Font) Rasterize(r rune, px float32) (Metrics, []byte) {
	return f.RasterizeIndexed(f.LookupGlyphIndex(r), px)
}

// RasterizeIndexed is Rasterize by glyph index instead of rune.
func (f *Font) RasterizeIndexed(index int, px float32) (Metrics, []byte) {
	g := &f.glyphs[index]
	s := scaleFactor(px, f.unitsPerEm)
	m := f.metricsFor(g, s)
	if m.Width <= 0 || m.Height <= 0 {
		return m, nil
	}
	canvas := raster.NewCanvas(m.Width, m.Height)
	canvas.Draw(g.lines, s)
	return m, canvas.Bitmap()
}
