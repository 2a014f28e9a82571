package rasterfont

import "testing"

// A small, self-contained TrueType buffer builder for integration tests:
// one glyph (.notdef, empty) plus a 10x10 square mapped from 'A'.

type buf struct{ b []byte }

func (w *buf) u8(v uint8) *buf   { w.b = append(w.b, v); return w }
func (w *buf) u16(v uint16) *buf { w.b = append(w.b, byte(v>>8), byte(v)); return w }
func (w *buf) i16(v int16) *buf  { return w.u16(uint16(v)) }
func (w *buf) u32(v uint32) *buf {
	w.b = append(w.b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return w
}

func buildSquareGlyphBytes() []byte {
	w := &buf{}
	w.i16(1)
	w.i16(0).i16(0).i16(10).i16(10)
	w.u16(3) // endPtsOfContours
	w.u16(0) // instructionLength
	flags := []uint8{0x37, 0x37, 0x37, 0x27}
	for _, f := range flags {
		w.u8(f)
	}
	for _, d := range []uint8{0, 10, 0, 10} {
		w.u8(d)
	}
	for _, d := range []uint8{0, 0, 10, 0} {
		w.u8(d)
	}
	return w.b
}

func buildTestFont(t *testing.T) []byte {
	t.Helper()
	square := buildSquareGlyphBytes()

	head := &buf{}
	head.u16(1).u16(0).u32(0).u32(0).u32(0x5F0F3CF5).u16(0).u16(1000)
	head.u32(0).u32(0).u32(0).u32(0)
	head.i16(0).i16(0).i16(10).i16(10)
	head.u16(0).u16(0).u16(0)
	head.i16(0).i16(0)

	maxp := &buf{}
	maxp.u32(0x00010000).u16(2)

	cmap := &buf{}
	cmap.u16(0).u16(1)
	cmap.u16(0).u16(3).u32(12)
	cmap.u16(0).u16(262).u16(0)
	for c := 0; c < 256; c++ {
		if c == 'A' {
			cmap.u8(1)
		} else {
			cmap.u8(0)
		}
	}

	loca := &buf{}
	loca.u16(0).u16(0).u16(uint16(len(square) / 2))

	tables := []struct {
		tag  string
		data []byte
	}{
		{"head", head.b},
		{"maxp", maxp.b},
		{"cmap", cmap.b},
		{"loca", loca.b},
		{"glyf", square},
	}

	dir := &buf{}
	dir.b = append(dir.b, 0x00, 0x01, 0x00, 0x00)
	dir.u16(uint16(len(tables)))
	dir.u16(0).u16(0).u16(0)
	headerLen := 12 + 16*len(tables)
	offset := headerLen
	type rec struct {
		tag          string
		offset, size int
	}
	var recs []rec
	for _, tb := range tables {
		recs = append(recs, rec{tb.tag, offset, len(tb.data)})
		offset += len(tb.data)
	}
	for _, r := range recs {
		dir.b = append(dir.b, r.tag[0], r.tag[1], r.tag[2], r.tag[3])
		dir.u32(0)
		dir.u32(uint32(r.offset))
		dir.u32(uint32(r.size))
	}
	for _, tb := range tables {
		dir.b = append(dir.b, tb.data...)
	}
	return dir.b
}

func TestNewFontAndRasterize(t *testing.T) {
	data := buildTestFont(t)
	f, err := NewFont(data, FontSettings{})
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	if f.UnitsPerEm() != 1000 {
		t.Errorf("UnitsPerEm() = %d, want 1000", f.UnitsPerEm())
	}
	if f.GlyphCount() != 2 {
		t.Errorf("GlyphCount() = %d, want 2", f.GlyphCount())
	}
	if idx := f.LookupGlyphIndex('A'); idx != 1 {
		t.Fatalf("LookupGlyphIndex('A') = %d, want 1", idx)
	}

	m := f.Metrics('A', 100)
	if m.Width != 1 || m.Height != 1 {
		// 10 units at unitsPerEm 1000, scaled to 100px => 1px.
		t.Errorf("Metrics('A', 100) = %+v, want Width=1 Height=1", m)
	}

	m, bitmap := f.Rasterize('A', 1000)
	if m.Width != 10 || m.Height != 10 {
		t.Fatalf("Rasterize metrics = %+v, want 10x10", m)
	}
	if len(bitmap) != 100 {
		t.Fatalf("len(bitmap) = %d, want 100", len(bitmap))
	}
	if bitmap[5*10+5] < 250 {
		t.Errorf("center pixel = %d, want near 255", bitmap[5*10+5])
	}
}

func TestRasterizeEmptyGlyphHasNoBitmap(t *testing.T) {
	data := buildTestFont(t)
	f, err := NewFont(data, FontSettings{})
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	m, bitmap := f.RasterizeIndexed(0, 1000) // .notdef, empty outline
	if bitmap != nil {
		t.Errorf("bitmap = %v, want nil for an empty glyph", bitmap)
	}
	if m.Width != 0 || m.Height != 0 {
		t.Errorf("metrics = %+v, want zero width/height", m)
	}
}

func TestNewFontRejectsGarbage(t *testing.T) {
	_, err := NewFont([]byte("not a font"), FontSettings{})
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrNotAFont {
		t.Fatalf("err = %v, want *ParseError{Kind: ErrNotAFont}", err)
	}
}
