package truetype

import "testing"

func buildHeadTable(unitsPerEm uint16, indexToLocFormat int16) []byte {
	w := &byteBuf{}
	w.u16(1).u16(0)      // majorVersion, minorVersion
	w.u32(0)             // fontRevision
	w.u32(0)             // checkSumAdjustment
	w.u32(headMagic)     // magicNumber
	w.u16(0)             // flags
	w.u16(unitsPerEm)    // unitsPerEm
	w.u32(0).u32(0)      // created (int64, high+low halves)
	w.u32(0).u32(0)      // modified
	w.i16(0).i16(0).i16(10).i16(10) // xMin, yMin, xMax, yMax
	w.u16(0).u16(0).u16(0)          // macStyle, lowestRecPPEM, fontDirectionHint
	w.i16(indexToLocFormat)
	w.i16(0) // glyphDataFormat
	return w.b
}

func buildMaxpTable(numGlyphs uint16) []byte {
	w := &byteBuf{}
	w.u32(0x00010000).u16(numGlyphs)
	return w.b
}

func buildFormat0CmapTable(mapping map[byte]byte) []byte {
	w := &byteBuf{}
	w.u16(0).u16(1) // version, numTables
	w.u16(0).u16(3).u32(12) // platformID, encodingID, offset
	w.u16(0).u16(262).u16(0) // format, length, language
	for c := 0; c < 256; c++ {
		w.u8(mapping[byte(c)])
	}
	return w.b
}

func buildShortLocaTable(offsetsInWords []uint16) []byte {
	w := &byteBuf{}
	for _, o := range offsetsInWords {
		w.u16(o)
	}
	return w.b
}

func buildDirectory(tables map[string][]byte) []byte {
	w := &byteBuf{}
	w.b = append(w.b, 0x00, 0x01, 0x00, 0x00) // sfnt version tag

	order := []string{"head", "maxp", "cmap", "loca", "glyf"}
	present := make([]string, 0, len(order))
	for _, tag := range order {
		if _, ok := tables[tag]; ok {
			present = append(present, tag)
		}
	}
	w.u16(uint16(len(present)))
	w.u16(0).u16(0).u16(0) // searchRange, entrySelector, rangeShift

	headerLen := 12 + 16*len(present)
	offset := headerLen
	type rec struct {
		tag    string
		offset int
		length int
	}
	var recs []rec
	for _, tag := range present {
		data := tables[tag]
		recs = append(recs, rec{tag, offset, len(data)})
		offset += len(data)
	}
	for _, rc := range recs {
		w.b = append(w.b, rc.tag[0], rc.tag[1], rc.tag[2], rc.tag[3])
		w.u32(0) // checksum, unchecked by this parser
		w.u32(uint32(rc.offset))
		w.u32(uint32(rc.length))
	}
	for _, tag := range present {
		w.b = append(w.b, tables[tag]...)
	}
	return w.b
}

func TestParseMinimalFont(t *testing.T) {
	square := buildSquareGlyph()
	tables := map[string][]byte{
		"head": buildHeadTable(1000, 0),
		"maxp": buildMaxpTable(2),
		"cmap": buildFormat0CmapTable(map[byte]byte{'A': 1}),
		"loca": buildShortLocaTable([]uint16{0, 0, uint16(len(square) / 2)}),
		"glyf": square,
	}
	data := buildDirectory(tables)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.UnitsPerEm != 1000 {
		t.Errorf("UnitsPerEm = %d, want 1000", f.UnitsPerEm)
	}
	if f.NumGlyphs != 2 {
		t.Errorf("NumGlyphs = %d, want 2", f.NumGlyphs)
	}
	if gid := f.GlyphIndex('A'); gid != 1 {
		t.Errorf("GlyphIndex('A') = %d, want 1", gid)
	}
	if gid := f.GlyphIndex('Z'); gid != 0 {
		t.Errorf("GlyphIndex('Z') = %d, want 0 (.notdef)", gid)
	}
	if len(f.Glyphs[0].Points) != 0 {
		t.Errorf("glyph 0 (.notdef) has %d points, want 0", len(f.Glyphs[0].Points))
	}
	if len(f.Glyphs[1].Points) != 4 {
		t.Errorf("glyph 1 has %d points, want 4", len(f.Glyphs[1].Points))
	}
	if f.HasHorizontalMetrics {
		t.Errorf("HasHorizontalMetrics = true, want false (no hhea/hmtx supplied)")
	}
}

func TestParseRejectsMissingTable(t *testing.T) {
	square := buildSquareGlyph()
	tables := map[string][]byte{
		"head": buildHeadTable(1000, 0),
		"maxp": buildMaxpTable(2),
		"loca": buildShortLocaTable([]uint16{0, 0, uint16(len(square) / 2)}),
		"glyf": square,
	}
	_, err := Parse(buildDirectory(tables))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != MissingRequiredTable || pe.Tag != "cmap" {
		t.Fatalf("err = %v, want *ParseError{Kind: MissingRequiredTable, Tag: \"cmap\"}", err)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	head := buildHeadTable(1000, 0)
	head[12], head[13], head[14], head[15] = 0, 0, 0, 0 // clobber magicNumber
	square := buildSquareGlyph()
	tables := map[string][]byte{
		"head": head,
		"maxp": buildMaxpTable(2),
		"cmap": buildFormat0CmapTable(nil),
		"loca": buildShortLocaTable([]uint16{0, 0, uint16(len(square) / 2)}),
		"glyf": square,
	}
	_, err := Parse(buildDirectory(tables))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != BadMagic {
		t.Fatalf("err = %v, want *ParseError{Kind: BadMagic}", err)
	}
}

func TestParseRejectsNonFontData(t *testing.T) {
	_, err := Parse([]byte("not a font at all"))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != NotAFont {
		t.Fatalf("err = %v, want *ParseError{Kind: NotAFont}", err)
	}
}
