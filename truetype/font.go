// Package truetype parses TrueType/OpenType font buffers into the raw
// tables and glyph outlines a rasterizer needs: the table directory, head,
// maxp, cmap, loca, glyf, and the optional horizontal/vertical metrics
// tables. It performs no rasterization and applies no scale; everything it
// returns is in font design units.
package truetype

// Font is the result of parsing a font buffer: every glyph's outline,
// decoded once, plus the tables needed to look one up and scale it.
type Font struct {
	UnitsPerEm int
	NumGlyphs  int
	Glyphs     []Glyph
	CharToGlyph map[uint32]uint32

	HasHorizontalMetrics bool
	HMetrics             []HMetric
	Ascent, Descent, LineGap int16

	HasVerticalMetrics bool
	VMetrics           []VMetric
	VAscent, VDescent, VLineGap int16
}

// Parse decodes a complete font buffer. It fails with a *ParseError if the
// buffer isn't a recognized sfnt, is missing a required table, or any table
// is truncated or internally inconsistent.
func Parse(data []byte) (*Font, error) {
	tables, err := readDirectory(data)
	if err != nil {
		return nil, err
	}

	headData, ok := tables["head"]
	if !ok {
		return nil, errMissingTable("head")
	}
	maxpData, ok := tables["maxp"]
	if !ok {
		return nil, errMissingTable("maxp")
	}
	cmapData, ok := tables["cmap"]
	if !ok {
		return nil, errMissingTable("cmap")
	}
	locaData, ok := tables["loca"]
	if !ok {
		return nil, errMissingTable("loca")
	}
	glyfData, ok := tables["glyf"]
	if !ok {
		return nil, errMissingTable("glyf")
	}

	hd, err := parseHead(headData)
	if err != nil {
		return nil, err
	}
	mp, err := parseMaxp(maxpData)
	if err != nil {
		return nil, err
	}
	numGlyphs := int(mp.numGlyphs)

	charToGlyph, err := parseCmap(cmapData)
	if err != nil {
		return nil, err
	}

	locs, err := parseLoca(locaData, numGlyphs, hd.indexToLocLong)
	if err != nil {
		return nil, err
	}

	glyphs := make([]Glyph, numGlyphs)
	for i := 0; i < numGlyphs; i++ {
		g, err := parseGlyph(glyfData, locs, i)
		if err != nil {
			return nil, err
		}
		glyphs[i] = g
	}

	f := &Font{
		UnitsPerEm:  int(hd.unitsPerEm),
		NumGlyphs:   numGlyphs,
		Glyphs:      glyphs,
		CharToGlyph: charToGlyph,
	}

	if hheaData, ok := tables["hhea"]; ok {
		hmtxData, ok := tables["hmtx"]
		if !ok {
			return nil, errMissingTable("hmtx")
		}
		hh, err := parseHhea(hheaData)
		if err != nil {
			return nil, err
		}
		metrics, err := parseHMetrics(hmtxData, numGlyphs, int(hh.numLongMetrics))
		if err != nil {
			return nil, err
		}
		f.HasHorizontalMetrics = true
		f.HMetrics = metrics
		f.Ascent, f.Descent, f.LineGap = hh.ascent, hh.descent, hh.lineGap
	}

	if vheaData, ok := tables["vhea"]; ok {
		vmtxData, ok := tables["vmtx"]
		if !ok {
			return nil, errMissingTable("vmtx")
		}
		vh, err := parseVhea(vheaData)
		if err != nil {
			return nil, err
		}
		metrics, err := parseVMetrics(vmtxData, numGlyphs, int(vh.numLongMetrics))
		if err != nil {
			return nil, err
		}
		f.HasVerticalMetrics = true
		f.VMetrics = metrics
		f.VAscent, f.VDescent, f.VLineGap = vh.ascent, vh.descent, vh.lineGap
	}

	return f, nil
}

// GlyphIndex looks up the glyph a rune maps to via the font's cmap,
// falling back to glyph 0 (.notdef) when the rune is absent.
func (f *Font) GlyphIndex(r rune) uint32 {
	if gid, ok := f.CharToGlyph[uint32(r)]; ok {
		return gid
	}
	return 0
}
