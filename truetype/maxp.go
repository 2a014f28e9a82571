package truetype

// maxp holds the one field this parser needs from 'maxp': the glyph count.
// Both the 0.5 (CFF-flavored) and 1.0 (TrueType-flavored) table versions
// start with version then numGlyphs, so no version check is needed here.
type maxp struct {
	numGlyphs uint16
}

func parseMaxp(data []byte) (maxp, error) {
	r := newReader(data, "maxp")
	if err := r.skip(4); err != nil { // version
		return maxp{}, err
	}
	numGlyphs, err := r.u16()
	if err != nil {
		return maxp{}, err
	}
	return maxp{numGlyphs: numGlyphs}, nil
}
