package truetype

const headMagic = 0x5F0F3CF5

// head holds the fields of the 'head' table this parser needs: the
// em-square size and bounding box, and the loca entry width.
type head struct {
	unitsPerEm      uint16
	xMin, yMin      int16
	xMax, yMax      int16
	indexToLocLong  bool
}

func parseHead(data []byte) (head, error) {
	r := newReader(data, "head")
	if err := r.skip(12); err != nil { // majorVersion, minorVersion, fontRevision, checkSumAdjustment
		return head{}, err
	}
	magic, err := r.u32()
	if err != nil {
		return head{}, err
	}
	if magic != headMagic {
		return head{}, &ParseError{Kind: BadMagic, GlyphID: -1}
	}
	if err := r.skip(2); err != nil { // flags
		return head{}, err
	}
	unitsPerEm, err := r.u16()
	if err != nil {
		return head{}, err
	}
	if unitsPerEm == 0 {
		return head{}, &ParseError{Kind: BadHead, GlyphID: -1, detail: "unitsPerEm is zero"}
	}
	if err := r.skip(16); err != nil { // created, modified (two int64)
		return head{}, err
	}
	xMin, err := r.i16()
	if err != nil {
		return head{}, err
	}
	yMin, err := r.i16()
	if err != nil {
		return head{}, err
	}
	xMax, err := r.i16()
	if err != nil {
		return head{}, err
	}
	yMax, err := r.i16()
	if err != nil {
		return head{}, err
	}
	if err := r.skip(6); err != nil { // macStyle, lowestRecPPEM, fontDirectionHint
		return head{}, err
	}
	indexToLocFormat, err := r.i16()
	if err != nil {
		return head{}, err
	}
	if indexToLocFormat != 0 && indexToLocFormat != 1 {
		return head{}, &ParseError{Kind: BadHead, GlyphID: -1, detail: "indexToLocFormat out of range"}
	}
	return head{
		unitsPerEm:     unitsPerEm,
		xMin:           xMin,
		yMin:           yMin,
		xMax:           xMax,
		yMax:           yMax,
		indexToLocLong: indexToLocFormat == 1,
	}, nil
}
