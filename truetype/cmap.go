package truetype

// cmapRecord is one entry of the cmap table's header: a platform/encoding
// pair and the byte offset (from the start of the cmap table) of its
// subtable.
type cmapRecord struct {
	platformID, encodingID uint16
	offset                 uint32
}

func readCmapRecords(data []byte) ([]cmapRecord, error) {
	r := newReader(data, "cmap")
	if err := r.skip(2); err != nil { // version
		return nil, err
	}
	numTables, err := r.u16()
	if err != nil {
		return nil, err
	}
	records := make([]cmapRecord, numTables)
	for i := range records {
		platformID, err := r.u16()
		if err != nil {
			return nil, err
		}
		encodingID, err := r.u16()
		if err != nil {
			return nil, err
		}
		offset, err := r.u32()
		if err != nil {
			return nil, err
		}
		records[i] = cmapRecord{platformID: platformID, encodingID: encodingID, offset: offset}
	}
	return records, nil
}

func subtableFormat(data []byte, rec cmapRecord) (uint16, error) {
	if uint64(rec.offset)+2 > uint64(len(data)) {
		return 0, errTruncated("cmap")
	}
	return uint16(data[rec.offset])<<8 | uint16(data[rec.offset+1]), nil
}

var supportedCmapFormats = map[uint16]bool{0: true, 4: true, 6: true, 10: true, 12: true, 13: true}

// selectCmapSubtable picks the subtable parseCmap will decode, preferring
// (in order): a Unicode-platform table in format 4 or 12, a Microsoft
// platform table (specific id 1 or 10) in format 4 or 12, then the first
// record in the file in any supported format.
func selectCmapSubtable(data []byte, records []cmapRecord) (cmapRecord, uint16, error) {
	isIdeal := func(format uint16) bool { return format == 4 || format == 12 }

	for _, rec := range records {
		if rec.platformID != 0 {
			continue
		}
		format, err := subtableFormat(data, rec)
		if err != nil {
			continue
		}
		if isIdeal(format) {
			return rec, format, nil
		}
	}
	for _, rec := range records {
		if rec.platformID != 3 || (rec.encodingID != 1 && rec.encodingID != 10) {
			continue
		}
		format, err := subtableFormat(data, rec)
		if err != nil {
			continue
		}
		if isIdeal(format) {
			return rec, format, nil
		}
	}
	for _, rec := range records {
		format, err := subtableFormat(data, rec)
		if err != nil {
			continue
		}
		if supportedCmapFormats[format] {
			return rec, format, nil
		}
	}
	return cmapRecord{}, 0, &ParseError{Kind: UnsupportedCharMap, GlyphID: -1}
}

// parseCmap decodes the preferred cmap subtable into a direct codepoint ->
// glyph index map. Lookups for codepoints absent from the map fall back to
// glyph 0 (.notdef), handled by the caller.
func parseCmap(data []byte) (map[uint32]uint32, error) {
	records, err := readCmapRecords(data)
	if err != nil {
		return nil, err
	}
	rec, format, err := selectCmapSubtable(data, records)
	if err != nil {
		return nil, err
	}
	if uint64(rec.offset) > uint64(len(data)) {
		return nil, errTruncated("cmap")
	}
	sub := data[rec.offset:]
	switch format {
	case 0:
		return parseCmapFormat0(sub)
	case 4:
		return parseCmapFormat4(sub)
	case 6:
		return parseCmapFormat6(sub)
	case 10:
		return parseCmapFormat10(sub)
	case 12:
		return parseCmapFormat12(sub)
	case 13:
		return parseCmapFormat13(sub)
	default:
		return nil, &ParseError{Kind: UnsupportedCharMap, GlyphID: -1}
	}
}

func parseCmapFormat0(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	if err := r.skip(6); err != nil { // format, length, language
		return nil, err
	}
	m := make(map[uint32]uint32, 256)
	for c := 0; c < 256; c++ {
		gid, err := r.u8()
		if err != nil {
			return nil, err
		}
		if gid != 0 {
			m[uint32(c)] = uint32(gid)
		}
	}
	return m, nil
}

func parseCmapFormat4(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	if err := r.skip(6); err != nil { // format, length, language
		return nil, err
	}
	segCountX2, err := r.u16()
	if err != nil {
		return nil, err
	}
	segCount := int(segCountX2 / 2)
	if err := r.skip(6); err != nil { // searchRange, entrySelector, rangeShift
		return nil, err
	}
	endCode := make([]uint16, segCount)
	for i := range endCode {
		if endCode[i], err = r.u16(); err != nil {
			return nil, err
		}
	}
	if err := r.skip(2); err != nil { // reservedPad
		return nil, err
	}
	startCode := make([]uint16, segCount)
	for i := range startCode {
		if startCode[i], err = r.u16(); err != nil {
			return nil, err
		}
	}
	idDelta := make([]int16, segCount)
	for i := range idDelta {
		if idDelta[i], err = r.i16(); err != nil {
			return nil, err
		}
	}
	idRangeOffsetPos := make([]int, segCount)
	idRangeOffset := make([]uint16, segCount)
	for i := range idRangeOffset {
		idRangeOffsetPos[i] = r.offset()
		if idRangeOffset[i], err = r.u16(); err != nil {
			return nil, err
		}
	}

	m := make(map[uint32]uint32)
	for i := 0; i < segCount; i++ {
		if startCode[i] == 0xFFFF && endCode[i] == 0xFFFF {
			continue
		}
		for c := uint32(startCode[i]); c <= uint32(endCode[i]); c++ {
			var gid uint32
			if idRangeOffset[i] == 0 {
				gid = uint32(uint16(int32(c) + int32(idDelta[i])))
			} else {
				addr := idRangeOffsetPos[i] + int(idRangeOffset[i]) + 2*int(c-uint32(startCode[i]))
				gr := newReader(r.b, "cmap")
				gr.seek(addr)
				raw, err := gr.u16()
				if err != nil {
					return nil, err
				}
				if raw == 0 {
					continue
				}
				gid = uint32(uint16(int32(raw) + int32(idDelta[i])))
			}
			if gid != 0 {
				m[c] = gid
			}
			if c == 0xFFFF {
				break
			}
		}
	}
	return m, nil
}

func parseCmapFormat6(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	if err := r.skip(6); err != nil { // format, length, language
		return nil, err
	}
	firstCode, err := r.u16()
	if err != nil {
		return nil, err
	}
	entryCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	m := make(map[uint32]uint32, entryCount)
	for i := 0; i < int(entryCount); i++ {
		gid, err := r.u16()
		if err != nil {
			return nil, err
		}
		if gid != 0 {
			m[uint32(firstCode)+uint32(i)] = uint32(gid)
		}
	}
	return m, nil
}

func parseCmapFormat10(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	if err := r.skip(4); err != nil { // format, reserved
		return nil, err
	}
	if err := r.skip(8); err != nil { // length, language
		return nil, err
	}
	startCharCode, err := r.u32()
	if err != nil {
		return nil, err
	}
	numChars, err := r.u32()
	if err != nil {
		return nil, err
	}
	m := make(map[uint32]uint32, numChars)
	for i := uint32(0); i < numChars; i++ {
		gid, err := r.u16()
		if err != nil {
			return nil, err
		}
		if gid != 0 {
			m[startCharCode+i] = uint32(gid)
		}
	}
	return m, nil
}

type cmapGroup struct {
	startCharCode, endCharCode, startGlyphID uint32
}

func readCmapGroups(r *reader) ([]cmapGroup, error) {
	if err := r.skip(4); err != nil { // format, reserved
		return nil, err
	}
	if err := r.skip(8); err != nil { // length, language
		return nil, err
	}
	numGroups, err := r.u32()
	if err != nil {
		return nil, err
	}
	groups := make([]cmapGroup, numGroups)
	for i := range groups {
		start, err := r.u32()
		if err != nil {
			return nil, err
		}
		end, err := r.u32()
		if err != nil {
			return nil, err
		}
		gid, err := r.u32()
		if err != nil {
			return nil, err
		}
		groups[i] = cmapGroup{startCharCode: start, endCharCode: end, startGlyphID: gid}
	}
	return groups, nil
}

// parseCmapFormat12 maps each codepoint in a group to startGlyphID plus its
// offset within the group: a dense run of consecutive glyph ids.
func parseCmapFormat12(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	groups, err := readCmapGroups(r)
	if err != nil {
		return nil, err
	}
	m := make(map[uint32]uint32)
	for _, g := range groups {
		for c := g.startCharCode; c <= g.endCharCode; c++ {
			m[c] = g.startGlyphID + (c - g.startCharCode)
			if c == ^uint32(0) {
				break
			}
		}
	}
	return m, nil
}

// parseCmapFormat13 maps every codepoint in a group to the SAME glyph id,
// startGlyphID — true many-to-one, as opposed to format 12's per-codepoint
// increment. The reference implementation this parser was distilled from
// collapses this into format 12's logic; that is a bug, not a format
// detail, and is deliberately not reproduced here.
func parseCmapFormat13(data []byte) (map[uint32]uint32, error) {
	r := newReader(data, "cmap")
	groups, err := readCmapGroups(r)
	if err != nil {
		return nil, err
	}
	m := make(map[uint32]uint32)
	for _, g := range groups {
		for c := g.startCharCode; c <= g.endCharCode; c++ {
			m[c] = g.startGlyphID
			if c == ^uint32(0) {
				break
			}
		}
	}
	return m, nil
}
