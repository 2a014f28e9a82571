package truetype

import "encoding/binary"

// sfnt version tags recognized as "this is a font, not a collection". A
// font collection (ttcf) is rejected outright: spec scope is a single font
// per buffer.
var (
	tagTrueType  = [4]byte{0x00, 0x01, 0x00, 0x00}
	tagTrue      = [4]byte{'t', 'r', 'u', 'e'}
	tagTyp1      = [4]byte{'t', 'y', 'p', '1'}
	tagOpenType  = [4]byte{'O', 'T', 'T', 'O'}
	tagCollection = [4]byte{'t', 't', 'c', 'f'}
)

func isSniffedFont(tag [4]byte) bool {
	return tag == tagTrueType || tag == tagTrue || tag == tagTyp1 || tag == tagOpenType
}

// readDirectory walks the table directory at the front of data and returns
// the raw byte slice for each table, keyed by tag. It does not interpret
// any table's contents.
func readDirectory(data []byte) (map[string][]byte, error) {
	if len(data) < 4 {
		return nil, errTruncated("directory")
	}
	tag := [4]byte{data[0], data[1], data[2], data[3]}
	if tag == tagCollection {
		return nil, &ParseError{Kind: NotAFont, GlyphID: -1, detail: "font collections are not supported"}
	}
	if !isSniffedFont(tag) {
		return nil, &ParseError{Kind: NotAFont, GlyphID: -1}
	}
	if len(data) < 12 {
		return nil, errTruncated("directory")
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	const recordSize = 16
	need := 12 + recordSize*numTables
	if len(data) < need {
		return nil, errTruncated("directory")
	}
	tables := make(map[string][]byte, numTables)
	pos := 12
	for i := 0; i < numTables; i++ {
		rec := data[pos : pos+recordSize]
		tableTag := string(rec[0:4])
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		end := uint64(offset) + uint64(length)
		if end > uint64(len(data)) {
			return nil, errTruncated(tableTag)
		}
		tables[tableTag] = data[offset:end]
		pos += recordSize
	}
	return tables, nil
}
