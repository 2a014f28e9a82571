package truetype

import "fmt"

// Kind identifies the cause of a ParseError. A font file is rejected for one
// of a small, fixed set of reasons; the Kind says which one and the
// remaining ParseError fields carry whatever context that reason needs.
type Kind int

const (
	// NotAFont means the leading four bytes aren't a recognized sfnt tag.
	NotAFont Kind = iota + 1
	// TruncatedTable means a read ran past the end of a table (or the
	// file) while decoding its fields.
	TruncatedTable
	// MissingRequiredTable means head, maxp, cmap, loca or glyf is absent,
	// or hhea/vhea is present without its paired hmtx/vmtx.
	MissingRequiredTable
	// BadMagic means head's magicNumber field isn't 0x5F0F3CF5.
	BadMagic
	// BadHead means head carries a value Parse can't use, such as an
	// indexToLocFormat outside {0, 1}.
	BadHead
	// BadGlyphBounds means a glyf entry's xMin/xMax/yMin/yMax are
	// inconsistent (min greater than max) once the degenerate-bbox
	// sentinel has been accounted for, or that a glyph index (such as a
	// compound glyph's component) lies outside the loca table.
	BadGlyphBounds
	// UnsupportedCompound means a compound glyph uses a flag combination
	// this parser doesn't decode: matched-point-number component
	// placement, or a scaled component offset without the unscaled
	// variant, or recursion nested too deep.
	UnsupportedCompound
	// UnsupportedCharMap means cmap holds no subtable in a supported
	// format (0, 4, 6, 10, 12 or 13), under any platform/encoding.
	UnsupportedCharMap
)

func (k Kind) String() string {
	switch k {
	case NotAFont:
		return "not a font"
	case TruncatedTable:
		return "truncated table"
	case MissingRequiredTable:
		return "missing required table"
	case BadMagic:
		return "bad magic number"
	case BadHead:
		return "bad head table"
	case BadGlyphBounds:
		return "bad glyph bounds"
	case UnsupportedCompound:
		return "unsupported compound glyph"
	case UnsupportedCharMap:
		return "unsupported character map"
	default:
		return "unknown error"
	}
}

// ParseError reports why Parse rejected a font buffer. Every construction
// time failure is a *ParseError; the Kind says which of a fixed set of
// reasons applies, and Tag/GlyphID carry context when the Kind uses them.
type ParseError struct {
	Kind    Kind
	Tag     string // table tag, set for TruncatedTable/MissingRequiredTable
	GlyphID int    // set for BadGlyphBounds/UnsupportedCompound, -1 if unused
	detail  string // optional extra context, e.g. an unsupported flag combination
}

func (e *ParseError) Error() string {
	msg := "rasterfont: " + e.Kind.String()
	if e.Tag != "" {
		msg += fmt.Sprintf(" (table %q)", e.Tag)
	}
	if e.GlyphID >= 0 {
		msg += fmt.Sprintf(" (glyph %d)", e.GlyphID)
	}
	if e.detail != "" {
		msg += ": " + e.detail
	}
	return msg
}

func errTruncated(tag string) error {
	return &ParseError{Kind: TruncatedTable, Tag: tag, GlyphID: -1}
}

func errMissingTable(tag string) error {
	return &ParseError{Kind: MissingRequiredTable, Tag: tag, GlyphID: -1}
}

func errBadBounds(glyphID int) error {
	return &ParseError{Kind: BadGlyphBounds, GlyphID: glyphID}
}

func errUnsupportedCompound(glyphID int, detail string) error {
	return &ParseError{Kind: UnsupportedCompound, GlyphID: glyphID, detail: detail}
}
