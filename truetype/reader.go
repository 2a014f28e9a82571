package truetype

// reader is a bounds-checked big-endian cursor over a table's raw bytes.
// Every table parser gets its own reader scoped to that table's byte range,
// so a short read reports the offending table's tag rather than a bare
// "index out of range" panic.
type reader struct {
	b   []byte
	tag string
	pos int
}

func newReader(b []byte, tag string) *reader {
	return &reader{b: b, tag: tag}
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.b) || r.pos+n < r.pos {
		return errTruncated(r.tag)
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.b[r.pos])<<8 | uint16(r.b[r.pos+1])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.b[r.pos])<<24 | uint32(r.b[r.pos+1])<<16 | uint32(r.b[r.pos+2])<<8 | uint32(r.b[r.pos+3])
	r.pos += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	hi, err := r.u32()
	if err != nil {
		return 0, err
	}
	lo, err := r.u32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

// f2dot14 reads a 2.14 fixed point number, as used for compound glyph
// transform components.
func (r *reader) f2dot14() (float32, error) {
	v, err := r.i16()
	if err != nil {
		return 0, err
	}
	return float32(v) / (1 << 14), nil
}

func (r *reader) tagBytes() ([4]byte, error) {
	var t [4]byte
	if err := r.need(4); err != nil {
		return t, err
	}
	copy(t[:], r.b[r.pos:r.pos+4])
	r.pos += 4
	return t, nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

func (r *reader) seek(pos int) {
	r.pos = pos
}

func (r *reader) offset() int {
	return r.pos
}

func (r *reader) len() int {
	return len(r.b)
}
