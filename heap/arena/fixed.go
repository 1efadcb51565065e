package arena

// Fixed is an Arena over a caller-supplied slice. The memory is already
// usable, so Commit only moves the mark and checks bounds. An optional limit
// makes Commit refuse beyond a chosen mark, which is how tests stub a host
// that has run out of memory.
type Fixed struct {
	data  []byte
	brk   int64
	limit int64
}

// NewFixed wraps buf as a fully-committable arena.
func NewFixed(buf []byte) *Fixed {
	return &Fixed{data: buf, limit: int64(len(buf))}
}

// NewFixedLimit wraps buf as an arena whose host refuses to commit beyond
// limit bytes.
func NewFixedLimit(buf []byte, limit int64) *Fixed {
	if limit > int64(len(buf)) {
		limit = int64(len(buf))
	}
	return &Fixed{data: buf, limit: limit}
}

// Bytes returns the full span.
func (f *Fixed) Bytes() []byte { return f.data }

// Size returns the reservation size.
func (f *Fixed) Size() int64 { return int64(len(f.data)) }

// Break returns the committed mark.
func (f *Fixed) Break() int64 { return f.brk }

// Commit moves the mark to at least upTo.
func (f *Fixed) Commit(upTo int64) error {
	if upTo <= f.brk {
		return nil
	}
	if upTo > int64(len(f.data)) {
		return ErrOutOfRange
	}
	if upTo > f.limit {
		return ErrCommitDenied
	}
	f.brk = upTo
	return nil
}
