package avnera

import "io"

// Reader provides sequential access to the bytes to decode.
type Reader interface {
	// Mark records the current position as start of the current instruction.
	Mark()
	// Next returns the next byte or an error if no more bytes are available.
	Next() (byte, error)
	// Offset returns the number of bytes read since the last Mark.
	Offset() int
}

// Compile-time check to ensure SliceReader implements Reader.
var _ Reader = (*SliceReader)(nil)

// SliceReader implements Reader for a byte slice.
type SliceReader struct {
	data []byte
	pos  int
	mark int
}

// NewSliceReader returns a new reader for the given data.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{
		data: data,
	}
}

// Mark records the current position as start of the current instruction.
func (r *SliceReader) Mark() {
	r.mark = r.pos
}

// Next returns the next byte or io.EOF if the end of the data is reached.
func (r *SliceReader) Next() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// Offset returns the number of bytes read since the last Mark.
func (r *SliceReader) Offset() int {
	return r.pos - r.mark
}

// Pos returns the current position in the data.
func (r *SliceReader) Pos() int {
	return r.pos
}

// Seek sets the current position and the mark to the given position.
// The position is clamped to the data boundaries.
func (r *SliceReader) Seek(pos int) {
	pos = max(0, min(pos, len(r.data)))
	r.pos = pos
	r.mark = pos
}

// Remaining returns the number of bytes left to read.
func (r *SliceReader) Remaining() int {
	return len(r.data) - r.pos
}
