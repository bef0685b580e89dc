// Package buffer provides a growable byte buffer with separate read and
// write cursors, plus a pool to minimize allocations on the hot encode and
// decode paths.
//
// The write side appends and grows; the read side consumes through an
// advancing position. Readers are expected to check Readable before calling
// Next or NextByte, which panic on overrun. The codec always performs the
// availability check itself, so the panic marks a programming error rather
// than a malformed document.
package buffer

import (
	"io"
	"sync"
)

// DocBufferDefaultSize is the default capacity of buffers obtained from the
// package-level pool. DocBufferMaxThreshold caps the capacity a returned
// buffer may have and still be retained for reuse.
const (
	DocBufferDefaultSize  = 1024 * 4    // 4KiB
	DocBufferMaxThreshold = 1024 * 1024 // 1MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte

	off int // read position within B
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// FromBytes wraps data in a ByteBuffer positioned at the start, without
// copying. The buffer reads through data; writes append after it.
func FromBytes(data []byte) *ByteBuffer {
	return &ByteBuffer{B: data}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty and rewinds the read position, but
// retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
	bb.off = 0
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Readable returns the number of bytes between the read position and the end
// of the buffer.
func (bb *ByteBuffer) Readable() int {
	return len(bb.B) - bb.off
}

// ReadPos returns the current read position.
func (bb *ByteBuffer) ReadPos() int {
	return bb.off
}

// SetReadPos moves the read position to pos.
// Panics if pos is negative or beyond the buffer length.
func (bb *ByteBuffer) SetReadPos(pos int) {
	if pos < 0 || pos > len(bb.B) {
		panic("SetReadPos: invalid position")
	}
	bb.off = pos
}

// Next returns the next n bytes and advances the read position. The returned
// slice aliases the buffer and is only valid until the next mutation.
// Panics if fewer than n bytes are readable.
func (bb *ByteBuffer) Next(n int) []byte {
	if n < 0 || bb.Readable() < n {
		panic("Next: out of range")
	}

	b := bb.B[bb.off : bb.off+n]
	bb.off += n

	return b
}

// NextByte returns the next byte and advances the read position.
// Panics if no bytes are readable.
func (bb *ByteBuffer) NextByte() byte {
	if bb.Readable() < 1 {
		panic("NextByte: out of range")
	}

	b := bb.B[bb.off]
	bb.off++

	return b
}

// Skip advances the read position by n bytes.
// Panics if fewer than n bytes are readable.
func (bb *ByteBuffer) Skip(n int) {
	if n < 0 || bb.Readable() < n {
		panic("Skip: out of range")
	}
	bb.off += n
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// PutByte appends a single byte to the buffer, growing it if necessary.
func (bb *ByteBuffer) PutByte(b byte) {
	bb.B = append(bb.B, b)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers, grow by DocBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	// Calculate growth size based on current buffer size
	growBy := DocBufferDefaultSize
	if cap(bb.B) > 4*DocBufferDefaultSize {
		// For larger buffers, grow by 25% to balance memory and reallocation cost
		growBy = cap(bb.B) / 4
	}

	// Ensure we grow enough for at least the required bytes
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	// Allocate new buffer with increased capacity
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var docDefaultPool = NewByteBufferPool(DocBufferDefaultSize, DocBufferMaxThreshold)

// GetDocBuffer retrieves a ByteBuffer from the default document pool.
func GetDocBuffer() *ByteBuffer {
	return docDefaultPool.Get()
}

// PutDocBuffer returns a ByteBuffer to the default document pool.
func PutDocBuffer(bb *ByteBuffer) {
	docDefaultPool.Put(bb)
}
