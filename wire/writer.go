package wire

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/nbt/buffer"
	"github.com/arloliu/nbt/encoding"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/options"
	"github.com/arloliu/nbt/tag"
)

// Writer serializes a tag tree into its binary form.
//
// A Writer accumulates output in a byte buffer and enforces a configurable
// output size ceiling (10 MiB by default); exceeding it aborts the write
// with errs.ErrSizeLimit rather than truncating. A Writer is not safe for
// concurrent use.
type Writer struct {
	cfg    Config
	buf    *buffer.ByteBuffer
	pooled bool
}

// NewWriter creates a Writer backed by a pooled buffer. Call Release when
// done to return the buffer to the pool.
func NewWriter(opts ...Option) (*Writer, error) {
	w := &Writer{
		cfg:    newConfig(),
		buf:    buffer.GetDocBuffer(),
		pooled: true,
	}
	if err := options.Apply(&w.cfg, opts...); err != nil {
		buffer.PutDocBuffer(w.buf)
		return nil, err
	}

	return w, nil
}

// NewWriterBuffer creates a Writer that appends to the caller's buffer. The
// caller keeps ownership; Release leaves the buffer untouched.
func NewWriterBuffer(buf *buffer.ByteBuffer, opts ...Option) (*Writer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", errs.ErrInvalidValue)
	}

	w := &Writer{cfg: newConfig(), buf: buf}
	if err := options.Apply(&w.cfg, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// WriteCompound serializes root as a full document: type byte, the root's
// name, then the compound payload terminated by End.
func (w *Writer) WriteCompound(root *tag.Compound) error {
	if root == nil {
		return fmt.Errorf("%w: nil compound root", errs.ErrInvalidValue)
	}
	if err := w.writeTagHeader(format.TagCompound, root.Name()); err != nil {
		return err
	}

	return w.writeCompoundPayload(root, 1)
}

// WriteList serializes list as a full document. The header of a list root
// carries an empty name.
func (w *Writer) WriteList(list *tag.List) error {
	if list == nil {
		return fmt.Errorf("%w: nil list root", errs.ErrInvalidValue)
	}
	if err := w.writeTagHeader(format.TagList, ""); err != nil {
		return err
	}

	return w.writeListPayload(list, 1)
}

// Bytes returns the accumulated output. The slice shares the writer's
// buffer; it stays valid until the next write, Reset or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the output buffer for reuse. The configuration is retained.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Release returns a pooled buffer to the pool. The writer must not be used
// afterward. Buffers supplied through NewWriterBuffer are left untouched.
func (w *Writer) Release() {
	if w.pooled {
		buffer.PutDocBuffer(w.buf)
	}
	w.buf = nil
}

// ensure verifies the size ceiling admits n more bytes, then grows the
// buffer to hold them.
func (w *Writer) ensure(n int) error {
	if w.buf.Len()+n > w.cfg.maxEncodedSize {
		return fmt.Errorf("%w: output exceeds %d bytes", errs.ErrSizeLimit, w.cfg.maxEncodedSize)
	}
	w.buf.Grow(n)

	return nil
}

func (w *Writer) writeTagHeader(id format.TagID, name string) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf.PutByte(byte(id))

	return w.writeString(name)
}

func (w *Writer) writeCompoundPayload(c *tag.Compound, depth int) error {
	if depth > w.cfg.maxDepth {
		return fmt.Errorf("%w: nesting exceeds %d levels", errs.ErrMaxDepthExceeded, w.cfg.maxDepth)
	}

	if w.cfg.canonical {
		keys := c.Keys()
		slices.Sort(keys)
		for _, key := range keys {
			v, _ := c.Get(key)
			if err := w.writeEntry(key, v, depth); err != nil {
				return err
			}
		}
	} else {
		for key, v := range c.All() {
			if err := w.writeEntry(key, v, depth); err != nil {
				return err
			}
		}
	}

	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf.PutByte(byte(format.TagEnd))

	return nil
}

func (w *Writer) writeEntry(key string, v tag.Value, depth int) error {
	if v == nil {
		return fmt.Errorf("%w: nil value under key %q", errs.ErrInvalidValue, key)
	}
	if err := w.writeTagHeader(v.ID(), key); err != nil {
		return err
	}

	return w.writeValue(v, depth)
}

// writeValue emits the raw payload of v. Container kinds recurse with an
// incremented depth.
func (w *Writer) writeValue(v tag.Value, depth int) error {
	switch val := v.(type) {
	case tag.Byte:
		if err := w.ensure(1); err != nil {
			return err
		}
		w.buf.PutByte(byte(val))

		return nil
	case tag.Short:
		return w.writeShort(int16(val))
	case tag.Int:
		return w.writeInt(int32(val))
	case tag.Long:
		return w.writeLong(int64(val))
	case tag.Float:
		if err := w.ensure(4); err != nil {
			return err
		}
		w.buf.B = w.cfg.engine.AppendUint32(w.buf.B, math.Float32bits(float32(val)))

		return nil
	case tag.Double:
		if err := w.ensure(8); err != nil {
			return err
		}
		w.buf.B = w.cfg.engine.AppendUint64(w.buf.B, math.Float64bits(float64(val)))

		return nil
	case tag.String:
		return w.writeString(string(val))
	case tag.ByteArray:
		return w.writeByteArray(val)
	case tag.IntArray:
		return w.writeIntArray(val)
	case *tag.List:
		if val == nil {
			return fmt.Errorf("%w: nil list", errs.ErrInvalidValue)
		}

		return w.writeListPayload(val, depth+1)
	case *tag.Compound:
		if val == nil {
			return fmt.Errorf("%w: nil compound", errs.ErrInvalidValue)
		}

		return w.writeCompoundPayload(val, depth+1)
	default:
		return fmt.Errorf("%w: cannot encode value of type %T", errs.ErrInvalidValue, v)
	}
}

func (w *Writer) writeShort(v int16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	w.buf.B = w.cfg.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec

	return nil
}

func (w *Writer) writeInt(v int32) error {
	if w.cfg.useVarint {
		if err := w.ensure(encoding.Varint32Len(v)); err != nil {
			return err
		}
		w.buf.B = encoding.AppendVarint32(w.buf.B, v)

		return nil
	}

	if err := w.ensure(4); err != nil {
		return err
	}
	w.buf.B = w.cfg.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec

	return nil
}

func (w *Writer) writeLong(v int64) error {
	if w.cfg.useVarint {
		if err := w.ensure(encoding.Varint64Len(v)); err != nil {
			return err
		}
		w.buf.B = encoding.AppendVarint64(w.buf.B, v)

		return nil
	}

	if err := w.ensure(8); err != nil {
		return err
	}
	w.buf.B = w.cfg.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec

	return nil
}

// writeString emits a length prefix per the numeric mode, then the UTF-8
// bytes. In fixed mode the prefix is a 2-byte unsigned count; strings it
// cannot represent are rejected rather than truncated.
func (w *Writer) writeString(s string) error {
	n := len(s)

	if w.cfg.useVarint {
		if uint64(n) > math.MaxUint32 {
			return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, n)
		}
		if err := w.ensure(encoding.UvarintLen(uint64(n)) + n); err != nil {
			return err
		}
		w.buf.B = encoding.AppendUvarint32(w.buf.B, uint32(n))
	} else {
		if n > math.MaxUint16 {
			return fmt.Errorf("%w: %d bytes exceeds the 16-bit length prefix", errs.ErrStringTooLong, n)
		}
		if err := w.ensure(2 + n); err != nil {
			return err
		}
		w.buf.B = w.cfg.engine.AppendUint16(w.buf.B, uint16(n)) //nolint:gosec
	}

	w.buf.B = append(w.buf.B, s...)

	return nil
}

func (w *Writer) writeByteArray(b tag.ByteArray) error {
	if err := w.writeArrayLen(len(b)); err != nil {
		return err
	}
	if err := w.ensure(len(b)); err != nil {
		return err
	}
	w.buf.MustWrite(b)

	return nil
}

func (w *Writer) writeIntArray(a tag.IntArray) error {
	if err := w.writeArrayLen(len(a)); err != nil {
		return err
	}

	if w.cfg.useVarint {
		total := 0
		for _, v := range a {
			total += encoding.Varint32Len(v)
		}
		if err := w.ensure(total); err != nil {
			return err
		}
		for _, v := range a {
			w.buf.B = encoding.AppendVarint32(w.buf.B, v)
		}

		return nil
	}

	if err := w.ensure(4 * len(a)); err != nil {
		return err
	}
	for _, v := range a {
		w.buf.B = w.cfg.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
	}

	return nil
}

// writeArrayLen emits an element count as an Int per the numeric mode.
func (w *Writer) writeArrayLen(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: array of %d elements", errs.ErrInvalidValue, n)
	}

	return w.writeInt(int32(n)) //nolint:gosec
}

func (w *Writer) writeListPayload(l *tag.List, depth int) error {
	if depth > w.cfg.maxDepth {
		return fmt.Errorf("%w: nesting exceeds %d levels", errs.ErrMaxDepthExceeded, w.cfg.maxDepth)
	}

	// An empty list has no intrinsic element kind; a Byte placeholder with
	// a zero count stands in for it.
	if l.Len() == 0 {
		if err := w.ensure(1); err != nil {
			return err
		}
		w.buf.PutByte(byte(format.TagByte))

		return w.writeInt(0)
	}

	first := l.Elems[0]
	if first == nil {
		return fmt.Errorf("%w: nil element at index 0", errs.ErrInvalidValue)
	}
	elemID := first.ID()

	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf.PutByte(byte(elemID))
	if err := w.writeArrayLen(l.Len()); err != nil {
		return err
	}

	for i, elem := range l.Elems {
		if elem == nil {
			return fmt.Errorf("%w: nil element at index %d", errs.ErrInvalidValue, i)
		}
		if elem.ID() != elemID {
			return fmt.Errorf("%w: element %d is %s, list is %s", errs.ErrHeterogeneousList, i, elem.ID(), elemID)
		}
		if err := w.writeValue(elem, depth); err != nil {
			return err
		}
	}

	return nil
}
