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

// Reader decodes one document at a time from a fully resident byte buffer,
// advancing a read cursor as it goes. A second Parse call continues after
// the previous document, so back-to-back documents in one buffer decode
// sequentially.
//
// When an allocation budget is configured, every read charges the budget
// before the byte-availability check, and charges are never refunded. A
// hostile length field therefore exhausts the budget even when the buffer
// is too short to satisfy it, and the two failures stay distinguishable:
// errs.ErrAllocationLimit for budget exhaustion, errs.ErrTruncated for a
// short buffer.
//
// A Reader is not safe for concurrent use, and a buffer must not be shared
// by two readers.
type Reader struct {
	cfg   Config
	buf   *buffer.ByteBuffer
	limit int // remaining allocation budget, -1 when unbounded
}

// NewReader creates a Reader over data. The slice is read in place, not
// copied; decoded trees never alias it.
func NewReader(data []byte, opts ...Option) (*Reader, error) {
	return NewReaderBuffer(buffer.FromBytes(data), opts...)
}

// NewReaderBuffer creates a Reader consuming from the caller's buffer,
// starting at its current read position.
func NewReaderBuffer(buf *buffer.ByteBuffer, opts ...Option) (*Reader, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", errs.ErrInvalidValue)
	}

	r := &Reader{cfg: newConfig(), buf: buf}
	if err := options.Apply(&r.cfg, opts...); err != nil {
		return nil, err
	}
	r.limit = r.cfg.allocLimit

	return r, nil
}

// Parse decodes the next document and returns its root, either a
// *tag.Compound or a *tag.List. Any other root tag is rejected with
// errs.ErrUnexpectedRootTag.
func (r *Reader) Parse() (tag.Value, error) {
	id, err := r.readTagID()
	if err != nil {
		return nil, err
	}

	switch id {
	case format.TagCompound:
		name, err := r.readString()
		if err != nil {
			return nil, err
		}

		return r.readCompoundPayload(name, 1)
	case format.TagList:
		// A list root's header carries a name as well; it is consumed and
		// discarded since lists are anonymous.
		if _, err := r.readString(); err != nil {
			return nil, err
		}

		return r.readListPayload(1)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnexpectedRootTag, id)
	}
}

// ReadCompound decodes the next document, requiring a compound root.
func (r *Reader) ReadCompound() (*tag.Compound, error) {
	id, err := r.readTagID()
	if err != nil {
		return nil, err
	}
	if id != format.TagCompound {
		return nil, fmt.Errorf("%w: expected a compound root, got %s", errs.ErrUnexpectedRootTag, id)
	}

	name, err := r.readString()
	if err != nil {
		return nil, err
	}

	return r.readCompoundPayload(name, 1)
}

// Remaining returns the number of unread bytes left in the buffer.
func (r *Reader) Remaining() int {
	return r.buf.Readable()
}

// ReadByte implements io.ByteReader. Each byte is charged against the
// allocation budget, so varint fields consume budget byte by byte as they
// are read.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.expectInput(1, "byte"); err != nil {
		return 0, err
	}

	return r.buf.NextByte(), nil
}

// expectInput charges n bytes against the allocation budget, then verifies
// the buffer still holds n readable bytes. The charge is applied before the
// availability check and never refunded, so an oversized length field
// cannot be replayed to sidestep the budget.
func (r *Reader) expectInput(n int, what string) error {
	if err := r.charge(n); err != nil {
		return err
	}
	if r.buf.Readable() < n {
		return fmt.Errorf("%w: expected %s", errs.ErrTruncated, what)
	}

	return nil
}

func (r *Reader) charge(n int) error {
	if r.limit < 0 {
		return nil
	}
	if r.limit-n < 0 {
		return fmt.Errorf("%w: %d bytes requested, %d left in budget", errs.ErrAllocationLimit, n, r.limit)
	}
	r.limit -= n

	return nil
}

func (r *Reader) readTagID() (format.TagID, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	id := format.TagID(b)
	if !id.Valid() {
		return 0, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTagID, b)
	}

	return id, nil
}

// readValue decodes the raw payload of the given kind. Compound children
// adopt their key as their name; list members stay anonymous.
func (r *Reader) readValue(id format.TagID, name string, depth int) (tag.Value, error) {
	switch id {
	case format.TagByte:
		v, err := r.readByteVal()
		if err != nil {
			return nil, err
		}

		return tag.Byte(v), nil
	case format.TagShort:
		v, err := r.readShort()
		if err != nil {
			return nil, err
		}

		return tag.Short(v), nil
	case format.TagInt:
		v, err := r.readInt()
		if err != nil {
			return nil, err
		}

		return tag.Int(v), nil
	case format.TagLong:
		v, err := r.readLong()
		if err != nil {
			return nil, err
		}

		return tag.Long(v), nil
	case format.TagFloat:
		v, err := r.readFloat()
		if err != nil {
			return nil, err
		}

		return tag.Float(v), nil
	case format.TagDouble:
		v, err := r.readDouble()
		if err != nil {
			return nil, err
		}

		return tag.Double(v), nil
	case format.TagString:
		v, err := r.readString()
		if err != nil {
			return nil, err
		}

		return tag.String(v), nil
	case format.TagByteArray:
		return r.readByteArray()
	case format.TagIntArray:
		return r.readIntArray()
	case format.TagList:
		return r.readListPayload(depth + 1)
	case format.TagCompound:
		return r.readCompoundPayload(name, depth+1)
	default:
		return nil, fmt.Errorf("%w: %s has no payload", errs.ErrUnknownTagID, id)
	}
}

func (r *Reader) readCompoundPayload(name string, depth int) (*tag.Compound, error) {
	if depth > r.cfg.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d levels", errs.ErrMaxDepthExceeded, r.cfg.maxDepth)
	}

	c := tag.NewCompound(name)
	for {
		id, err := r.readTagID()
		if err != nil {
			return nil, err
		}
		if id == format.TagEnd {
			return c, nil
		}

		key, err := r.readString()
		if err != nil {
			return nil, err
		}

		v, err := r.readValue(id, key, depth)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, v); err != nil {
			return nil, err
		}
	}
}

func (r *Reader) readListPayload(depth int) (*tag.List, error) {
	if depth > r.cfg.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d levels", errs.ErrMaxDepthExceeded, r.cfg.maxDepth)
	}

	elemID, err := r.readTagID()
	if err != nil {
		return nil, err
	}

	count, err := r.readCount("list length")
	if err != nil {
		return nil, err
	}

	// A zero count always decodes to an empty list, whatever element kind
	// the header declared.
	if count == 0 {
		return tag.NewList(), nil
	}
	if elemID == format.TagEnd {
		return nil, fmt.Errorf("%w: End as element type of a non-empty list", errs.ErrUnknownTagID)
	}

	// Each element consumes at least one byte, so the readable remainder
	// caps how much preallocation an adversarial count can demand.
	capacity := count
	if remaining := r.buf.Readable(); capacity > remaining {
		capacity = remaining
	}

	list := &tag.List{Elems: make([]tag.Value, 0, capacity)}
	for i := 0; i < count; i++ {
		v, err := r.readValue(elemID, "", depth)
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, v)
	}

	return list, nil
}

func (r *Reader) readByteVal() (int8, error) {
	if err := r.expectInput(1, "byte"); err != nil {
		return 0, err
	}

	return int8(r.buf.NextByte()), nil //nolint:gosec
}

func (r *Reader) readShort() (int16, error) {
	if err := r.expectInput(2, "short"); err != nil {
		return 0, err
	}

	return int16(r.cfg.engine.Uint16(r.buf.Next(2))), nil //nolint:gosec
}

func (r *Reader) readUint16(what string) (uint16, error) {
	if err := r.expectInput(2, what); err != nil {
		return 0, err
	}

	return r.cfg.engine.Uint16(r.buf.Next(2)), nil
}

func (r *Reader) readInt() (int32, error) {
	if r.cfg.useVarint {
		return encoding.ReadVarint32(r)
	}

	if err := r.expectInput(4, "int"); err != nil {
		return 0, err
	}

	return int32(r.cfg.engine.Uint32(r.buf.Next(4))), nil //nolint:gosec
}

func (r *Reader) readLong() (int64, error) {
	if r.cfg.useVarint {
		return encoding.ReadVarint64(r)
	}

	if err := r.expectInput(8, "long"); err != nil {
		return 0, err
	}

	return int64(r.cfg.engine.Uint64(r.buf.Next(8))), nil //nolint:gosec
}

func (r *Reader) readFloat() (float32, error) {
	if err := r.expectInput(4, "float"); err != nil {
		return 0, err
	}

	return math.Float32frombits(r.cfg.engine.Uint32(r.buf.Next(4))), nil
}

func (r *Reader) readDouble() (float64, error) {
	if err := r.expectInput(8, "double"); err != nil {
		return 0, err
	}

	return math.Float64frombits(r.cfg.engine.Uint64(r.buf.Next(8))), nil
}

// readString decodes a length prefix per the numeric mode, charges the
// declared length, then copies out the text.
func (r *Reader) readString() (string, error) {
	var length int
	if r.cfg.useVarint {
		ulen, err := encoding.ReadUvarint32(r)
		if err != nil {
			return "", err
		}
		if ulen > math.MaxInt32 {
			return "", fmt.Errorf("%w: string of %d bytes", errs.ErrInvalidLength, ulen)
		}
		length = int(ulen)
	} else {
		n, err := r.readUint16("string length")
		if err != nil {
			return "", err
		}
		length = int(n)
	}

	if err := r.expectInput(length, "string bytes"); err != nil {
		return "", err
	}

	return string(r.buf.Next(length)), nil
}

// readCount reads an element count per the numeric mode and rejects
// negatives before anything is charged for the payload.
func (r *Reader) readCount(what string) (int, error) {
	v, err := r.readInt()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", errs.ErrInvalidLength, what, v)
	}

	return int(v), nil
}

func (r *Reader) readByteArray() (tag.ByteArray, error) {
	size, err := r.readCount("byte array length")
	if err != nil {
		return nil, err
	}
	if err := r.expectInput(size, "byte array data"); err != nil {
		return nil, err
	}

	return tag.ByteArray(slices.Clone(r.buf.Next(size))), nil
}

// readIntArray charges the array's declared footprint once up front: the
// element count in varint mode, four bytes per element in fixed mode. The
// element reads that follow are then uncharged.
func (r *Reader) readIntArray() (tag.IntArray, error) {
	size, err := r.readCount("int array length")
	if err != nil {
		return nil, err
	}

	charge := size
	if !r.cfg.useVarint {
		if size > (math.MaxInt-3)/4 {
			return nil, fmt.Errorf("%w: int array of %d elements", errs.ErrInvalidLength, size)
		}
		charge = 4 * size
	}
	if err := r.expectInput(charge, "int array data"); err != nil {
		return nil, err
	}

	out := make(tag.IntArray, size)
	if r.cfg.useVarint {
		raw := rawByteReader{r}
		for i := range out {
			v, err := encoding.ReadVarint32(raw)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil
	}

	for i := range out {
		out[i] = int32(r.cfg.engine.Uint32(r.buf.Next(4))) //nolint:gosec
	}

	return out, nil
}

// rawByteReader reads without touching the budget; int array elements use
// it after the array's single upfront charge.
type rawByteReader struct {
	r *Reader
}

func (rr rawByteReader) ReadByte() (byte, error) {
	if rr.r.buf.Readable() < 1 {
		return 0, fmt.Errorf("%w: expected int array data", errs.ErrTruncated)
	}

	return rr.r.buf.NextByte(), nil
}
