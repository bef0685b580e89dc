package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/buffer"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// helloDoc returns the encoding of Compound "hello" {"name": "world"} under
// the given options.
func helloDoc(t *testing.T, opts ...Option) []byte {
	t.Helper()

	root := tag.NewCompound("hello")
	root.SetString("name", "world")

	return encodeCompound(t, root, opts...)
}

func encodeCompound(t *testing.T, root *tag.Compound, opts ...Option) []byte {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)
	defer w.Release()

	require.NoError(t, w.WriteCompound(root))
	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// ============================================================================
// Basic decoding
// ============================================================================

func TestReader_ParseCompound(t *testing.T) {
	data := helloDoc(t)

	r, err := NewReader(data)
	require.NoError(t, err)

	v, err := r.Parse()
	require.NoError(t, err)

	root, ok := v.(*tag.Compound)
	require.True(t, ok)
	assert.Equal(t, "hello", root.Name())
	assert.Equal(t, "world", root.GetString("name", ""))
	assert.Equal(t, 0, r.Remaining())
}

func TestReader_ParseListRoot(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Release()
	require.NoError(t, w.WriteList(tag.NewList(tag.Int(1), tag.Int(2), tag.Int(3))))

	r, err := NewReader(w.Bytes())
	require.NoError(t, err)

	v, err := r.Parse()
	require.NoError(t, err)

	list, ok := v.(*tag.List)
	require.True(t, ok)
	require.Equal(t, 3, list.Len())
	assert.Equal(t, tag.Int(2), list.Elems[1])
	assert.Equal(t, 0, r.Remaining())
}

func TestReader_ReadCompoundRejectsListRoot(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Release()
	require.NoError(t, w.WriteList(tag.NewList(tag.Byte(1))))

	r, err := NewReader(w.Bytes())
	require.NoError(t, err)

	_, err = r.ReadCompound()
	require.ErrorIs(t, err, errs.ErrUnexpectedRootTag)
}

func TestReader_EmptyLists(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		opts []Option
	}{
		{
			name: "byte placeholder fixed",
			data: []byte{0x09, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "byte placeholder varint",
			data: []byte{0x09, 0x00, 0x01, 0x00},
			opts: []Option{WithVarint(true)},
		},
		{
			// Any valid element kind with a zero count is an empty list.
			name: "int placeholder fixed",
			data: []byte{0x09, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.data, tt.opts...)
			require.NoError(t, err)

			v, err := r.Parse()
			require.NoError(t, err)

			list, ok := v.(*tag.List)
			require.True(t, ok)
			assert.Equal(t, 0, list.Len())
			assert.Equal(t, 0, r.Remaining())
		})
	}
}

func TestReader_SequentialDocuments(t *testing.T) {
	first := tag.NewCompound("first")
	first.SetInt("n", 1)

	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Release()
	require.NoError(t, w.WriteCompound(first))
	require.NoError(t, w.WriteList(tag.NewList(tag.String("a"))))

	r, err := NewReader(w.Bytes())
	require.NoError(t, err)

	v1, err := r.Parse()
	require.NoError(t, err)
	c, ok := v1.(*tag.Compound)
	require.True(t, ok)
	assert.Equal(t, "first", c.Name())

	v2, err := r.Parse()
	require.NoError(t, err)
	l, ok := v2.(*tag.List)
	require.True(t, ok)
	assert.Equal(t, 1, l.Len())

	assert.Equal(t, 0, r.Remaining())
}

func TestReader_TrailingBytesStayUnread(t *testing.T) {
	data := append(helloDoc(t, WithVarint(true)), 0xde, 0xad)

	r, err := NewReader(data, WithVarint(true))
	require.NoError(t, err)

	_, err = r.Parse()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Remaining())
}

func TestReader_CallerBufferPosition(t *testing.T) {
	doc := helloDoc(t)
	data := append([]byte{0xff, 0xff}, doc...)

	buf := buffer.FromBytes(data)
	buf.Skip(2)

	r, err := NewReaderBuffer(buf)
	require.NoError(t, err)

	root, err := r.ReadCompound()
	require.NoError(t, err)
	assert.Equal(t, "hello", root.Name())

	_, err = NewReaderBuffer(nil)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

// ============================================================================
// Malformed input
// ============================================================================

func TestReader_EmptyInput(t *testing.T) {
	r, err := NewReader(nil)
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReader_UnknownTagID(t *testing.T) {
	r, err := NewReader([]byte{0x0c})
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrUnknownTagID)
	assert.ErrorContains(t, err, "0x0c")

	// The same rejection applies to an entry's type byte mid-document.
	data := helloDoc(t)
	data[8] = 0x7f
	r, err = NewReader(data)
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrUnknownTagID)

	// And to the element type of a list header, even with a zero count.
	r, err = NewReader([]byte{0x09, 0x00, 0x00, 0x0c, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrUnknownTagID)
}

func TestReader_UnexpectedRootTag(t *testing.T) {
	// A Byte document: valid kind, invalid as a root.
	r, err := NewReader([]byte{0x01, 0x00, 0x00, 0x2a})
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrUnexpectedRootTag)
}

func TestReader_NegativeLengths(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "byte array length",
			data: []byte{0x0a, 0x00, 0x00, 0x07, 0x00, 0x01, 'b', 0xff, 0xff, 0xff, 0xff, 0x00},
		},
		{
			name: "int array length",
			data: []byte{0x0a, 0x00, 0x00, 0x0b, 0x00, 0x01, 'i', 0xff, 0xff, 0xff, 0xff, 0x00},
		},
		{
			name: "list count",
			data: []byte{0x09, 0x00, 0x00, 0x01, 0xff, 0xff, 0xff, 0xff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.data)
			require.NoError(t, err)

			_, err = r.Parse()
			require.ErrorIs(t, err, errs.ErrInvalidLength)
		})
	}
}

func TestReader_OversizedVarintStringLength(t *testing.T) {
	// Unsigned varint 0xffffffff exceeds the int32 range allowed for
	// string lengths.
	data := []byte{0x0a, 0x00, 0x08, 0x01, 'k', 0xff, 0xff, 0xff, 0xff, 0x0f}

	r, err := NewReader(data, WithVarint(true))
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestReader_VarintOverflow(t *testing.T) {
	// Five continuation bytes never terminate a 32-bit varint.
	data := []byte{0x0a, 0x00, 0x08, 0x01, 'k', 0xff, 0xff, 0xff, 0xff, 0xff}

	r, err := NewReader(data, WithVarint(true))
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
}

func TestReader_EndTypedNonEmptyList(t *testing.T) {
	data := []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}

	r, err := NewReader(data)
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrUnknownTagID)
}

func TestReader_DepthLimit(t *testing.T) {
	root := tag.NewCompound("root")
	cur := root
	for i := 0; i < 3; i++ {
		child := tag.NewCompound("child")
		require.NoError(t, cur.AddChild(child))
		cur = child
	}
	data := encodeCompound(t, root)

	r, err := NewReader(data, WithMaxDepth(3))
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)

	r, err = NewReader(data, WithMaxDepth(4))
	require.NoError(t, err)
	got, err := r.ReadCompound()
	require.NoError(t, err)
	assert.True(t, root.Equal(got))
}

func TestReader_TruncationSweep(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "fixed big-endian"},
		{name: "varint little-endian", opts: []Option{WithVarint(true), WithLittleEndian()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeCompound(t, buildTestCompound(t), tt.opts...)

			for i := range data {
				r, err := NewReader(data[:i], tt.opts...)
				require.NoError(t, err)

				_, err = r.Parse()
				require.ErrorIs(t, err, errs.ErrTruncated, "prefix of %d bytes", i)
			}
		})
	}
}

// ============================================================================
// Allocation budget
// ============================================================================

func TestReader_AllocationBudgetExact(t *testing.T) {
	// Every byte of these documents is charged exactly once, so the
	// document length is the exact budget needed.
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "fixed"},
		{name: "varint", opts: []Option{WithVarint(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := helloDoc(t, tt.opts...)

			opts := append([]Option{WithAllocationLimit(len(data))}, tt.opts...)
			r, err := NewReader(data, opts...)
			require.NoError(t, err)
			_, err = r.Parse()
			require.NoError(t, err)

			opts = append([]Option{WithAllocationLimit(len(data) - 1)}, tt.opts...)
			r, err = NewReader(data, opts...)
			require.NoError(t, err)
			_, err = r.Parse()
			require.ErrorIs(t, err, errs.ErrAllocationLimit)
		})
	}
}

func TestReader_BudgetChargedBeforeAvailability(t *testing.T) {
	// The value string declares 1000 bytes, none of which follow. With a
	// budget in place the declared length must exhaust the budget first;
	// the truncation is only reported when no budget intervenes.
	data := []byte{0x0a, 0x00, 0x08, 0x01, 'k', 0xe8, 0x07}

	r, err := NewReader(data, WithVarint(true), WithAllocationLimit(100))
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrAllocationLimit)
	require.NotErrorIs(t, err, errs.ErrTruncated)

	r, err = NewReader(data, WithVarint(true))
	require.NoError(t, err)
	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReader_NegativeLengthRejectedBeforeCharge(t *testing.T) {
	// 11 bytes of charges precede the negative length; the budget admits
	// them exactly, proving the 0xffffffff count is never charged.
	data := []byte{0x0a, 0x00, 0x00, 0x07, 0x00, 0x01, 'b', 0xff, 0xff, 0xff, 0xff, 0x00}

	r, err := NewReader(data, WithAllocationLimit(11))
	require.NoError(t, err)

	_, err = r.Parse()
	require.ErrorIs(t, err, errs.ErrInvalidLength)
	require.NotErrorIs(t, err, errs.ErrAllocationLimit)
}

func TestReader_IntArrayChargedUpfront(t *testing.T) {
	// Varint int arrays charge one byte per element up front and read the
	// element bytes uncharged. The single element zigzags to two bytes, so
	// the 10-byte document decodes within a 9-byte budget.
	root := tag.NewCompound("")
	root.SetIntArray("ia", []int32{300})
	data := encodeCompound(t, root, WithVarint(true))
	require.Len(t, data, 10)

	r, err := NewReader(data, WithVarint(true), WithAllocationLimit(9))
	require.NoError(t, err)
	got, err := r.ReadCompound()
	require.NoError(t, err)
	assert.Equal(t, []int32{300}, got.GetIntArray("ia", nil))

	r, err = NewReader(data, WithVarint(true), WithAllocationLimit(8))
	require.NoError(t, err)
	_, err = r.ReadCompound()
	require.ErrorIs(t, err, errs.ErrAllocationLimit)
}

func TestReader_UnboundedByDefault(t *testing.T) {
	root := tag.NewCompound("")
	root.SetByteArray("payload", make([]byte, 1<<16))
	data := encodeCompound(t, root)

	r, err := NewReader(data)
	require.NoError(t, err)

	got, err := r.ReadCompound()
	require.NoError(t, err)
	assert.Len(t, got.GetByteArray("payload", nil), 1<<16)
}
