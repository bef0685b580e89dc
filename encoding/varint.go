package encoding

import (
	"fmt"
	"io"

	"github.com/arloliu/nbt/errs"
)

// MaxVarint32Len and MaxVarint64Len are the maximum encoded sizes of 32-bit
// and 64-bit varints. A varint carrying continuation bits past these widths
// is malformed.
const (
	MaxVarint32Len = 5
	MaxVarint64Len = 10
)

// AppendUvarint32 appends v to dst as an unsigned base-128 varint and
// returns the extended slice.
//
// Each byte carries seven payload bits, least significant group first, with
// the high bit set on every byte except the last. Values below 128 encode
// as a single byte, which makes this the cheap path for small lengths and
// counts.
func AppendUvarint32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// AppendUvarint64 appends v to dst as an unsigned base-128 varint and
// returns the extended slice.
func AppendUvarint64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// AppendVarint32 appends v to dst as a zigzag-encoded signed varint and
// returns the extended slice.
//
// Zigzag encoding maps signed values to unsigned ones so that small
// magnitudes of either sign stay short: 0 stays 0, -1 becomes 1, 1 becomes
// 2, -2 becomes 3, and so on.
func AppendVarint32(dst []byte, v int32) []byte {
	uval := uint32(v<<1) ^ uint32(v>>31) //nolint:gosec
	return AppendUvarint32(dst, uval)
}

// AppendVarint64 appends v to dst as a zigzag-encoded signed varint and
// returns the extended slice.
func AppendVarint64(dst []byte, v int64) []byte {
	uval := uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
	return AppendUvarint64(dst, uval)
}

// ReadUvarint32 decodes an unsigned 32-bit varint from r.
//
// Errors from r are returned unchanged, so a budget-charging byte source
// keeps its own error identity. A varint with a continuation bit on its
// fifth byte is rejected with errs.ErrVarintOverflow.
func ReadUvarint32(r io.ByteReader) (uint32, error) {
	var out uint32
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		out |= uint32(b&0x7f) << (i * 7)
		if b&0x80 == 0 {
			return out, nil
		}
		if i+1 >= MaxVarint32Len {
			return 0, fmt.Errorf("%w: 32-bit varint exceeds %d bytes", errs.ErrVarintOverflow, MaxVarint32Len)
		}
	}
}

// ReadUvarint64 decodes an unsigned 64-bit varint from r.
//
// A varint with a continuation bit on its tenth byte is rejected with
// errs.ErrVarintOverflow.
func ReadUvarint64(r io.ByteReader) (uint64, error) {
	var out uint64
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		out |= uint64(b&0x7f) << (i * 7)
		if b&0x80 == 0 {
			return out, nil
		}
		if i+1 >= MaxVarint64Len {
			return 0, fmt.Errorf("%w: 64-bit varint exceeds %d bytes", errs.ErrVarintOverflow, MaxVarint64Len)
		}
	}
}

// ReadVarint32 decodes a zigzag-encoded signed 32-bit varint from r.
func ReadVarint32(r io.ByteReader) (int32, error) {
	uval, err := ReadUvarint32(r)
	if err != nil {
		return 0, err
	}

	return int32(uval>>1) ^ -int32(uval&1), nil //nolint:gosec
}

// ReadVarint64 decodes a zigzag-encoded signed 64-bit varint from r.
func ReadVarint64(r io.ByteReader) (int64, error) {
	uval, err := ReadUvarint64(r)
	if err != nil {
		return 0, err
	}

	return int64(uval>>1) ^ -int64(uval&1), nil //nolint:gosec
}

// UvarintLen returns the number of bytes required to encode n as an
// unsigned varint.
// This is a fast inline calculation without allocating a temporary buffer.
func UvarintLen(n uint64) int {
	if n < 1<<7 {
		return 1
	}
	if n < 1<<14 {
		return 2
	}
	if n < 1<<21 {
		return 3
	}
	if n < 1<<28 {
		return 4
	}
	if n < 1<<35 {
		return 5
	}
	if n < 1<<42 {
		return 6
	}
	if n < 1<<49 {
		return 7
	}
	if n < 1<<56 {
		return 8
	}
	if n < 1<<63 {
		return 9
	}

	return 10
}

// Varint32Len returns the number of bytes required to encode v as a
// zigzag-encoded signed varint.
func Varint32Len(v int32) int {
	return UvarintLen(uint64(uint32(v<<1) ^ uint32(v>>31))) //nolint:gosec
}

// Varint64Len returns the number of bytes required to encode v as a
// zigzag-encoded signed varint.
func Varint64Len(v int64) int {
	return UvarintLen(uint64(v<<1) ^ uint64(v>>63)) //nolint:gosec
}
