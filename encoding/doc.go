// Package encoding implements the variable-length integer codec used by the
// compact wire mode.
//
// Two primitives are provided, in 32-bit and 64-bit widths:
//
// Unsigned varints - base-128 with continuation bits (LEB128):
//
//	Value 0-127:     0xxxxxxx                    (1 byte)
//	Value 128-16383: 1xxxxxxx 0xxxxxxx           (2 bytes)
//	Value 16384+:    1xxxxxxx 1xxxxxxx 0xxxxxxx  (3+ bytes)
//
// Signed varints - zigzag mapping layered on the unsigned form, so small
// magnitudes of either sign stay short:
//
//	Positive: 0 → 0, 1 → 2, 2 → 4, 3 → 6
//	Negative: -1 → 1, -2 → 3, -3 → 5
//
// String and array lengths travel as unsigned varints; integer payloads and
// element counts travel zigzag-encoded. A 32-bit varint never exceeds 5
// bytes and a 64-bit varint never exceeds 10; a continuation bit past that
// width fails with errs.ErrVarintOverflow rather than silently wrapping.
//
// # Usage
//
// Encoding appends to a caller-owned slice:
//
//	buf := encoding.AppendUvarint32(nil, 300)   // [0xac, 0x02]
//	buf = encoding.AppendVarint64(buf, -1)      // appends [0x01]
//
// Decoding consumes an io.ByteReader one byte at a time, which lets the
// caller meter every byte read (the wire decoder charges its allocation
// budget this way):
//
//	v, err := encoding.ReadUvarint32(r)
//
// # Performance
//
// Appends are branch-light loops with no allocation; values below 128 hit
// the single-byte fast path. Reads do no buffering of their own, so the
// byte source should be a memory-backed reader.
package encoding
