// Package endian provides byte order engines for binary encoding and decoding.
//
// The package combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, so fixed-width
// readers and writers can both load values from slices and append values
// to buffers through one engine.
//
// # Basic Usage
//
// Big-endian is the classic byte order for named-binary-tag documents:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, value)
//
// Little-endian is used by the mobile and console world:
//
//	engine := endian.GetLittleEndianEngine()
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless, and safe
// for concurrent use.
package endian

import "encoding/binary"

// EndianEngine is the union of encoding/binary's ByteOrder and
// AppendByteOrder, satisfied by binary.BigEndian and binary.LittleEndian.
// Holding one engine gives a codec both slice reads (Uint32) and buffer
// appends (AppendUint32) in a single dependency.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
