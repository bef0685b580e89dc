package format

type (
	TagID           uint8
	CompressionType uint8
)

const (
	TagEnd       TagID = 0  // TagEnd terminates a compound payload.
	TagByte      TagID = 1  // TagByte is a signed 8-bit integer.
	TagShort     TagID = 2  // TagShort is a signed 16-bit integer.
	TagInt       TagID = 3  // TagInt is a signed 32-bit integer.
	TagLong      TagID = 4  // TagLong is a signed 64-bit integer.
	TagFloat     TagID = 5  // TagFloat is an IEEE-754 32-bit float.
	TagDouble    TagID = 6  // TagDouble is an IEEE-754 64-bit float.
	TagByteArray TagID = 7  // TagByteArray is a length-prefixed byte sequence.
	TagString    TagID = 8  // TagString is a length-prefixed UTF-8 string.
	TagList      TagID = 9  // TagList is a homogeneous sequence of unnamed payloads.
	TagCompound  TagID = 10 // TagCompound is a set of named entries ended by TagEnd.
	TagIntArray  TagID = 11 // TagIntArray is a count-prefixed sequence of 32-bit integers.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip compression.
	CompressionZlib CompressionType = 0x3 // CompressionZlib represents zlib compression.
	CompressionZstd CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frame compression.
)

// Valid reports whether t is one of the defined tag identifiers.
func (t TagID) Valid() bool {
	return t <= TagIntArray
}

func (t TagID) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a user-facing name to its CompressionType.
// Accepted names are "none", "gzip", "zlib", "zstd" and "lz4".
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "gzip":
		return CompressionGzip, true
	case "zlib":
		return CompressionZlib, true
	case "zstd":
		return CompressionZstd, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
