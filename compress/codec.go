package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// maxDecompressedSize caps how much any codec will inflate a payload.
// A compressed document whose contents exceed it is treated as corrupt
// (or hostile) rather than decompressed into memory.
const maxDecompressedSize = 128 * 1024 * 1024

// Compressor compresses a complete encoded document into a container
// format suitable for storage or transmission.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor recovers an encoded document from its compressed container.
//
// Implementations validate the container format and fail on corrupt input.
// Decompressed output larger than 128 MiB is rejected rather than
// allocated.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. Empty input yields empty output.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the outcome of one compression operation.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns compressed size divided by original size.
//
// Values less than 1.0 indicate successful compression; values above 1.0
// indicate the container overhead outweighed the savings.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zlib, Zstd or LZ4)
//   - target: Description of target usage (for error messages)
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Detect identifies the compression container from its leading magic bytes.
// Input that matches no known container is reported as CompressionNone,
// which covers raw uncompressed documents.
func Detect(data []byte) format.CompressionType {
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return format.CompressionGzip
	case len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd:
		return format.CompressionZstd
	case len(data) >= 4 && data[0] == 0x04 && data[1] == 0x22 && data[2] == 0x4d && data[3] == 0x18:
		return format.CompressionLZ4
	case looksZlib(data):
		return format.CompressionZlib
	default:
		return format.CompressionNone
	}
}

// looksZlib applies the RFC 1950 header check: deflate method, a window
// size within spec, and the FCHECK divisibility rule.
func looksZlib(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if data[0]&0x0f != 0x08 || data[0]>>4 > 7 {
		return false
	}

	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// readAllLimited drains r up to the decompression cap, failing instead of
// allocating past it.
func readAllLimited(r io.Reader, algorithm string) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.Copy(&buf, io.LimitReader(r, maxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", algorithm, err)
	}
	if n > maxDecompressedSize {
		return nil, fmt.Errorf("%w: %s payload inflates past %d bytes", errs.ErrSizeLimit, algorithm, maxDecompressedSize)
	}

	return buf.Bytes(), nil
}
