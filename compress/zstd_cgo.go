//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/nbt/errs"
)

// Compress compresses the input data into a Zstandard frame through
// libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses a Zstandard frame through libzstd. The library
// sizes output from the frame's content header; the package cap is applied
// to the result.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(decompressed) > maxDecompressedSize {
		return nil, fmt.Errorf("%w: zstd payload inflates past %d bytes", errs.ErrSizeLimit, maxDecompressedSize)
	}

	return decompressed, nil
}
