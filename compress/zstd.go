package compress

// ZstdCompressor wraps documents in the Zstandard frame format, the best
// ratio-for-speed tradeoff of the supported containers. A good default for
// archives and network transfer of large documents.
//
// Two implementations back this type: a pure-Go one and a cgo binding to
// libzstd, selected by build tags. Both produce standard zstd frames and
// interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
