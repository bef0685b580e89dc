// Package compress provides the compression codecs used to store and
// exchange encoded documents.
//
// Documents compress well: keys repeat, numeric payloads cluster, and
// string tables share prefixes. Compression is applied to the complete
// encoded byte stream, never to individual tags, so any codec here can
// wrap any document regardless of its byte order or numeric mode.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are obtained from the factory:
//
//	codec, err := compress.GetCodec(format.CompressionGzip)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(encoded)
//
// For reading, Detect sniffs the container from its magic bytes so callers
// do not need out-of-band knowledge of how a file was written:
//
//	codec, _ := compress.GetCodec(compress.Detect(raw))
//	encoded, err := codec.Decompress(raw)
//
// # Supported containers
//
// **None** (format.CompressionNone): raw pass-through. For small documents
// and debugging; the encoded bytes land on disk unchanged.
//
// **Gzip** (format.CompressionGzip): the traditional container for world
// and player data files. Self-describing (1f 8b magic), CRC-checked,
// universally readable.
//
// **Zlib** (format.CompressionZlib): the bare deflate container used for
// network payloads and chunk records inside region files. No magic string;
// Detect falls back to the RFC 1950 header check bits.
//
// **Zstd** (format.CompressionZstd): modern archival container with the
// best ratio at comparable speed. Backed by pure Go or libzstd depending
// on build mode; both emit standard frames.
//
// **LZ4** (format.CompressionLZ4): frame-format container favoring
// decompression speed over ratio, for read-heavy document stores.
//
// # Selection guide
//
// | Scenario                       | Recommended |
// |--------------------------------|-------------|
// | Interchange with existing files| Gzip        |
// | Network payloads, region data  | Zlib        |
// | Cold storage / archival        | Zstd        |
// | Read-heavy caches              | LZ4         |
// | Debugging, tiny documents      | None        |
//
// # Safety
//
// Decompression output is capped at 128 MiB. A container whose contents
// inflate past the cap fails with a size-limit error instead of exhausting
// memory, so untrusted files can be opened with bounded cost. Corrupt
// containers fail their checksum or header validation with a wrapped error
// from the underlying library.
//
// # Thread safety
//
// All codecs are stateless values safe for concurrent use; internal
// encoder and decoder instances are pooled per algorithm.
package compress
