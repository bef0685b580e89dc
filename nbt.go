// Package nbt implements the NBT (named binary tag) serialization format:
// a compact binary encoding for trees of named, typed values.
//
// An NBT document is a single root tag, almost always a Compound, holding an
// arbitrarily nested tree of scalars, strings, arrays, lists and further
// compounds. The format is self-describing (every payload is preceded by its
// type) and streams without lookahead, which makes it a good fit for game
// saves, world chunks and similar structured snapshots.
//
// # Core Features
//
//   - Two length encodings: classic fixed-width prefixes or compact
//     varint/zigzag prefixes (~30-60% smaller for typical documents)
//   - Configurable byte order (big-endian default, little-endian optional)
//   - Hardened decoder: allocation budget, nesting depth limit, and precise
//     sentinel errors for truncated or malformed input
//   - Optional compression (gzip, zlib, zstd, LZ4) with automatic
//     detection on read
//   - Canonical encoding mode for stable, comparable output
//   - Content fingerprinting (64-bit xxHash64) for cheap change detection
//
// # Basic Usage
//
// Building and encoding a document:
//
//	import "github.com/arloliu/nbt"
//
//	root := tag.NewCompound("hello world")
//	root.SetString("name", "Bananrama")
//
//	data, _ := nbt.Encode(root)
//
// Decoding:
//
//	root, _ := nbt.Decode(data)
//	fmt.Println(root.GetString("name", ""))
//
// Reading a possibly-compressed file:
//
//	v, _ := nbt.ReadFile("level.dat")
//
// Writing with compression:
//
//	_ = nbt.WriteFile("level.dat", root, format.CompressionGzip)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the wire and
// compress packages, simplifying the most common use cases. For fine-grained
// control (caller-owned buffers, incremental reads from a shared buffer),
// use the wire package directly.
package nbt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/hash"
	"github.com/arloliu/nbt/tag"
	"github.com/arloliu/nbt/wire"
)

// Encode serializes root as a complete NBT document and returns the bytes.
//
// The returned slice is freshly allocated and owned by the caller.
//
// Parameters:
//   - root: The compound to serialize (must be non-nil)
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - []byte: The encoded document.
//   - error: An error if the configuration or the tree is invalid.
//
// Available options:
//   - wire.WithBigEndian() / wire.WithLittleEndian()
//   - wire.WithVarint(true|false)
//   - wire.WithCanonicalOrder(true|false)
//   - wire.WithMaxDepth(n) / wire.WithMaxEncodedSize(n)
//
// Example:
//
//	data, err := nbt.Encode(root, wire.WithVarint(true))
func Encode(root *tag.Compound, opts ...wire.Option) ([]byte, error) {
	w, err := wire.NewWriter(opts...)
	if err != nil {
		return nil, err
	}
	defer w.Release()

	if err := w.WriteCompound(root); err != nil {
		return nil, err
	}

	return slices.Clone(w.Bytes()), nil
}

// EncodeList serializes list as a complete NBT document with a List root.
//
// List roots carry an empty name on the wire; the list's element type and
// count follow as usual. Use this for the rare documents whose top level is
// a sequence rather than a compound.
//
// Parameters:
//   - list: The list to serialize (must be non-nil)
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - []byte: The encoded document.
//   - error: An error if the configuration or the tree is invalid.
func EncodeList(list *tag.List, opts ...wire.Option) ([]byte, error) {
	w, err := wire.NewWriter(opts...)
	if err != nil {
		return nil, err
	}
	defer w.Release()

	if err := w.WriteList(list); err != nil {
		return nil, err
	}

	return slices.Clone(w.Bytes()), nil
}

// Decode parses data as an NBT document with a Compound root.
//
// The decoder options must match how the document was encoded (byte order
// and length encoding are not self-describing). Documents with a List root
// are rejected; use Parse for those.
//
// Parameters:
//   - data: The raw document bytes
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - *tag.Compound: The decoded root.
//   - error: An error if the input is malformed, truncated, or exceeds a
//     configured limit.
//
// Available options:
//   - wire.WithBigEndian() / wire.WithLittleEndian()
//   - wire.WithVarint(true|false)
//   - wire.WithAllocationLimit(n)
//   - wire.WithMaxDepth(n)
//
// Example:
//
//	root, err := nbt.Decode(data, wire.WithAllocationLimit(64<<20))
func Decode(data []byte, opts ...wire.Option) (*tag.Compound, error) {
	r, err := wire.NewReader(data, opts...)
	if err != nil {
		return nil, err
	}

	return r.ReadCompound()
}

// Parse parses data as an NBT document whose root is either a Compound or a
// List.
//
// Most callers want Decode; Parse exists for the documents (and tooling)
// where a List root is legal.
//
// Parameters:
//   - data: The raw document bytes
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - tag.Value: The decoded root, a *tag.Compound or a *tag.List.
//   - error: An error if the input is malformed, truncated, or exceeds a
//     configured limit.
func Parse(data []byte, opts ...wire.Option) (tag.Value, error) {
	r, err := wire.NewReader(data, opts...)
	if err != nil {
		return nil, err
	}

	return r.Parse()
}

// Read slurps r and decodes the contents as an NBT document, transparently
// decompressing first when the input carries a known compression signature.
//
// Detection sniffs the leading magic bytes (gzip, zstd, LZ4 frame, zlib);
// raw NBT never matches a signature, so uncompressed documents pass
// straight through. Decompressed size is capped by the compress package to
// bound hostile inputs.
//
// Parameters:
//   - r: The input stream (read to EOF)
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - tag.Value: The decoded root, a *tag.Compound or a *tag.List.
//   - error: An error if reading, decompression, or decoding fails.
//
// Example:
//
//	resp, _ := http.Get(url)
//	defer resp.Body.Close()
//	v, err := nbt.Read(resp.Body)
func Read(r io.Reader, opts ...wire.Option) (tag.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return decodeDetected(data, opts)
}

// ReadFile reads the named file and decodes it as an NBT document,
// transparently decompressing like Read.
//
// Parameters:
//   - path: The file to read
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - tag.Value: The decoded root, a *tag.Compound or a *tag.List.
//   - error: An error if reading, decompression, or decoding fails.
//
// Example:
//
//	v, err := nbt.ReadFile("saves/world/level.dat")
func ReadFile(path string, opts ...wire.Option) (tag.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return decodeDetected(data, opts)
}

func decodeDetected(data []byte, opts []wire.Option) (tag.Value, error) {
	if ct := compress.Detect(data); ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, err
		}
		data, err = codec.Decompress(data)
		if err != nil {
			return nil, err
		}
	}

	return Parse(data, opts...)
}

// Write encodes root and writes the (optionally compressed) document to w.
//
// Unlike Read, the compression type is explicit: the writer of a document
// decides its on-disk representation. Use format.CompressionNone for raw
// output.
//
// Parameters:
//   - w: The output stream
//   - root: The compound to serialize (must be non-nil)
//   - compression: The compression applied to the encoded document
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - error: An error if encoding, compression, or writing fails.
//
// Example:
//
//	err := nbt.Write(file, root, format.CompressionZstd, wire.WithVarint(true))
func Write(w io.Writer, root *tag.Compound, compression format.CompressionType, opts ...wire.Option) error {
	data, err := Encode(root, opts...)
	if err != nil {
		return err
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}
	data, err = codec.Compress(data)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// WriteFile encodes root and writes the (optionally compressed) document to
// the named file, creating or truncating it. Output is buffered.
//
// Parameters:
//   - path: The file to create
//   - root: The compound to serialize (must be non-nil)
//   - compression: The compression applied to the encoded document
//   - opts: Optional configuration functions (see wire.Option)
//
// Returns:
//   - error: An error if encoding, compression, or file I/O fails.
//
// Example:
//
//	err := nbt.WriteFile("level.dat", root, format.CompressionGzip)
func WriteFile(path string, root *tag.Compound, compression format.CompressionType, opts ...wire.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := Write(bw, root, compression, opts...); err != nil {
		f.Close()

		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// Fingerprint returns a 64-bit content digest of root.
//
// The digest is computed with xxHash64 over a canonical encoding
// (big-endian, fixed-width lengths, entries sorted by key), so it depends
// only on the tree's content: two compounds holding equal entries hash
// identically regardless of insertion order or how they were decoded.
//
// The hash function guarantees:
//   - Deterministic: same tree always produces the same digest
//   - Collision-resistant: ~1 in 2^64 for distinct trees (negligible)
//   - Fast: hashing is a small fraction of the encode cost
//
// Use this to:
//   - Detect changed documents without byte-comparing them
//   - Deduplicate equal trees across files or caches
//   - Key a cache of expensive per-document computations
//
// Parameters:
//   - root: The compound to digest (must be non-nil)
//
// Returns:
//   - uint64: The content digest.
//   - error: An error if the tree cannot be encoded.
//
// Example:
//
//	before, _ := nbt.Fingerprint(root)
//	mutate(root)
//	after, _ := nbt.Fingerprint(root)
//	if before != after {
//	    // persist the change
//	}
func Fingerprint(root *tag.Compound) (uint64, error) {
	data, err := Encode(root,
		wire.WithBigEndian(),
		wire.WithVarint(false),
		wire.WithCanonicalOrder(true),
	)
	if err != nil {
		return 0, err
	}

	return hash.Sum64(data), nil
}
