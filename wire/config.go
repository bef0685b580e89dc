// Package wire implements the binary codec for tag trees: a Writer that
// serializes a Compound or List root into bytes and a Reader that parses
// bytes back into a tree.
//
// Two axes of the format are configured per instance and must match between
// producer and consumer: the byte order of fixed-width fields, and the
// numeric mode deciding whether Int, Long and length fields are fixed-width
// or varint-encoded. Float and Double are always fixed-width.
//
// # Encoding
//
//	w, err := wire.NewWriter(wire.WithLittleEndian(), wire.WithVarint(true))
//	if err != nil { ... }
//	defer w.Release()
//	if err := w.WriteCompound(root); err != nil { ... }
//	data := w.Bytes()
//
// # Decoding
//
//	r, err := wire.NewReader(data,
//		wire.WithLittleEndian(), wire.WithVarint(true),
//		wire.WithAllocationLimit(1<<20))
//	if err != nil { ... }
//	root, err := r.ReadCompound()
package wire

import (
	"fmt"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/internal/options"
)

const (
	// DefaultMaxEncodedSize is the writer's output ceiling unless overridden.
	DefaultMaxEncodedSize = 10 * 1024 * 1024

	// DefaultMaxDepth is the nesting bound applied to both encoding and
	// decoding unless overridden.
	DefaultMaxDepth = 512
)

// Config holds the codec settings shared by Writer and Reader. All fields
// are fixed at construction time and immutable afterward.
type Config struct {
	engine         endian.EndianEngine
	useVarint      bool
	maxDepth       int
	allocLimit     int
	maxEncodedSize int
	canonical      bool
}

func newConfig() Config {
	return Config{
		engine:         endian.GetBigEndianEngine(),
		maxDepth:       DefaultMaxDepth,
		allocLimit:     -1, // unbounded
		maxEncodedSize: DefaultMaxEncodedSize,
	}
}

// Option represents a functional option for configuring a Writer or Reader.
// Options that only affect one side are accepted and ignored by the other.
type Option = options.Option[*Config]

// WithBigEndian sets big-endian byte order for fixed-width fields.
// It is the default.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian sets little-endian byte order for fixed-width fields.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithVarint enables varint numeric mode: Int and Long payloads plus list
// counts and array lengths become zigzag varints, and string lengths become
// unsigned varints. Float and Double stay fixed-width.
func WithVarint(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.useVarint = enabled
	})
}

// WithAllocationLimit sets the decoder's allocation budget in bytes. Every
// read charges the budget; once exhausted, decoding fails with
// errs.ErrAllocationLimit. The default is unbounded.
func WithAllocationLimit(limit int) Option {
	return options.New(func(c *Config) error {
		if limit < 0 {
			return fmt.Errorf("invalid allocation limit: %d", limit)
		}
		c.allocLimit = limit

		return nil
	})
}

// WithMaxDepth sets the maximum container nesting depth for encoding and
// decoding.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("invalid max depth: %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithMaxEncodedSize sets the writer's output size ceiling in bytes.
func WithMaxEncodedSize(size int) Option {
	return options.New(func(c *Config) error {
		if size < 1 {
			return fmt.Errorf("invalid max encoded size: %d", size)
		}
		c.maxEncodedSize = size

		return nil
	})
}

// WithCanonicalOrder makes the writer emit compound entries in sorted key
// order, producing deterministic bytes for identical trees. Useful for
// golden files and content fingerprinting.
func WithCanonicalOrder(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.canonical = enabled
	})
}
