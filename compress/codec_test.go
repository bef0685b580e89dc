package compress

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
	"github.com/arloliu/nbt/wire"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"Gzip": NewGzipCompressor(),
		"Zlib": NewZlibCompressor(),
		"Zstd": NewZstdCompressor(),
		"LZ4":  NewLZ4Compressor(),
	}
}

// buildDocumentBytes encodes a chunk-like document with the given number of
// children; compression inputs in these tests are real encoded trees.
func buildDocumentBytes(entries int) []byte {
	root := tag.NewCompound("level")
	for i := 0; i < entries; i++ {
		child := tag.NewCompound(fmt.Sprintf("chunk_%d", i))
		child.SetInt("x", int32(i%32))      //nolint:gosec
		child.SetInt("z", int32(i/32))      //nolint:gosec
		child.SetLong("last_update", 1724572800+int64(i))
		child.SetString("status", "full")
		child.SetByteArray("biomes", bytes.Repeat([]byte{byte(i % 7)}, 64))
		if err := root.AddChild(child); err != nil {
			panic(err)
		}
	}

	w, err := wire.NewWriter()
	if err != nil {
		panic(err)
	}
	defer w.Release()

	if err := w.WriteCompound(root); err != nil {
		panic(err)
	}
	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// ============================================================================
// Round-trip tests
// ============================================================================

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "small_document",
			data: buildDocumentBytes(4),
		},
		{
			name: "large_document",
			data: buildDocumentBytes(512),
		},
		{
			name: "single_byte",
			data: []byte{0x42},
		},
		{
			name: "binary_data",
			data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC},
		},
		{
			name: "repeated_pattern",
			data: bytes.Repeat([]byte("ABCD"), 100),
		},
		{
			name: "highly_compressible",
			data: make([]byte, 256*1024),
		},
		{
			name: "pseudo_random",
			data: func() []byte {
				data := make([]byte, 4096)
				for i := range data {
					if i%100 < 50 {
						data[i] = byte(i % 256)
					} else {
						data[i] = byte((i*7 + i*i) % 256)
					}
				}

				return data
			}(),
		},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					ratio := float64(len(compressed)) / float64(len(tc.data)) * 100
					t.Logf("Original: %d bytes, Compressed: %d bytes, Ratio: %.2f%%",
						len(tc.data), len(compressed), ratio)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			// Decompressing nothing yields nothing.
			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			// Compressing empty input may still emit a container frame; it
			// must round-trip back to empty either way.
			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{
			name: "random_bytes",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "text_as_compressed",
			data: []byte("this is not compressed data"),
		},
		{
			name: "corrupted_header",
			data: []byte{0x1f, 0x8b, 0xFF, 0xFF, 0x04, 0x05, 0x06, 0x07},
		},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
				return
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	const iterations = 25

	data := buildDocumentBytes(32)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for g := 0; g < numGoroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < iterations; i++ {
						compressed, err := codec.Compress(data)
						if err != nil {
							errCh <- err
							return
						}
						decompressed, err := codec.Decompress(compressed)
						if err != nil {
							errCh <- err
							return
						}
						if !bytes.Equal(data, decompressed) {
							errCh <- fmt.Errorf("round-trip mismatch")
							return
						}
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

// ============================================================================
// Detection and factories
// ============================================================================

func TestDetect(t *testing.T) {
	payload := buildDocumentBytes(8)

	tests := []struct {
		name string
		ct   format.CompressionType
	}{
		{name: "gzip", ct: format.CompressionGzip},
		{name: "zlib", ct: format.CompressionZlib},
		{name: "zstd", ct: format.CompressionZstd},
		{name: "lz4", ct: format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.ct, Detect(compressed))
		})
	}

	t.Run("raw document", func(t *testing.T) {
		// Raw documents begin with a Compound or List type byte, which no
		// container header matches.
		assert.Equal(t, format.CompressionNone, Detect(payload))
	})

	t.Run("short and empty input", func(t *testing.T) {
		assert.Equal(t, format.CompressionNone, Detect(nil))
		assert.Equal(t, format.CompressionNone, Detect([]byte{0x1f}))
		assert.Equal(t, format.CompressionNone, Detect([]byte{0x78}))
	})

	t.Run("zlib check bits", func(t *testing.T) {
		// 0x78 0x9c passes the RFC 1950 divisibility rule, 0x78 0x9d does
		// not.
		assert.Equal(t, format.CompressionZlib, Detect([]byte{0x78, 0x9c}))
		assert.Equal(t, format.CompressionNone, Detect([]byte{0x78, 0x9d}))
	})
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "document")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x99), "document")
	require.Error(t, err)
	assert.ErrorContains(t, err, "document")

	_, err = GetCodec(format.CompressionType(0x99))
	require.Error(t, err)
}

// ============================================================================
// Stats
// ============================================================================

func TestCompressionStats_Calculations(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionGzip,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	assert.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	assert.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{Algorithm: format.CompressionNone}
	assert.Zero(t, empty.CompressionRatio())
}
