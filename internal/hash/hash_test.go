package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSum64(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty input", []byte{}, 0xef46db3751d8e999},
		{"short input", []byte("test"), 0x4fdcca5ddb678139},
		{"long input", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum64(tt.data))
		})
	}
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = byte(seededRand.Intn(256))
	}

	return b
}

func BenchmarkSum64(b *testing.B) {
	data := randBytes(256)
	b.ResetTimer()
	for b.Loop() {
		Sum64(data)
	}
}
