package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"EmptyString", "", 0xef46db3751d8e999},
		{"ShortString", "test", 0x4fdcca5ddb678139},
		{"LongString", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Key(tt.data))
		})
	}
}

func TestSum64MatchesKey(t *testing.T) {
	inputs := []string{"", "a", "order_id,amount", "\x00\x01\x02"}
	for _, in := range inputs {
		require.Equal(t, Key(in), Sum64([]byte(in)), "input=%q", in)
	}
}

func TestDigestStreaming(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}

	d := NewDigest()
	for off := 0; off < len(data); {
		n := rng.Intn(100) + 1
		if off+n > len(data) {
			n = len(data) - off
		}
		written, err := d.Write(data[off : off+n])
		require.NoError(t, err)
		require.Equal(t, n, written)
		off += n
	}

	require.Equal(t, Sum64(data), d.Sum64())
}

func BenchmarkKey(b *testing.B) {
	const key = "warehouse_42:order_123456"
	b.ReportAllocs()
	for b.Loop() {
		Key(key)
	}
}
