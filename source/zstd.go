//go:build !nobuild

package source

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse. The klauspost decoder is
// designed to operate without allocations after a warmup, so keeping
// decoders across streams removes the dominant setup cost for loads that
// open many compressed inputs.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // single-threaded for predictable performance
			zstd.WithDecoderLowmem(false),  // use more memory for better performance
		)
		if err != nil {
			// cannot happen with valid static options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdReader adapts a pooled zstd decoder to io.ReadCloser. Close detaches
// the source and returns the decoder to the pool instead of releasing it.
type zstdReader struct {
	dec *zstd.Decoder
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	if err := dec.Reset(r); err != nil {
		zstdDecoderPool.Put(dec)
		return nil, err
	}
	return &zstdReader{dec: dec}, nil
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReader) Close() error {
	if z.dec == nil {
		return nil
	}
	// Reset with a nil source drops references to the previous reader.
	_ = z.dec.Reset(nil)
	zstdDecoderPool.Put(z.dec)
	z.dec = nil
	return nil
}
