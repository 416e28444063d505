//go:build nobuild

package source

import (
	"io"

	"github.com/valyala/gozstd"
)

// cgo-backed zstd path. Enable with the nobuild tag when the C library's
// throughput is worth the cgo dependency.

type zstdReader struct {
	zr *gozstd.Reader
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return &zstdReader{zr: gozstd.NewReader(r)}, nil
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.zr.Read(p)
}

func (z *zstdReader) Close() error {
	if z.zr != nil {
		z.zr.Release()
		z.zr = nil
	}
	return nil
}
