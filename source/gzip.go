package source

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// newGzipReader decompresses a gzip member stream. The gzip header is
// validated up front, so a corrupt head fails here rather than on the
// first read.
func newGzipReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}
