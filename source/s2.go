package source

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// newS2Reader decompresses an S2 stream. The reader also accepts
// snappy-compatible framed input.
func newS2Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
