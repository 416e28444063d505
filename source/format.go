package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vderic/csvgo/errs"
)

// Format identifies the compression framing of an input stream.
type Format uint8

const (
	// FormatPlain is uncompressed input.
	FormatPlain Format = iota
	// FormatGzip is a gzip member stream (RFC 1952).
	FormatGzip
	// FormatZstd is a Zstandard frame stream.
	FormatZstd
	// FormatLZ4 is an LZ4 frame stream.
	FormatLZ4
	// FormatS2 is an S2 or Snappy framed stream.
	FormatS2
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatS2:
		return "s2"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Stream magic numbers. S2 streams open with their own identifier chunk;
// snappy-compatible streams open with the snappy one. Both decode through
// the same s2 reader.
var (
	magicGzip   = []byte{0x1f, 0x8b}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4    = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2     = []byte{0xff, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	magicSnappy = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// detectLen is the number of head bytes Detect needs to classify any
// supported format, the length of the S2 and snappy identifier chunks.
const detectLen = 10

// Detect classifies a stream by its leading bytes. Heads shorter than the
// longest magic still match the formats they fully cover; anything
// unrecognized is FormatPlain.
func Detect(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(head, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(head, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(head, magicS2), bytes.HasPrefix(head, magicSnappy):
		return FormatS2
	default:
		return FormatPlain
	}
}

// NewReader wraps r in the decompressor for a known format. FormatPlain
// returns r behind a no-op closer. Closing the result releases the
// decompressor's resources but never closes r itself.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case FormatPlain:
		return io.NopCloser(r), nil
	case FormatGzip:
		return newGzipReader(r)
	case FormatZstd:
		return newZstdReader(r)
	case FormatLZ4:
		return newLZ4Reader(r)
	case FormatS2:
		return newS2Reader(r)
	default:
		return nil, fmt.Errorf("%w: unknown input format %d", errs.ErrInvalidConfig, uint8(f))
	}
}
