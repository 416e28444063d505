// Package scan locates structural bytes in delimited-text buffers.
//
// A Cursor walks a byte slice and yields the positions of match-set bytes in
// strictly increasing order. Matching runs over 16-byte windows: each window
// is reduced to a 16-bit hit bitmap (one bit per offset) and iteration pops
// the lowest set bit. The bitmap is computed with a portable SWAR routine; a
// scalar twin produces bit-identical results and serves as the reference in
// tests.
package scan

import (
	"encoding/binary"
	"math/bits"
)

const (
	// windowSize is the number of bytes reduced to one hit bitmap.
	windowSize = 16
	// maxMatch is the capacity of the match set.
	maxMatch = 5
)

const (
	swarLo    = 0x0101010101010101
	swarSeven = 0x7f7f7f7f7f7f7f7f
	// swarGather collects the per-byte 0x01 flags of its multiplicand into
	// the top byte of the product: bit 56+i equals byte i's flag.
	swarGather = 0x0102040810204080
)

// Cursor yields positions of match-set bytes in a buffer. The zero value is
// ready for SetMatch; Reset rebinds it to a buffer without allocating.
type Cursor struct {
	buf  []byte
	base int
	bmap uint16
	set  [maxMatch]byte
	n    int
}

// SetMatch configures the bytes the cursor searches for. The set holds at
// most five bytes; duplicates are allowed and a NUL byte is a legal member.
func (c *Cursor) SetMatch(set ...byte) {
	if len(set) > maxMatch {
		panic("scan: match set larger than five bytes")
	}
	c.n = copy(c.set[:], set)
}

// Reset binds the cursor to buf and positions it before the first match.
func (c *Cursor) Reset(buf []byte) {
	c.buf = buf
	c.base = 0
	c.bmap = c.fill(0)
}

// Next returns the position of the next match-set byte. Positions are
// strictly increasing between Resets. The second result is false once the
// buffer holds no further matches.
func (c *Cursor) Next() (int, bool) {
	for c.bmap == 0 {
		c.base += windowSize
		if c.base >= len(c.buf) {
			return 0, false
		}
		c.bmap = c.fill(c.base)
	}
	off := bits.TrailingZeros16(c.bmap)
	c.bmap &= c.bmap - 1

	return c.base + off, true
}

// fill computes the hit bitmap for the window starting at base. Tail windows
// shorter than 16 bytes are copied into an on-stack scratch buffer first so
// the comparison never reads past the input end.
func (c *Cursor) fill(base int) uint16 {
	rem := len(c.buf) - base
	if rem <= 0 {
		return 0
	}
	if rem >= windowSize {
		return fillBitmap((*[windowSize]byte)(c.buf[base:base+windowSize]), &c.set, c.n, windowSize)
	}

	var scratch [windowSize]byte
	copy(scratch[:], c.buf[base:])

	return fillBitmap(&scratch, &c.set, c.n, rem)
}

// fillBitmap reports which of the first n window bytes match any byte of
// set[:setLen], one bit per offset. Bits at or beyond n are zero: the scratch
// padding is NUL and NUL may be in the match set, so out-of-window bits must
// be masked off.
func fillBitmap(window *[windowSize]byte, set *[maxMatch]byte, setLen, n int) uint16 {
	w0 := binary.LittleEndian.Uint64(window[0:8])
	w1 := binary.LittleEndian.Uint64(window[8:16])

	// For each match byte, XOR turns matches into zero bytes; the add/or
	// chain flags zero bytes with 0x80 exactly, with no carry between byte
	// lanes (the borrow-based variant misflags bytes above a true zero).
	var h0, h1 uint64
	for i := 0; i < setLen; i++ {
		m := uint64(set[i]) * swarLo
		x0 := w0 ^ m
		x1 := w1 ^ m
		h0 |= ^((x0&swarSeven + swarSeven) | x0 | swarSeven)
		h1 |= ^((x1&swarSeven + swarSeven) | x1 | swarSeven)
	}

	lo := (h0 >> 7 & swarLo) * swarGather >> 56
	hi := (h1 >> 7 & swarLo) * swarGather >> 56
	bm := uint16(lo) | uint16(hi)<<8
	if n < windowSize {
		bm &= uint16(1)<<n - 1
	}

	return bm
}

// fillBitmapScalar is the reference implementation of fillBitmap.
func fillBitmapScalar(window *[windowSize]byte, set *[maxMatch]byte, setLen, n int) uint16 {
	var bm uint16
	for i := 0; i < n; i++ {
		for j := 0; j < setLen; j++ {
			if window[i] == set[j] {
				bm |= uint16(1) << i
				break
			}
		}
	}

	return bm
}
