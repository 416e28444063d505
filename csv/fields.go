package csv

import (
	"encoding/binary"
	"fmt"

	"github.com/vderic/csvgo/errs"
	"github.com/vderic/csvgo/internal/hash"
)

// span locates one field inside the buffer of the parse call that produced
// it. The offsets refer to the normalized content, with quote and escape
// bytes already removed for quoted fields.
type span struct {
	off    int
	length int
	quoted bool
	null   bool
}

// Fields is the field table of the most recent successful parse. It is
// owned by the Parser that produced it and is overwritten by the next parse
// call, so slices obtained from it must be consumed or copied before then.
type Fields struct {
	buf       []byte
	spans     []span
	count     int
	maxFields int
}

// reset rebinds the table to the buffer of a new parse call.
func (f *Fields) reset(buf []byte) {
	f.buf = buf
	f.count = 0
}

// ensure makes room for one more span, growing the table by roughly 20%
// plus slack. Tables never shrink, so steady-state parsing does not
// allocate.
func (f *Fields) ensure() error {
	if f.count < len(f.spans) {
		return nil
	}
	if len(f.spans) >= f.maxFields {
		return fmt.Errorf("%w: row has more than %d fields", errs.ErrFieldCountExceeded, f.maxFields)
	}

	newCap := len(f.spans) + len(f.spans)/5 + 64
	if newCap > f.maxFields {
		newCap = f.maxFields
	}
	grown := make([]span, newCap)
	copy(grown, f.spans[:f.count])
	f.spans = grown

	return nil
}

// add appends a span. The caller must have called ensure first.
func (f *Fields) add(off, length int, quoted bool) {
	f.spans[f.count] = span{off: off, length: length, quoted: quoted}
	f.count++
}

func (f *Fields) check(i int) {
	if i < 0 || i >= f.count {
		panic(fmt.Sprintf("csv: field index %d out of range [0,%d)", i, f.count))
	}
}

// Len returns the number of fields in the row.
func (f *Fields) Len() int {
	return f.count
}

// Field returns the normalized content of field i as a slice into the row
// buffer, without copying. Null fields return nil and empty fields return a
// zero-length non-nil slice. The slice is valid until the next parse call.
//
// Panics if i is out of range.
func (f *Fields) Field(i int) []byte {
	f.check(i)
	s := &f.spans[i]
	if s.null {
		return nil
	}
	return f.buf[s.off : s.off+s.length]
}

// IsNull reports whether field i matched the null sentinel.
func (f *Fields) IsNull(i int) bool {
	f.check(i)
	return f.spans[i].null
}

// IsQuoted reports whether field i was quoted in the input.
func (f *Fields) IsQuoted(i int) bool {
	f.check(i)
	return f.spans[i].quoted
}

// String returns field i as a freshly allocated string. Null fields return
// the empty string; use IsNull to tell them apart from empty ones.
func (f *Fields) String(i int) string {
	return string(f.Field(i))
}

// Strings returns all fields as freshly allocated strings. The result does
// not alias the row buffer and stays valid across parse calls.
func (f *Fields) Strings() []string {
	out := make([]string, f.count)
	for i := range out {
		out[i] = f.String(i)
	}
	return out
}

// Hash64 returns a stable xxHash64 over the normalized contents of the
// selected fields, in the order given. With no indices it covers every
// field in row order. Each field is framed by its length so adjacent fields
// cannot collide by shifting bytes between them, and null fields hash
// differently from empty ones. Useful for routing rows to workers by key
// columns.
//
// Panics if any index is out of range.
func (f *Fields) Hash64(indices ...int) uint64 {
	d := hash.NewDigest()
	if len(indices) == 0 {
		for i := 0; i < f.count; i++ {
			f.hashField(d, i)
		}
	} else {
		for _, i := range indices {
			f.check(i)
			f.hashField(d, i)
		}
	}
	return d.Sum64()
}

// nullFrame marks a null field in the Hash64 framing. No real field can
// produce it because field lengths are bounded far below it.
const nullFrame = ^uint64(0)

func (f *Fields) hashField(d *hash.Digest, i int) {
	var frame [8]byte
	s := &f.spans[i]
	if s.null {
		binary.LittleEndian.PutUint64(frame[:], nullFrame)
		_, _ = d.Write(frame[:])
		return
	}
	binary.LittleEndian.PutUint64(frame[:], uint64(s.length))
	_, _ = d.Write(frame[:])
	_, _ = d.Write(f.buf[s.off : s.off+s.length])
}
