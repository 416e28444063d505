package csv

import (
	"fmt"

	"github.com/vderic/csvgo/errs"
)

// Position holds the monotonic progress counters of a parser. Counters
// advance only when a row fully completes, so after a failure or an
// incomplete parse they still describe the last good row boundary.
type Position struct {
	// Line counts physical lines consumed, including line breaks inside
	// quoted fields.
	Line int64
	// Offset counts consumed input bytes.
	Offset int64
	// Row counts completed rows.
	Row int64
	// Field counts fields across all completed rows.
	Field int64
}

// ParseError describes a failure and the position where it happened.
// Row is 1-based and names the row being parsed when the failure occurred;
// Field is the 0-based index of the field being parsed. Line and Offset
// point at the failing row's last known line and the absolute byte offset
// of the failure.
//
// ParseError wraps one of the errs package sentinels; match with errors.Is.
type ParseError struct {
	Code   errs.Code
	Line   int64
	Offset int64
	Row    int64
	Field  int64
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, field %d (line %d, byte %d): %v",
		e.Row, e.Field, e.Line, e.Offset, e.err)
}

// Unwrap exposes the wrapped sentinel chain.
func (e *ParseError) Unwrap() error {
	return e.err
}
