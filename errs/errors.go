// Package errs defines the sentinel errors and failure codes shared across
// the csvgo packages.
//
// Failure sites wrap these sentinels with fmt.Errorf("%w: ...") so callers
// can match them with errors.Is while still reading a specific message.
package errs

import "errors"

// Code classifies a failure for embedders that switch on numeric classes
// instead of matching sentinel errors. The zero value means "no failure".
type Code uint8

const (
	CodeNone Code = iota
	// CodeInvalidArgument covers conflicting or out-of-range configuration.
	CodeInvalidArgument
	// CodeOutOfMemory covers explicit resource-cap exhaustion during field
	// table or buffer growth.
	CodeOutOfMemory
	// CodeInternal covers invariant violations inside the parser.
	CodeInternal
	// CodeTrailingData covers leftover bytes after the final row.
	CodeTrailingData
	// CodeIO covers read failures from the input stream.
	CodeIO
)

// String returns a short human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeOutOfMemory:
		return "out of memory"
	case CodeInternal:
		return "internal"
	case CodeTrailingData:
		return "trailing data"
	case CodeIO:
		return "io"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidConfig indicates a conflicting or invalid parser configuration,
	// such as duplicate structural bytes or an oversized null sentinel.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFieldCountExceeded indicates a row with more fields than the
	// configured maximum.
	ErrFieldCountExceeded = errors.New("field count exceeds maximum")

	// ErrBufferLimitExceeded indicates a row too large for the configured
	// maximum buffer size.
	ErrBufferLimitExceeded = errors.New("buffer limit exceeded")

	// ErrInvariantViolation indicates an internal inconsistency, such as the
	// scanner reporting positions out of step with the tokenizer.
	ErrInvariantViolation = errors.New("internal invariant violation")

	// ErrTrailingData indicates unconsumed bytes after the last row.
	ErrTrailingData = errors.New("extra data after last row")

	// ErrStopScan halts a streaming scan when returned from a row callback.
	// It reports cancellation, not failure: the scan returns it unchanged and
	// no error handler runs.
	ErrStopScan = errors.New("scan stopped")

	// ErrClosed indicates use of a parser or scanner after Close.
	ErrClosed = errors.New("already closed")
)
