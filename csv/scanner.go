package csv

import (
	"errors"
	"fmt"
	"io"

	"github.com/vderic/csvgo/errs"
	"github.com/vderic/csvgo/internal/hash"
	"github.com/vderic/csvgo/internal/pool"
)

// maxConsecutiveEmptyReads bounds how many (0, nil) reads Scan tolerates
// before treating the reader as broken, mirroring bufio.
const maxConsecutiveEmptyReads = 100

// RowFunc receives one parsed row. row is the 1-based row number. fields is
// reused for the next row, so slices obtained from it are valid only until
// the callback returns; copy what must outlive it. Returning
// errs.ErrStopScan halts the scan cleanly, any other non-nil error halts it
// and is returned from Scan unchanged.
type RowFunc func(row int64, fields *Fields) error

// Scanner streams an io.Reader through a Parser using a single growable
// buffer. Complete rows are parsed in place with no per-row allocation;
// bytes of a row still in flight are compacted to the front of the buffer
// before the next read, and the buffer grows only when one row outgrows it.
//
// A Scanner is bound to one reader and is not safe for concurrent use.
type Scanner struct {
	p       *Parser
	r       io.Reader
	bb      *pool.ByteBuffer
	start   int // buffer offset of the first unconsumed byte
	end     int // buffer offset past the last filled byte
	size    int // current buffer size
	maxSize int
	digest  *hash.Digest
	onError func(*ParseError)
	closed  bool
}

// NewScanner creates a Scanner that reads from r. The parser options apply
// unchanged; WithBufferSize, WithMaxBufferSize, WithDigest and
// WithErrorHandler configure the streaming behavior on top.
func NewScanner(r io.Reader, opts ...Option) (*Scanner, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", errs.ErrInvalidConfig)
	}
	p, err := Open(opts...)
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		p:       p,
		r:       r,
		maxSize: p.cfg.maxBufSize,
		onError: p.cfg.onError,
	}
	if p.cfg.digest {
		s.digest = hash.NewDigest()
	}
	s.bb = pool.GetScanBuffer()
	s.size = p.cfg.bufSize
	s.bb.Resize(s.size)
	return s, nil
}

// Scan pulls the entire input through the parser, invoking onRow once per
// row until the input is exhausted or the scan stops. The final row may
// lack its terminator and is still delivered. Bytes left over after the
// last parseable row fail the scan with errs.ErrTrailingData.
//
// When the row callback returns errs.ErrStopScan, or the reader returns it
// in place of a read error, Scan stops and returns that sentinel without
// invoking the error handler. The scanner stays positioned after the last
// delivered row, so calling Scan again resumes with the next one. All other
// failures are returned as a *ParseError after the error handler, if any,
// has seen it exactly once.
func (s *Scanner) Scan(onRow RowFunc) error {
	if s.closed {
		return errs.ErrClosed
	}
	if onRow == nil {
		return fmt.Errorf("%w: nil row callback", errs.ErrInvalidConfig)
	}

	buf := s.bb.Bytes()
	emptyReads := 0
	eof := false

	for !eof {
		// Move the partial row to the buffer start to reclaim consumed
		// space before reading.
		if s.start > 0 {
			copy(buf, buf[s.start:s.end])
			s.end -= s.start
			s.start = 0
		}

		// A full buffer holding no complete row means the row in flight
		// needs more room.
		if s.end == s.size {
			if s.size >= s.maxSize {
				err := fmt.Errorf("%w: cannot expand buffer beyond %d bytes", errs.ErrBufferLimitExceeded, s.maxSize)
				return s.report(s.p.fail(errs.CodeOutOfMemory, err, 0, 0, 0))
			}
			newSize := s.size + s.size/2
			if newSize < s.size+64 {
				newSize = s.size + 64
			}
			if newSize > s.maxSize {
				newSize = s.maxSize
			}
			s.size = newSize
			s.bb.Resize(newSize)
			buf = s.bb.Bytes()
		}

		n, err := s.r.Read(buf[s.end:s.size])
		if n > 0 {
			emptyReads = 0
			if s.digest != nil {
				_, _ = s.digest.Write(buf[s.end : s.end+n])
			}
			s.end += n
		}
		switch {
		case err == nil:
			if n == 0 {
				emptyReads++
				if emptyReads >= maxConsecutiveEmptyReads {
					return s.report(s.failRead(io.ErrNoProgress))
				}
			}
		case err == io.EOF:
			eof = true
		case errors.Is(err, errs.ErrStopScan):
			return errs.ErrStopScan
		default:
			return s.report(s.failRead(err))
		}

		// Drain every complete row currently in the buffer.
		for s.start < s.end {
			n, err := s.p.FeedRow(buf[s.start:s.end])
			if err != nil {
				return s.report(err)
			}
			if n == 0 {
				break
			}
			s.start += n
			if err := onRow(s.p.pos.Row, &s.p.fields); err != nil {
				return err
			}
		}
	}

	// The stream may end without a final terminator.
	if s.start < s.end {
		n, err := s.p.FeedLastRow(buf[s.start:s.end])
		if err != nil {
			return s.report(err)
		}
		if n > 0 {
			s.start += n
			if err := onRow(s.p.pos.Row, &s.p.fields); err != nil {
				return err
			}
		}
	}

	if s.start != s.end {
		err := fmt.Errorf("%w: %d bytes remain", errs.ErrTrailingData, s.end-s.start)
		pe := &ParseError{
			Code:   errs.CodeTrailingData,
			Line:   s.p.pos.Line,
			Offset: s.p.pos.Offset,
			Row:    s.p.pos.Row + 1,
			err:    err,
		}
		s.p.lastErr = pe
		return s.report(pe)
	}

	return nil
}

// Position returns a copy of the parser's progress counters.
func (s *Scanner) Position() Position {
	return s.p.Position()
}

// LastError returns the parser's most recent failure snapshot, or nil.
func (s *Scanner) LastError() *ParseError {
	return s.p.LastError()
}

// Digest returns the xxHash64 of every raw byte read from the input so far.
// It returns 0 unless WithDigest(true) was given.
func (s *Scanner) Digest() uint64 {
	if s.digest == nil {
		return 0
	}
	return s.digest.Sum64()
}

// Close releases the streaming buffer back to its pool and closes the
// underlying parser. The scanner must not be used after Close.
func (s *Scanner) Close() {
	if s.closed {
		return
	}
	s.closed = true
	pool.PutScanBuffer(s.bb)
	s.bb = nil
	s.p.Close()
}

// report hands the failure snapshot to the error handler exactly once and
// passes err through.
func (s *Scanner) report(err error) error {
	if s.onError != nil {
		s.onError(s.p.lastErr)
	}
	return err
}

// failRead records a read failure against the current position.
func (s *Scanner) failRead(err error) error {
	pe := &ParseError{
		Code:   errs.CodeIO,
		Line:   s.p.pos.Line,
		Offset: s.p.pos.Offset,
		Row:    s.p.pos.Row + 1,
		err:    fmt.Errorf("read input: %w", err),
	}
	s.p.lastErr = pe
	return pe
}
