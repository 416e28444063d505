package csv

import (
	"github.com/vderic/csvgo/errs"
	"github.com/vderic/csvgo/internal/options"
	"github.com/vderic/csvgo/internal/pool"
	"github.com/vderic/csvgo/internal/scan"
)

// Parser splits delimited text into rows and normalized fields, one buffer
// at a time. It holds no input of its own: callers feed it byte slices and
// it reports how much of each slice forms a complete row, which makes it
// the resumable core under Scanner as well as a standalone primitive for
// callers that manage their own buffering.
//
// A Parser is bound to one logical stream because it accumulates position
// counters across calls. It is not safe for concurrent use.
type Parser struct {
	cfg     config
	cursor  scan.Cursor
	fields  Fields
	pos     Position
	lastErr *ParseError
	lastBuf *pool.ByteBuffer
	closed  bool
}

// Open creates a Parser from the given options.
//
// Returns an error wrapping errs.ErrInvalidConfig when an option value is
// out of range or the configured bytes conflict with each other.
func Open(opts ...Option) (*Parser, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Parser{cfg: cfg}
	// NUL participates in scanning so that escape handling and field
	// normalization can rely on it being a structural stop byte.
	p.cursor.SetMatch(cfg.quote, cfg.escape, cfg.delim, cfg.term, 0)
	p.fields.maxFields = cfg.maxFields
	return p, nil
}

// ParseRow tokenizes the first complete row of buf without modifying it.
// The field table then holds raw spans: quote and escape bytes are still in
// place and the null sentinel is not applied. Use it for zero-copy
// inspection of row boundaries.
//
// Returns the number of bytes consumed including the row terminator, or
// (0, nil) when buf holds no complete row yet. Progress counters advance
// only when a row completes.
func (p *Parser) ParseRow(buf []byte) (int, error) {
	if p.closed {
		return 0, errs.ErrClosed
	}
	n, nline, err := p.tokenizeRow(buf)
	if n > 0 && err == nil {
		p.advance(n, nline)
	}
	return n, err
}

// FeedRow tokenizes the first complete row of buf and normalizes the fields
// in place: quotes and escapes are stripped, null sentinels are applied and
// a trailing carriage return on the last field is removed. buf is mutated
// within the consumed region only.
//
// Returns the number of bytes consumed including the row terminator, or
// (0, nil) when buf holds no complete row yet. On success the row is
// available from Fields until the next parse call.
func (p *Parser) FeedRow(buf []byte) (int, error) {
	if p.closed {
		return 0, errs.ErrClosed
	}
	n, nline, err := p.tokenizeRow(buf)
	if n <= 0 || err != nil {
		return 0, err
	}
	if err := p.touchup(buf, nline); err != nil {
		return 0, err
	}
	p.advance(n, nline)
	return n, nil
}

// FeedLastRow parses the final row of a stream, which may lack its
// terminator. When the terminator is missing the row is copied to an
// internal scratch buffer, a terminator is appended there and the field
// table is bound to that copy, leaving buf untouched. The returned count
// never exceeds len(buf).
//
// Returns (0, nil) when buf is empty or holds no parseable row even with
// the synthesized terminator, such as an unterminated quoted field.
func (p *Parser) FeedLastRow(buf []byte) (int, error) {
	if p.closed {
		return 0, errs.ErrClosed
	}
	if len(buf) == 0 {
		return 0, nil
	}
	if buf[len(buf)-1] == p.cfg.term {
		return p.FeedRow(buf)
	}

	if p.lastBuf == nil {
		p.lastBuf = pool.GetRowBuffer()
	}
	p.lastBuf.Resize(len(buf) + 1)
	scratch := p.lastBuf.Bytes()
	copy(scratch, buf)
	scratch[len(buf)] = p.cfg.term

	n, err := p.FeedRow(scratch)
	if n > len(buf) {
		// The synthesized terminator was consumed; report and count only
		// the real input bytes.
		n = len(buf)
		p.pos.Offset--
	}
	return n, err
}

// Fields returns the field table of the most recent successful parse call.
// The table is reused, so it and any slices obtained from it are valid only
// until the next parse call.
func (p *Parser) Fields() *Fields {
	return &p.fields
}

// Position returns a copy of the progress counters.
func (p *Parser) Position() Position {
	return p.pos
}

// LastError returns the most recent failure snapshot, or nil if no parse
// call has failed. It is not cleared by later successful calls.
func (p *Parser) LastError() *ParseError {
	return p.lastErr
}

// Close releases the parser's pooled scratch buffer. The parser must not be
// used after Close; subsequent parse calls return errs.ErrClosed.
func (p *Parser) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.lastBuf != nil {
		pool.PutRowBuffer(p.lastBuf)
		p.lastBuf = nil
	}
	p.fields = Fields{}
}

// advance moves the progress counters past one completed row.
func (p *Parser) advance(rowsz int, nline int64) {
	p.pos.Line += nline
	p.pos.Offset += int64(rowsz)
	p.pos.Row++
	p.pos.Field += int64(p.fields.count)
}

// fail records a failure snapshot positioned relative to the current
// counters and returns it. offset is the failing byte's position within the
// row being parsed and nline the lines consumed within that row so far.
func (p *Parser) fail(code errs.Code, err error, fieldNo, nline int64, offset int) *ParseError {
	pe := &ParseError{
		Code:   code,
		Line:   p.pos.Line + nline,
		Offset: p.pos.Offset + int64(offset),
		Row:    p.pos.Row + 1,
		Field:  fieldNo,
		err:    err,
	}
	p.lastErr = pe
	return pe
}
