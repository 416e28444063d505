package csv

import (
	"bytes"
	"fmt"

	"github.com/vderic/csvgo/errs"
)

// touchup normalizes the just-tokenized row in place: it NUL-terminates each
// field at its trailing delimiter or terminator, detects the null sentinel,
// strips quote bytes and collapses escape pairs in quoted fields, re-checks
// the sentinel against the unescaped content, and strips one carriage return
// from the end of the last field. nline is the row's line span, used for
// error positions.
//
// Raw sentinel matching runs before unquoting, so a quoted rendition of the
// sentinel normally survives as content. The post-unescape re-check only
// fires when stripping the quotes exposes the sentinel again, as with a
// quoted empty string under the empty default sentinel.
func (p *Parser) touchup(buf []byte, nline int64) error {
	sentinel := p.cfg.sentinel
	qte, esc := p.cfg.quote, p.cfg.escape

	f := &p.fields
	for i := 0; i < f.count; i++ {
		s := &f.spans[i]
		end := s.off + s.length

		// The byte at end is this field's delimiter or terminator, already
		// consumed by the tokenizer.
		buf[end] = 0
		if s.length == len(sentinel) && bytes.Equal(buf[s.off:end], sentinel) {
			s.null = true
			continue
		}
		if !s.quoted {
			continue
		}

		// Rewrite the field with a single forward pass, dropping quote
		// bytes and keeping the second byte of each escape pair.
		w := s.off
		inquote := false
		for r := s.off; r < end; {
			ch := buf[r]
			r++
			if ch == esc || ch == qte {
				if inquote && ch == esc && r < end {
					if next := buf[r]; next == qte || next == esc {
						r++
						buf[w] = next
						w++
						continue
					}
				}
				if ch == qte {
					inquote = !inquote
					continue
				}
				// a lone escape byte is content
			}
			buf[w] = ch
			w++
		}
		if inquote {
			err := fmt.Errorf("%w: unbalanced quote in field %d", errs.ErrInvariantViolation, i)
			return p.fail(errs.CodeInternal, err, int64(i), nline, s.off)
		}
		buf[w] = 0
		s.length = w - s.off
		if s.length == len(sentinel) && bytes.Equal(buf[s.off:w], sentinel) {
			s.null = true
		}
	}

	// A terminator preceded by a carriage return is a CRLF line ending, so
	// drop the CR from the last field.
	if f.count > 0 {
		s := &f.spans[f.count-1]
		if !s.null && s.length > 0 && buf[s.off+s.length-1] == '\r' {
			s.length--
			buf[s.off+s.length] = 0
			if s.length == len(sentinel) && bytes.Equal(buf[s.off:s.off+s.length], sentinel) {
				s.null = true
			}
		}
	}

	return nil
}
