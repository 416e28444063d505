// Package csv implements a streaming parser for delimited text with
// single-byte structural characters, built for bulk-load pipelines that
// must distinguish null fields from empty ones.
//
// The parser follows the text-format conventions of PostgreSQL COPY CSV:
// a configurable quote byte, an escape byte that defaults to the quote
// (doubled-quote escaping), a single-byte field delimiter and row
// terminator, and a null-sentinel literal whose exact match marks a field
// as SQL NULL rather than an empty string.
//
// # Core Types
//
//   - Parser: turns caller-supplied byte slices into rows of normalized
//     fields, reporting consumed lengths so callers control all buffering
//   - Scanner: drives a Parser over an io.Reader with one growable,
//     pooled buffer and a per-row callback
//   - Fields: the reused field table of the current row, exposing
//     zero-copy access, null and quoted flags, and key hashing
//   - ParseError: a failure snapshot carrying an error code and the
//     row, field, line and byte position where parsing stopped
//
// # Parsing Model
//
// A row is complete only when its terminator byte arrives. Both Parser
// entry points return the number of bytes consumed, or (0, nil) when the
// buffer ends mid-row; the caller then reads more input and retries with
// the longer slice:
//
//	p, _ := csv.Open(csv.WithNullSentinel("NULL"))
//	for {
//	    n, err := p.FeedRow(buf)
//	    if err != nil {
//	        return err
//	    }
//	    if n == 0 {
//	        break // incomplete: refill buf and try again
//	    }
//	    fields := p.Fields()
//	    for i := 0; i < fields.Len(); i++ {
//	        _ = fields.Field(i) // nil when the field is null
//	    }
//	    buf = buf[n:]
//	}
//
// FeedRow normalizes fields in place inside the consumed region: quotes
// and escape pairs are stripped, the null sentinel is applied, and a
// carriage return before the terminator is removed. ParseRow is the
// non-mutating variant that only locates row and field boundaries.
//
// # Streaming
//
// Scanner owns the refill loop for whole-stream parsing:
//
//	sc, _ := csv.NewScanner(r, csv.WithDigest(true))
//	defer sc.Close()
//	err := sc.Scan(func(row int64, fields *csv.Fields) error {
//	    process(fields.Strings())
//	    return nil
//	})
//
// The scan buffer starts at 1 MiB, is recycled through an internal pool,
// and grows by half whenever a single row fills it, up to a configurable
// cap. A final row without a terminator is parsed from an internal copy,
// so readers need not end with a newline.
//
// # Performance Notes
//
// The tokenizer does not inspect input byte by byte. A SWAR scanner reads
// 16-byte windows into two 64-bit words and computes a bitmap of the
// positions holding any structural byte, so rows of ordinary content cost
// a couple of word operations per window. Field metadata lives in a flat
// span table that is reused across rows, keeping steady-state parsing
// allocation-free.
package csv
