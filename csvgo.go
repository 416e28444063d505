// Package csvgo provides streaming CSV parsing for bulk-load pipelines,
// with configurable dialects, null-sentinel detection, and transparent
// input decompression.
//
// The parser targets database importers and ETL tools that move large
// delimited exports: it parses rows in place with no per-row allocation,
// distinguishes null fields from empty strings the way SQL loaders need,
// and keeps exact row, field, line and byte positions for error reports.
//
// # Core Features
//
//   - Single-pass, zero-copy row parsing driven by a SWAR byte scanner
//   - Configurable quote, escape, delimiter and terminator bytes
//   - Exact-match null sentinel distinguishing NULL from empty string
//   - Streaming over any io.Reader with pooled, growable buffers
//   - Transparent gzip, zstd, LZ4 and S2 input decompression
//   - xxHash64 field hashing for routing rows across load workers
//
// # Basic Usage
//
// Scanning a file, whatever its compression:
//
//	import "github.com/vderic/csvgo"
//	import "github.com/vderic/csvgo/csv"
//
//	err := csvgo.ScanFile("orders.csv.gz", func(row int64, fields *csv.Fields) error {
//	    for i := 0; i < fields.Len(); i++ {
//	        if fields.IsNull(i) {
//	            // SQL NULL, not an empty string
//	        }
//	    }
//	    return nil
//	}, csv.WithNullSentinel(`\N`))
//
// Scanning an arbitrary stream:
//
//	err := csvgo.ScanReader(conn, onRow, csv.WithDelimiter('\t'))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the csv and
// source packages, covering the common whole-stream cases. For
// incremental feeding, custom buffering, or positional error inspection,
// use the csv package directly; for format detection and decompression
// of individual streams, use the source package.
package csvgo

import (
	"io"

	"github.com/vderic/csvgo/csv"
	"github.com/vderic/csvgo/internal/hash"
	"github.com/vderic/csvgo/source"
)

// ScanReader parses every row of r, invoking onRow for each. It is a thin
// wrapper around csv.NewScanner for callers that do not need to reuse the
// scanner or inspect its position afterwards.
//
// Parameters:
//   - r: The input stream; read to EOF unless the scan stops early.
//   - onRow: Per-row callback; see csv.RowFunc for its contract.
//   - opts: Optional configuration (see the csv package With* options).
//
// Returns an error for configuration, read, or parse failures. Returning
// errs.ErrStopScan from onRow halts the scan and is passed through.
//
// Example:
//
//	err := csvgo.ScanReader(resp.Body, func(row int64, fields *csv.Fields) error {
//	    return insert(fields.Strings())
//	}, csv.WithNullSentinel("NULL"))
func ScanReader(r io.Reader, onRow csv.RowFunc, opts ...csv.Option) error {
	sc, err := csv.NewScanner(r, opts...)
	if err != nil {
		return err
	}
	defer sc.Close()

	return sc.Scan(onRow)
}

// ScanFile parses every row of the file at path, detecting and
// decompressing gzip, zstd, LZ4 or S2 input transparently. The file and
// any decompressor are closed before ScanFile returns.
//
// Parameters:
//   - path: File to read; compression is sniffed from its first bytes.
//   - onRow: Per-row callback; see csv.RowFunc for its contract.
//   - opts: Optional configuration (see the csv package With* options).
func ScanFile(path string, onRow csv.RowFunc, opts ...csv.Option) error {
	rc, _, err := source.OpenFile(path)
	if err != nil {
		return err
	}

	sc, err := csv.NewScanner(rc, opts...)
	if err != nil {
		_ = rc.Close()
		return err
	}
	defer sc.Close()

	if err := sc.Scan(onRow); err != nil {
		_ = rc.Close()
		return err
	}

	return rc.Close()
}

// FieldKey returns the canonical 64-bit key for a single field value: the
// xxHash64 of its bytes. Use it to precompute routing keys that parsed
// field contents will be matched against.
//
// For hashing several fields of a row together, use csv.Fields.Hash64,
// which frames each field by its length.
//
// Example:
//
//	shard := csvgo.FieldKey(customerID) % uint64(len(workers))
func FieldKey(value string) uint64 {
	return hash.Key(value)
}
