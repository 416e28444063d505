// Package source opens byte streams for the csv parser, transparently
// decompressing inputs that bulk-load pipelines commonly receive in
// compressed form.
//
// Exports arrive as plain text, gzip, Zstandard, LZ4 frames, or
// S2/Snappy streams; the loader rarely knows which ahead of time. This
// package sniffs the magic bytes at the head of a stream and wraps it in
// the matching decompressor:
//
//	rc, format, err := source.Open(conn)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	log.Printf("input format: %s", format)
//	sc, err := csv.NewScanner(rc)
//
// Formats can also be forced with NewReader when the caller already knows
// the encoding, bypassing detection. OpenFile composes file opening,
// detection, and cleanup into one call.
//
// Detection reads nothing: it peeks at most ten bytes through a buffered
// reader, so the returned stream always starts at the first input byte.
// Unrecognized heads fall back to plain text, which keeps the common
// uncompressed path free of surprises.
package source
