// Package hash provides the xxHash64 helpers shared by the csvgo packages.
package hash

import "github.com/cespare/xxhash/v2"

// Digest is a streaming xxHash64 state.
type Digest = xxhash.Digest

// NewDigest returns a fresh streaming digest.
func NewDigest() *Digest {
	return xxhash.New()
}

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Key computes the xxHash64 of a key string.
func Key(data string) uint64 {
	return xxhash.Sum64String(data)
}
