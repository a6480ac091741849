package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest combines the xxHash64 of a sequence of byte slices into one value,
// fed through the same hasher in order. Used to checksum a chunk's
// metadata and page bytes together without concatenating them first.
func Digest(parts ...[]byte) uint64 {
	h := xxhash.New()
	for _, p := range parts {
		h.Write(p) //nolint:errcheck // xxhash.Write never errors
	}
	return h.Sum64()
}
