// Package hash provides the checksum primitive used by sealed frames.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the xxHash64 digest of data.
//
// xxHash64 is not cryptographic; it detects corruption and truncation, which
// is all a sealed frame promises.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
