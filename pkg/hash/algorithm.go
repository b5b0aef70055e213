package hash

import (
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// BLAKE3 is the default Algorithm. It is a pure-Go implementation with
// no cgo dependency, making it safe to use in any build target.
func BLAKE3(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// BLAKE2b256 is an alternate Algorithm for callers that must match a
// deployment already committed to BLAKE2b. Any caller choosing this
// must use it consistently: Hash values computed with different
// algorithms are not comparable as "the same tree," only as
// coincidentally equal bytes.
func BLAKE2b256(data []byte) Hash {
	sum := blake2b.Sum256(data)
	return Hash(sum)
}
