package chainmap

import "hash/maphash"

// HashFunc computes a 64-bit hash of a key.
//
// It must be a pure function of the key for the lifetime of the table:
// keys must not mutate any hash-relevant state while stored, and two
// equal keys must always hash equally.
type HashFunc[K comparable] func(K) uint64

// MakeDefaultHashFunc returns a HashFunc built on hash/maphash with a
// fresh random seed. Two tables get independent seeds, so bucket
// placement is only stable within one table instance.
func MakeDefaultHashFunc[K comparable]() HashFunc[K] {
	seed := maphash.MakeSeed()

	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// bucketIndex maps a hash to a chain index in [0, volume).
func bucketIndex(hash uint64, volume int) int {
	return int(hash % uint64(volume))
}
