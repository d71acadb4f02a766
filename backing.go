package chainmap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/Danil-Stenyashin/chainmap/internal/opt"
)

// Backing is the shared state a concurrent Map operates on: one entry
// chain and one mutual-exclusion lock per bucket, plus a single entry
// counter. The default implementation keeps everything in local memory;
// when the execution contexts are isolated processes rather than
// goroutines, an implementation can place chains, locks and counter in
// a shared-memory segment or a coordination service instead. The Map's
// locking protocol (bucket-local locks, fixed ascending-index order for
// multi-lock operations) is the same for every backing.
//
// Chain access is copy-in/copy-out: LoadChain returns the current
// contents of a bucket and StoreChain replaces them. The Map touches a
// chain only between Lock(idx) and Unlock(idx) for that bucket.
type Backing[K comparable, V any] interface {
	// Volume returns the fixed bucket count. It must not change.
	Volume() int

	// Lock blocks until bucket idx's lock is acquired. There is no
	// timeout: a context that dies while holding a lock blocks that
	// bucket for everyone, which is a stated limitation of the design.
	Lock(idx int)

	// Unlock releases bucket idx's lock.
	Unlock(idx int)

	// LoadChain returns the entries of bucket idx.
	LoadChain(idx int) []Entry[K, V]

	// StoreChain replaces the entries of bucket idx.
	StoreChain(idx int, chain []Entry[K, V])

	// AddLen adjusts the entry counter by delta. The adjustment must be
	// atomic independent of any bucket lock; a plain counter next to
	// per-bucket locks loses updates.
	AddLen(delta int)

	// Len returns the current entry count.
	Len() int
}

// paddedLock keeps each bucket lock on its own cache line, so contexts
// hammering adjacent buckets do not false-share.
type paddedLock struct {
	mu sync.Mutex
	_  [(opt.CacheLineSize - unsafe.Sizeof(sync.Mutex{})%opt.CacheLineSize) % opt.CacheLineSize]byte
}

// memBacking is the in-process Backing a Map uses unless WithBacking
// overrides it.
type memBacking[K comparable, V any] struct {
	chains [][]Entry[K, V]
	locks  []paddedLock
	size   atomic.Int64
}

// NewMemoryBacking returns an in-process Backing with the given volume:
// local chains, a cache-line-padded sync.Mutex per bucket, and an
// atomic counter.
func NewMemoryBacking[K comparable, V any](volume int) (Backing[K, V], error) {
	if volume <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVolume, volume)
	}

	return &memBacking[K, V]{
		chains: make([][]Entry[K, V], volume),
		locks:  make([]paddedLock, volume),
	}, nil
}

func (b *memBacking[K, V]) Volume() int {
	return len(b.chains)
}

func (b *memBacking[K, V]) Lock(idx int) {
	b.locks[idx].mu.Lock()
}

func (b *memBacking[K, V]) Unlock(idx int) {
	b.locks[idx].mu.Unlock()
}

func (b *memBacking[K, V]) LoadChain(idx int) []Entry[K, V] {
	return b.chains[idx]
}

func (b *memBacking[K, V]) StoreChain(idx int, chain []Entry[K, V]) {
	b.chains[idx] = chain
}

func (b *memBacking[K, V]) AddLen(delta int) {
	b.size.Add(int64(delta))
}

func (b *memBacking[K, V]) Len() int {
	return int(b.size.Load())
}
