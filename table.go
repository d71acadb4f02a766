package chainmap

import "iter"

// Table is a fixed-volume hash table using separate chaining for
// collision resolution. It is the unlocked core that the concurrent Map
// wraps in its locking protocol, and doubles as the correctness oracle
// for single-goroutine use.
//
// Table is NOT safe for concurrent use; use Map for that.
type Table[K comparable, V any] struct {
	buckets  [][]Entry[K, V]
	size     int
	hashFunc HashFunc[K]
}

// NewTable returns an empty table. The default volume is DefaultVolume;
// pass WithVolume to change it. The volume is fixed for the table's
// lifetime.
func NewTable[K comparable, V any](opts ...Option[K, V]) (*Table[K, V], error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Table[K, V]{
		buckets:  make([][]Entry[K, V], c.volume),
		hashFunc: c.hashFunc,
	}, nil
}

func (t *Table[K, V]) index(key K) int {
	return bucketIndex(t.hashFunc(key), len(t.buckets))
}

// Store inserts key or overwrites its value in place (upsert).
// Cost is linear in the target chain's length.
func (t *Table[K, V]) Store(key K, value V) {
	idx := t.index(key)
	chain := t.buckets[idx]

	if i := scanChain(chain, key); i >= 0 {
		chain[i].Value = value
		return
	}

	t.buckets[idx] = append(chain, Entry[K, V]{Key: key, Value: value})
	t.size++
}

// Load returns the value stored under key, or ErrKeyNotFound.
func (t *Table[K, V]) Load(key K) (V, error) {
	chain := t.buckets[t.index(key)]

	if i := scanChain(chain, key); i >= 0 {
		return chain[i].Value, nil
	}

	var zero V
	return zero, ErrKeyNotFound
}

// Delete removes key's entry, or returns ErrKeyNotFound. A failed
// delete leaves chain and counter untouched.
func (t *Table[K, V]) Delete(key K) error {
	idx := t.index(key)
	chain := t.buckets[idx]

	i := scanChain(chain, key)
	if i < 0 {
		return ErrKeyNotFound
	}

	t.buckets[idx] = append(chain[:i], chain[i+1:]...)
	t.size--
	return nil
}

// Contains reports whether key is present. It never mutates the table.
func (t *Table[K, V]) Contains(key K) bool {
	return scanChain(t.buckets[t.index(key)], key) >= 0
}

// Len returns the number of entries. O(1); the counter is maintained
// incrementally by Store and Delete.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Volume returns the fixed bucket count.
func (t *Table[K, V]) Volume() int {
	return len(t.buckets)
}

// All returns a lazy iterator over all keys in bucket-then-chain order.
// The sequence is finite and restartable, and its order is stable for
// the lifetime of the table.
//
// Mutating the table while an iteration is in progress is undefined
// behavior. This is a hard contract of Table; Map.Keys exists for
// callers that need a consistent view under mutation.
func (t *Table[K, V]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, chain := range t.buckets {
			for i := range chain {
				if !yield(chain[i].Key) {
					return
				}
			}
		}
	}
}

// Clear empties every bucket and resets the counter to zero.
// The volume is unchanged.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
}
