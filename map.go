// Package chainmap provides a fixed-volume separate-chaining hash
// table in two renditions: Table for single-goroutine use and Map, a
// concurrent variant with one lock per bucket.
package chainmap

// Map is a concurrent hash table with a fixed number of buckets and
// one mutual-exclusion lock per bucket, built on the same chain logic
// as Table.
//
// Core properties:
//   - Operations on keys in different buckets proceed fully in
//     parallel with no shared-state contention.
//   - Operations on keys in the same bucket are serialized by that
//     bucket's lock (mutual exclusion; acquisition order is not FIFO).
//   - Keys, Range and Clear hold every bucket lock at once and act as
//     full-table serialization points.
//   - The entry counter is atomic independent of any bucket lock.
//
// The shared state lives behind the Backing interface; by default it
// is in-process memory, and WithBacking swaps in e.g. a shared-memory
// segment for cross-process use without changing the locking protocol.
//
// Map must not be copied after first use.
type Map[K comparable, V any] struct {
	_        noCopy
	backing  Backing[K, V]
	hashFunc HashFunc[K]
	volume   int
}

// New returns an empty Map. The default volume is DefaultVolume; pass
// WithVolume to change it or WithBacking to supply the shared state.
func New[K comparable, V any](opts ...Option[K, V]) (*Map[K, V], error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	b := c.backing
	if b == nil {
		b, err = NewMemoryBacking[K, V](c.volume)
		if err != nil {
			return nil, err
		}
	}

	return &Map[K, V]{
		backing:  b,
		hashFunc: c.hashFunc,
		volume:   b.Volume(),
	}, nil
}

func (m *Map[K, V]) index(key K) int {
	return bucketIndex(m.hashFunc(key), m.volume)
}

// lockAll acquires every bucket lock in ascending index order. Every
// operation that holds more than one lock at a time goes through here;
// the single fixed order is what rules out deadlock between two
// multi-lock operations and against single-key operations.
func (m *Map[K, V]) lockAll() {
	for idx := range m.volume {
		m.backing.Lock(idx)
	}
}

func (m *Map[K, V]) unlockAll() {
	for idx := m.volume - 1; idx >= 0; idx-- {
		m.backing.Unlock(idx)
	}
}

// Store inserts key or overwrites its value (upsert). Only the lock of
// key's bucket is held.
func (m *Map[K, V]) Store(key K, value V) {
	idx := m.index(key)
	m.backing.Lock(idx)

	chain := m.backing.LoadChain(idx)
	if i := scanChain(chain, key); i >= 0 {
		chain[i].Value = value
		m.backing.StoreChain(idx, chain)
	} else {
		m.backing.StoreChain(idx, append(chain, Entry[K, V]{Key: key, Value: value}))
		m.backing.AddLen(1)
	}

	m.backing.Unlock(idx)
}

// Load returns the value stored under key, or ErrKeyNotFound.
func (m *Map[K, V]) Load(key K) (V, error) {
	idx := m.index(key)
	m.backing.Lock(idx)

	chain := m.backing.LoadChain(idx)
	i := scanChain(chain, key)

	var value V
	if i >= 0 {
		value = chain[i].Value
	}

	m.backing.Unlock(idx)

	if i < 0 {
		return value, ErrKeyNotFound
	}
	return value, nil
}

// Delete removes key's entry, or returns ErrKeyNotFound. A failed
// delete releases the bucket lock with chain and counter untouched.
func (m *Map[K, V]) Delete(key K) error {
	idx := m.index(key)
	m.backing.Lock(idx)

	chain := m.backing.LoadChain(idx)
	i := scanChain(chain, key)
	if i >= 0 {
		m.backing.StoreChain(idx, append(chain[:i], chain[i+1:]...))
		m.backing.AddLen(-1)
	}

	m.backing.Unlock(idx)

	if i < 0 {
		return ErrKeyNotFound
	}
	return nil
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	idx := m.index(key)
	m.backing.Lock(idx)
	found := scanChain(m.backing.LoadChain(idx), key) >= 0
	m.backing.Unlock(idx)

	return found
}

// Len returns the number of entries. It reads the atomic counter and
// takes no locks, so under concurrent mutation it is a point-in-time
// value.
func (m *Map[K, V]) Len() int {
	return m.backing.Len()
}

// Volume returns the fixed bucket count.
func (m *Map[K, V]) Volume() int {
	return m.volume
}

// LoadOrStore returns the existing value for key if present. Otherwise
// it stores and returns the given value. The loaded result is true if
// the value was loaded, false if stored. The whole step runs under the
// bucket's lock.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	idx := m.index(key)
	m.backing.Lock(idx)

	chain := m.backing.LoadChain(idx)
	if i := scanChain(chain, key); i >= 0 {
		actual = chain[i].Value
		loaded = true
	} else {
		m.backing.StoreChain(idx, append(chain, Entry[K, V]{Key: key, Value: value}))
		m.backing.AddLen(1)
		actual = value
	}

	m.backing.Unlock(idx)
	return actual, loaded
}

// Compute runs fn with the entry for key while holding that bucket's
// lock, then applies the update or delete the callback requested. It
// returns the resulting value and whether the key is present after the
// call.
//
// Because the callback runs under the bucket lock, read-modify-write
// sequences such as counters are atomic with respect to every other
// operation on the same key. The callback must not call back into the
// Map; doing so deadlocks on the already-held bucket lock.
func (m *Map[K, V]) Compute(key K, fn func(e *EntryView[K, V])) (V, bool) {
	idx := m.index(key)
	m.backing.Lock(idx)
	defer m.backing.Unlock(idx)

	chain := m.backing.LoadChain(idx)
	i := scanChain(chain, key)

	var e EntryView[K, V]
	e.entry.Key = key
	if i >= 0 {
		e.entry.Value = chain[i].Value
		e.loaded = true
	}

	fn(&e)

	switch e.op {
	case updateOp:
		if i >= 0 {
			chain[i].Value = e.entry.Value
			m.backing.StoreChain(idx, chain)
		} else {
			m.backing.StoreChain(idx, append(chain, e.entry))
			m.backing.AddLen(1)
		}
		return e.entry.Value, true

	case deleteOp:
		if i >= 0 {
			m.backing.StoreChain(idx, append(chain[:i], chain[i+1:]...))
			m.backing.AddLen(-1)
		}
		var zero V
		return zero, false
	}

	return e.entry.Value, e.loaded
}

// Keys returns a consistent snapshot of all keys in bucket-then-chain
// order. It acquires every bucket lock in ascending index order, copies
// the keys out, and releases the locks; while it runs, no single-key
// operation on any bucket proceeds. Callers get a materialized slice,
// not a live view, so there is no iterate-under-mutation hazard.
//
// The snapshot serializes the whole table. The cheaper alternative of
// locking one bucket at a time would not guarantee that the result
// matches Len or the present-key set at any single instant.
func (m *Map[K, V]) Keys() []K {
	m.lockAll()

	keys := make([]K, 0, m.backing.Len())
	for idx := range m.volume {
		for _, e := range m.backing.LoadChain(idx) {
			keys = append(keys, e.Key)
		}
	}

	m.unlockAll()
	return keys
}

// Range calls fn for each key/value in a consistent snapshot, stopping
// early if fn returns false. The snapshot is taken under all bucket
// locks exactly like Keys; fn itself runs after they are released, so
// it may call back into the Map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.lockAll()

	entries := make([]Entry[K, V], 0, m.backing.Len())
	for idx := range m.volume {
		entries = append(entries, m.backing.LoadChain(idx)...)
	}

	m.unlockAll()

	for i := range entries {
		if !fn(entries[i].Key, entries[i].Value) {
			return
		}
	}
}

// Clear empties every bucket and resets the counter to zero, holding
// all bucket locks in the same ascending order as Keys. The volume is
// unchanged.
func (m *Map[K, V]) Clear() {
	m.lockAll()

	for idx := range m.volume {
		m.backing.StoreChain(idx, nil)
	}
	m.backing.AddLen(-m.backing.Len())

	m.unlockAll()
}
