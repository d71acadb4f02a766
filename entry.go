package chainmap

// Entry is a single key/value pair stored in a bucket chain.
//
// Backing implementations exchange whole bucket contents as
// []Entry slices; within one chain every key is unique and entries
// keep insertion order.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// scanChain returns the position of key in the chain, or -1 if the key
// is absent. Both Table and Map resolve keys through this linear scan;
// no collision handling beyond chaining is attempted.
func scanChain[K comparable, V any](chain []Entry[K, V], key K) int {
	for i := range chain {
		if chain[i].Key == key {
			return i
		}
	}
	return -1
}

// EntryView is a temporary view of a map entry passed to Map.Compute.
// It can be updated or deleted during the callback.
//
// WARNING:
// - Only valid inside the callback; do NOT keep, return, or use it outside.
// - Not safe across goroutines.
type EntryView[K comparable, V any] struct {
	entry  Entry[K, V]
	loaded bool
	op     computeOp
}

// Key returns the entry's key.
func (e *EntryView[K, V]) Key() K {
	return e.entry.Key
}

// Value returns the entry's value. Returns zero value if not loaded.
func (e *EntryView[K, V]) Value() V {
	return e.entry.Value
}

// Loaded reports whether the entry exists in the map.
func (e *EntryView[K, V]) Loaded() bool {
	return e.loaded
}

// Update sets the entry's value. Inserts it if not loaded, replaces if loaded.
func (e *EntryView[K, V]) Update(value V) {
	e.entry.Value = value
	e.op = updateOp
}

// Delete marks the entry for removal and clears its value.
func (e *EntryView[K, V]) Delete() {
	e.entry.Value = *new(V)
	e.op = deleteOp
}
