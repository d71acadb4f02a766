package chainmap

import "fmt"

// DefaultVolume is the bucket count used when WithVolume is not given.
const DefaultVolume = 8

// config defines configurable options shared by Table and Map
// construction.
type config[K comparable, V any] struct {
	// volume is the fixed bucket count. It is set once at construction
	// and never changes; there is no rehashing or resizing.
	volume int

	// hashFunc specifies a custom hash function for keys.
	// If nil, a hash/maphash based function with a per-table seed is
	// used. The function must stay pure for the table's lifetime.
	hashFunc HashFunc[K]

	// backing replaces the in-process shared state of a Map.
	// When set, the backing owns the bucket count and volume is taken
	// from it; WithVolume is ignored. Table does not use a backing.
	backing Backing[K, V]
}

// Option customizes Table or Map construction.
type Option[K comparable, V any] func(*config[K, V])

// WithVolume sets the fixed bucket count. Non-positive values are
// rejected at construction with ErrInvalidVolume.
func WithVolume[K comparable, V any](volume int) Option[K, V] {
	return func(c *config[K, V]) {
		c.volume = volume
	}
}

// WithHashFunc overrides the default key hasher.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(c *config[K, V]) {
		c.hashFunc = f
	}
}

// WithBacking injects the shared storage a Map operates on, e.g. one
// backed by a shared-memory segment. See Backing.
func WithBacking[K comparable, V any](b Backing[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.backing = b
	}
}

func newConfig[K comparable, V any](opts ...Option[K, V]) (config[K, V], error) {
	c := config[K, V]{volume: DefaultVolume}
	for _, opt := range opts {
		opt(&c)
	}

	if c.backing != nil {
		c.volume = c.backing.Volume()
	}
	if c.volume <= 0 {
		return c, fmt.Errorf("%w: %d", ErrInvalidVolume, c.volume)
	}
	if c.hashFunc == nil {
		c.hashFunc = MakeDefaultHashFunc[K]()
	}

	return c, nil
}
