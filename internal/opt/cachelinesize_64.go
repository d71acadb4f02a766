//go:build chainmap_cachelinesize_64

package opt

// CacheLineSize forced to 64 bytes via the chainmap_cachelinesize_64
// build tag, for targets where the cpu package misreports it.
const CacheLineSize uintptr = 64
