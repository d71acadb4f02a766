//go:build chainmap_cachelinesize_128

package opt

// CacheLineSize forced to 128 bytes via the chainmap_cachelinesize_128
// build tag.
const CacheLineSize uintptr = 128
