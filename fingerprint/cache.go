package fingerprint

import lru "github.com/hashicorp/golang-lru/v2"

// Cache memoizes Parse for repeated lookups of the same literal permission
// string (e.g. a hot admin check run every tick against a fixed perm set).
// Fingerprint values are immutable once parsed, so sharing them across
// callers is safe without copying.
type Cache struct {
	inner *lru.Cache[string, Fingerprint]
}

// NewCache creates a bounded LRU [Cache] holding up to size parsed
// fingerprints. size<=0 disables caching; Get then falls back to Parse on
// every call.
func NewCache(size int) *Cache {
	if size <= 0 {
		return &Cache{}
	}
	inner, err := lru.New[string, Fingerprint](size)
	if err != nil {
		return &Cache{}
	}
	return &Cache{inner: inner}
}

// Get returns the parsed Fingerprint for perm, parsing and caching it on a
// miss.
func (c *Cache) Get(perm string) Fingerprint {
	if c == nil || c.inner == nil {
		return Parse(perm)
	}
	if fp, ok := c.inner.Get(perm); ok {
		return fp
	}
	fp := Parse(perm)
	c.inner.Add(perm, fp)
	return fp
}

// Len reports the number of cached entries, for diagnostics.
func (c *Cache) Len() int {
	if c == nil || c.inner == nil {
		return 0
	}
	return c.inner.Len()
}
