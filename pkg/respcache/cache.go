package respcache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache memoizes final answers by the raw, unnormalized query text.
// Keying on raw text keeps the cache conservative: paraphrases are
// distinct queries, so a cached answer can never leak to a subtly
// different question. Staleness is checked at read time; the background
// janitor only reclaims memory.
type Cache struct {
	entries *cache.Cache
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: cache.New(ttl, 10*time.Minute),
	}
}

// Lookup returns the cached answer for the exact raw query, or miss.
func (c *Cache) Lookup(rawQuery string) (string, bool) {
	if x, found := c.entries.Get(rawQuery); found {
		return x.(string), true
	}
	return "", false
}

// Store inserts or overwrites the entry, restarting its TTL.
func (c *Cache) Store(rawQuery, answer string) {
	c.entries.Set(rawQuery, answer, cache.DefaultExpiration)
}
