package fitness

import (
	"sync/atomic"

	"github.com/patrickmn/go-cache"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

// Cache memoizes a FitnessFunc by key. Elites and repeated offspring are
// re-scored every generation, so most lookups after the first few
// generations are hits.
type Cache struct {
	fn         framework.FitnessFunc
	store      *cache.Cache
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache wraps fn. Once the cache holds maxEntries keys it is flushed;
// maxEntries <= 0 means unbounded.
func NewCache(fn framework.FitnessFunc, maxEntries int) *Cache {
	return &Cache{
		fn:         fn,
		store:      cache.New(cache.NoExpiration, 0),
		maxEntries: maxEntries,
	}
}

// Evaluate returns the cached score for key, computing it on a miss.
// It is safe for concurrent use.
func (c *Cache) Evaluate(key framework.Key) float64 {
	k := key.String()
	if v, found := c.store.Get(k); found {
		c.hits.Add(1)
		return v.(float64)
	}
	c.misses.Add(1)
	score := c.fn(key)
	if c.maxEntries > 0 && c.store.ItemCount() >= c.maxEntries {
		c.store.Flush()
	}
	c.store.Set(k, score, cache.NoExpiration)
	return score
}

// Fitness exposes Evaluate as a framework.FitnessFunc.
func (c *Cache) Fitness() framework.FitnessFunc {
	return c.Evaluate
}

// Stats returns the number of hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len is the number of cached scores.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
