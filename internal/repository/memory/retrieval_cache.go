package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RetrievalCache memoizes assembled retrieval results for a short TTL so
// repeated identical questions skip the database round trips.
type RetrievalCache struct {
	cache *cache.Cache
}

func NewRetrievalCache(ttl time.Duration) *RetrievalCache {
	return &RetrievalCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *RetrievalCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *RetrievalCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}
