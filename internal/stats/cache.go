package stats

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// cached pairs a lookup result with its presence flag so misses are cached
// too; most unmatched players stay unmatched for the whole cycle.
type cached struct {
	value float64
	ok    bool
}

// CachedSource memoizes lookups against an underlying Source. Std dev
// lookups repeat for every bookmaker quoting the same prop, so one scoring
// pass hits the same key many times.
type CachedSource struct {
	source Source
	cache  *cache.Cache
	ttl    time.Duration
}

// NewCachedSource wraps a Source with a TTL-bounded memo cache.
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
	}
}

// StdDev returns the cached std dev for the player/market pair.
func (c *CachedSource) StdDev(player, market string) (float64, bool) {
	key := "sd:" + player + ":" + market
	if hit, found := c.cache.Get(key); found {
		entry := hit.(cached)
		return entry.value, entry.ok
	}
	value, ok := c.source.StdDev(player, market)
	c.cache.Set(key, cached{value: value, ok: ok}, c.ttl)
	return value, ok
}

// Mean returns the cached mean for the player/market pair.
func (c *CachedSource) Mean(player, market string) (float64, bool) {
	key := "mean:" + player + ":" + market
	if hit, found := c.cache.Get(key); found {
		entry := hit.(cached)
		return entry.value, entry.ok
	}
	value, ok := c.source.Mean(player, market)
	c.cache.Set(key, cached{value: value, ok: ok}, c.ttl)
	return value, ok
}
