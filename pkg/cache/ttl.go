package cache

import (
	"context"
	"time"
)

// cappedCache bounds the ttl of every entry written through it.
type cappedCache struct {
	Cache
	max time.Duration
}

// WithMaxTTL returns a Cache that stores entries in inner for at most max.
// Entries written with a zero ttl, or a ttl above max, get max instead.
// A non-positive max returns inner unchanged.
func WithMaxTTL(inner Cache, max time.Duration) Cache {
	if max <= 0 {
		return inner
	}
	return &cappedCache{Cache: inner, max: max}
}

// Set stores data with the capped ttl.
func (c *cappedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
