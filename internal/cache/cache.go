package cache

import (
	"context"
	"time"

	"github.com/bluele/gcache"
)

// Cache holds serialized snapshot documents keyed by dataset name
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Reset(ctx context.Context) error
	Close() error
}

// MemoryCache is an in-process LRU cache
type MemoryCache struct {
	lru gcache.Cache
}

// NewMemoryCache creates an LRU cache of at most size entries. A ttl of 0
// keeps entries until evicted.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 1
	}
	builder := gcache.New(size).LRU()
	if ttl > 0 {
		builder = builder.Expiration(ttl)
	}
	return &MemoryCache{lru: builder.Build()}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := c.lru.Get(key)
	if err != nil {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	return c.lru.Set(key, value)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

func (c *MemoryCache) Reset(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

// NoOpCache never stores anything
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, key string, value []byte) error {
	return nil
}

func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NoOpCache) Reset(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
