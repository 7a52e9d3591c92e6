package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryTripCache keeps generated plans in process memory.
type MemoryTripCache struct {
	c *gocache.Cache
}

// defaultTTL applies when Set is called with ttl <= 0.
func NewMemoryTripCache(defaultTTL time.Duration) *MemoryTripCache {
	return &MemoryTripCache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryTripCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *MemoryTripCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}
