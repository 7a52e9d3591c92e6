package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-course-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "trip-course:"

// RedisTripCache stores generated plans in Redis so replicas share results.
type RedisTripCache struct {
	Client *redis.Client
}

func NewRedisTripCache(client *redis.Client) *RedisTripCache {
	return &RedisTripCache{Client: client}
}

// Connect parses a redis:// URL and verifies the server answers PING.
func NewRedisTripCacheFromURL(ctx context.Context, url string) (*RedisTripCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis trip cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis trip cache: ping: %w", err)
	}

	return &RedisTripCache{Client: client}, nil
}

func (c *RedisTripCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("redis trip cache: client is nil")
	}

	val, err := c.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis trip cache: get %q: %w", key, err)
	}

	return val, true, nil
}

func (c *RedisTripCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.redis.Set")(&err)

	if c.Client == nil {
		return errors.New("redis trip cache: client is nil")
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis trip cache: set %q: %w", key, err)
	}
	return nil
}

func (c *RedisTripCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
