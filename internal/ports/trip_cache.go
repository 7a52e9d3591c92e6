package ports

import (
	"context"
	"time"
)

// Contract for caching encoded planning responses.
// Implementations must treat a miss as (nil, false, nil).
type TripCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
