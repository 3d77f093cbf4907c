package outbound

import (
	"context"
	"time"
)

// CacheRepository is a byte-oriented cache with TTLs. A miss is reported
// as an error by the implementation; callers treat any error as a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
