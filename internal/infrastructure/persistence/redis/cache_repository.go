// Package redis provides Redis-backed repository implementations.
package redis

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/infrastructure/cache"
	"github.com/forkcast/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// CacheRepository implements outbound.CacheRepository on Redis.
type CacheRepository struct {
	redis  *cache.RedisClient
	logger *zap.Logger
}

// NewCacheRepository creates a new cache repository.
func NewCacheRepository(redis *cache.RedisClient, logger *zap.Logger) outbound.CacheRepository {
	return &CacheRepository{
		redis:  redis,
		logger: logger,
	}
}

// Get retrieves a value. A miss comes back as an error.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.redis.Get(ctx, key)
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with a TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.redis.Set(ctx, key, value, ttl); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.redis.Delete(ctx, key); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
