// Package memory provides an in-memory cache repository, used in tests
// and local development where Redis is not available.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/forkcast/v1/internal/ports/outbound"
)

// ErrKeyNotFound is returned for missing or expired keys.
var ErrKeyNotFound = errors.New("key not found")

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements outbound.CacheRepository over a map.
type CacheRepository struct {
	mu   sync.RWMutex
	data map[string]cacheItem
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{
		data: make(map[string]cacheItem),
	}
}

// Get retrieves a value from the cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	item, exists := r.data[key]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrKeyNotFound
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		r.mu.Lock()
		delete(r.data, key)
		r.mu.Unlock()
		return nil, ErrKeyNotFound
	}

	return item.value, nil
}

// Set stores a value with a TTL. A zero TTL means no expiry.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	r.data[key] = item

	return nil
}

// Delete removes a key from the cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}
