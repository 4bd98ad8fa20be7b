package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the interface for caching derived dashboards.
// Implementations should handle Redis operations.
type CacheRepository interface {
	// Get decodes the cached value into dest, returning ErrCacheMiss on miss
	Get(ctx context.Context, key string, dest interface{}) error

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPattern removes every key matching a glob pattern
	DeleteByPattern(ctx context.Context, pattern string) error
}
