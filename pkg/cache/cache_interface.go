package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer so the backing store can be swapped
// (Redis in production, an in-memory map in tests).
type Cache interface {
	// Get loads the value stored under key into dest.
	// found is false on a cache miss, in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
