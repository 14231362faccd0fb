package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Cache is a testify mock of cache.Cache. On a hit, the value registered as
// an optional third return argument (a func(dest interface{})) fills dest.
type Cache struct {
	mock.Mock
}

func (m *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	if len(args) > 2 {
		if fill, ok := args.Get(2).(func(dest interface{})); ok && fill != nil {
			fill(dest)
		}
	}
	return args.Bool(0), args.Error(1)
}

func (m *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *Cache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *Cache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
