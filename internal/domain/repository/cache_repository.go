package repository

import (
	"context"
	"time"
)

// CacheRepository is a byte-oriented key/value cache.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// GetJSON decodes a cached value into dest. It returns false on a miss.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)

	// SetJSON encodes value and stores it with TTL.
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
