// Package cache defines the shared key-value capability used for reset
// tokens and cached read models.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or has expired.
var ErrCacheMiss = errors.New("cache: key not found")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// GetDel atomically reads and removes key.
	GetDel(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
}
