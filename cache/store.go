// Package cache holds the best-effort key/value caches in front of the catalog
// and read endpoints.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by a MemoryStore used after Close.
var ErrClosed = errors.New("cache: store closed")

// Store is a byte-oriented cache backend with TTL and glob invalidation.
// Patterns use path.Match syntax, e.g. "catalog:services:*".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}
