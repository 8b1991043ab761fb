package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when no entry exists for a key.
var ErrCacheMiss = errors.New("cache: miss")

// Port: a TTL'd byte-value cache shared by in-flight requests.
// Implementations must be safe for concurrent use; races on the same key
// are last-write-wins.
type Cache interface {
	// Return the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Store value under key; the entry expires passively after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
