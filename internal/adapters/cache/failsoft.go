package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"fuel-route-service/internal/ports"
)

// FailSoft wraps a Cache so that backend failures degrade to cache misses.
// A slow or unavailable cache must never fail the enclosing request: any
// error other than a plain miss is logged as a warning and absorbed, so
// Get reports a miss and Set becomes a no-op.
type FailSoft struct {
	inner ports.Cache
}

func NewFailSoft(inner ports.Cache) *FailSoft {
	return &FailSoft{inner: inner}
}

func (f *FailSoft) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := f.inner.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			log.Printf("WARN: cache get failed key=%s err=%v", key, err)
		}
		return nil, ports.ErrCacheMiss
	}
	return b, nil
}

func (f *FailSoft) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := f.inner.Set(ctx, key, value, ttl); err != nil {
		log.Printf("WARN: cache set failed key=%s err=%v", key, err)
	}
	return nil
}
