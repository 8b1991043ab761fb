package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fuel-route-service/internal/ports"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "route:result:a:b", []byte(`{"total_miles":1.0}`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "route:result:a:b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"total_miles":1.0}`)) {
		t.Fatalf("value = %q", got)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ports.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheEntriesExpire(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "geocode:boston, ma", []byte(`[[-71.06,42.36]]`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, err := c.Get(ctx, "geocode:boston, ma")
	if !errors.Is(err, ports.ErrCacheMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}
