package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cache.Get(ctx, "k")
	if !ok || got != "v" {
		t.Errorf("Get = %q, %v; want v, true", got, ok)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "short", "a", time.Minute)
	_ = cache.Set(ctx, "forever", "b", 0)

	now = now.Add(2 * time.Minute)

	if _, ok := cache.Get(ctx, "short"); ok {
		t.Errorf("expected expired entry to miss")
	}
	if _, ok := cache.Get(ctx, "forever"); !ok {
		t.Errorf("expected entry without ttl to survive")
	}
	if cache.Size() != 1 {
		t.Errorf("Size = %d, want 1", cache.Size())
	}
}

func TestMemoryCache_CleanExpired(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "a", "1", time.Second)
	_ = cache.Set(ctx, "b", "2", time.Second)
	_ = cache.Set(ctx, "c", "3", time.Hour)

	now = now.Add(time.Minute)

	if removed := cache.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired = %d, want 2", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("Size = %d, want 1", cache.Size())
	}
}

func TestMemoryCache_ExpiredReadKeepsConcurrentSet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	_ = cache.Set(ctx, "k", "stale", time.Minute)
	now = now.Add(2 * time.Minute)

	// The first clock read inside Get happens after the read lock is
	// released; a writer slips in a fresh value right there.
	writerPending := true
	cache.now = func() time.Time {
		if writerPending {
			writerPending = false
			_ = cache.Set(ctx, "k", "fresh", time.Hour)
		}
		return now
	}

	if _, ok := cache.Get(ctx, "k"); ok {
		t.Errorf("expected the stale read to miss")
	}
	got, ok := cache.Get(ctx, "k")
	if !ok || got != "fresh" {
		t.Errorf("Get = %q, %v; want fresh, true", got, ok)
	}
}
