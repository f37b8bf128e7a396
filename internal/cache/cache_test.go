package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss")
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("get mismatch: ok=%v got=%q", ok, got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "old", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set(ctx, "k", "new", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := c.Get(ctx, "k"); got != "new" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}
