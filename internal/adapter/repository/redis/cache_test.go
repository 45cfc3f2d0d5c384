package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBalanceCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "ten-1", decimal.NewFromInt(55000), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	balance, ok, err := cache.Get(ctx, "ten-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if !balance.Equal(decimal.NewFromInt(55000)) {
		t.Fatalf("expected 55000, got %s", balance)
	}
}

func TestBalanceCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client)

	_, ok, err := cache.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for unknown tenant")
	}
}

func TestBalanceCacheCorruptEntryIsMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client)
	ctx := context.Background()

	if err := client.Set(ctx, cache.prefix+"ten-1", "not-a-number", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, ok, err := cache.Get(ctx, "ten-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestBalanceCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "ten-1", decimal.NewFromInt(100), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "ten-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, ok, err := cache.Get(ctx, "ten-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("expected a miss after delete")
	}
}
