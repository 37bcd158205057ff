package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestCacheRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val != "bar" {
		t.Fatalf("expected bar, got %q", val)
	}

	// Keys are namespaced; the raw key must not exist.
	if err := client.Get(ctx, "foo").Err(); err != redislib.Nil {
		t.Fatalf("expected raw key to be absent, got %v", err)
	}
}

func TestCacheSetNXRespectsExisting(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	cache := NewCache(client)
	ctx := context.Background()

	set, err := cache.SetNX(ctx, "key", "first", time.Minute)
	if err != nil || !set {
		t.Fatalf("expected first SetNX to win, got set=%v err=%v", set, err)
	}

	set, err = cache.SetNX(ctx, "key", "second", time.Minute)
	if err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	if set {
		t.Fatal("expected second SetNX to lose")
	}

	val, _ := cache.Get(ctx, "key")
	if val != "first" {
		t.Fatalf("expected first value to survive, got %q", val)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := cache.Get(ctx, "foo"); err != redislib.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestCacheWithPrefixIsolation(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	a := NewCacheWithPrefix(client, "a:")
	b := NewCacheWithPrefix(client, "b:")
	ctx := context.Background()

	if err := a.Set(ctx, "key", "from-a", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := b.Get(ctx, "key"); err != redislib.Nil {
		t.Fatalf("expected prefixes to isolate keys, got %v", err)
	}
}
