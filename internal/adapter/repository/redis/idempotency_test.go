package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreReplaysExistingResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := client.Set(ctx, idempotencyPrefix+"key", "cached", time.Minute).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}
	if !seen || string(resp) != "cached" {
		t.Fatalf("expected cached replay, got seen=%v resp=%s", seen, resp)
	}
}

func TestIdempotencyStoreClaimsNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	seen, resp, err := store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || seen || resp != nil {
		t.Fatalf("expected fresh claim, got seen=%v resp=%v err=%v", seen, resp, err)
	}

	val, err := client.Get(ctx, idempotencyPrefix+"pending").Result()
	if err != nil {
		t.Fatalf("get claimed key: %v", err)
	}
	if val != inFlightMarker {
		t.Fatalf("expected in-flight marker, got %q", val)
	}
}

func TestIdempotencyStoreStoresResponseDirectly(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	seen, _, err := store.CheckAndSet(ctx, "direct", []byte(`{"id":"t1"}`), time.Minute)
	if err != nil || seen {
		t.Fatalf("expected fresh store, got seen=%v err=%v", seen, err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "direct", nil, time.Minute)
	if err != nil || !seen {
		t.Fatalf("expected replay on second call, got seen=%v err=%v", seen, err)
	}
	if string(resp) != `{"id":"t1"}` {
		t.Fatalf("unexpected replayed body: %s", resp)
	}
}

func TestIdempotencyStoreUpdateOverwritesMarker(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "complete", nil, time.Minute); err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}
	if err := store.Update(ctx, "complete", []byte("done"), time.Minute); err != nil {
		t.Fatalf("Update: %v", err)
	}

	val, err := client.Get(ctx, idempotencyPrefix+"complete").Result()
	if err != nil || val != "done" {
		t.Fatalf("expected final response stored, got val=%q err=%v", val, err)
	}
}
