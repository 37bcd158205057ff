package postgres

import (
	"context"
	"testing"
	"time"
)

func TestNewPoolWithConfigRejectsBadURL(t *testing.T) {
	_, err := NewPoolWithConfig(context.Background(), PoolConfig{DatabaseURL: "not-a-url"})
	if err == nil {
		t.Fatal("expected parse error for malformed URL")
	}
}

func TestNewPoolWithConfigUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewPoolWithConfig(ctx, PoolConfig{
		DatabaseURL: "postgres://nobody@localhost:1/fincore?sslmode=disable",
		MaxConns:    1,
	})
	if err == nil {
		t.Fatal("expected connection error against an unreachable host")
	}
}
