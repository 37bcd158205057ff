package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/avelora/fincore/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RATE_SERVICE_API_KEY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.RateServiceAPIKey != "" {
		t.Fatalf("expected rate service API key default to be empty, got %q", cfg.RateServiceAPIKey)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.RateCacheTTL != 30*time.Second {
		t.Fatalf("expected default rate cache TTL 30s, got %s", cfg.RateCacheTTL)
	}

	if cfg.OutboxBatchSize != 100 {
		t.Fatalf("expected default outbox batch size 100, got %d", cfg.OutboxBatchSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("RATE_SERVICE_URL", "http://rates.internal")
	t.Setenv("RATE_SERVICE_API_KEY", "top-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.RateServiceURL != "http://rates.internal" || cfg.RateServiceAPIKey != "top-secret" {
		t.Fatalf("expected rate service settings to be set, got url=%s key=%s", cfg.RateServiceURL, cfg.RateServiceAPIKey)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
