package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "fincore:idem:"

	// inFlightMarker occupies a key while the first request is still
	// being handled, so concurrent retries replay instead of re-executing.
	inFlightMarker = "processing"
)

// IdempotencyStore implements usecase.IdempotencyStore on redis.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet reports whether the key was already claimed and, if so,
// the response recorded for it. An unclaimed key is claimed: with the
// given response when non-nil, otherwise with an in-flight marker.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	k := idempotencyPrefix + key

	existing, err := s.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		return true, existing, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, k, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, k, inFlightMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if claimed {
		return false, nil, nil
	}

	// Lost the race; replay whatever the winner stored.
	existing, err = s.client.Get(ctx, k).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	return true, existing, nil
}

// Update replaces a claimed key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err()
}
