package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fincore:cache:"

// Cache implements usecase.Cache on a redis client. All keys share a
// namespace prefix so a flush can target this service alone.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a Cache with the default key namespace.
func NewCache(client *redis.Client) *Cache {
	return NewCacheWithPrefix(client, defaultKeyPrefix)
}

// NewCacheWithPrefix creates a Cache under a caller-chosen namespace.
func NewCacheWithPrefix(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves a value by key. Missing keys surface redis.Nil.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// SetNX stores a value only when the key is absent.
func (c *Cache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, c.key(key), value, ttl).Result()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}
