// Package cache memoises function results in Redis
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"companyscraper/config"
)

// Cache wraps a Redis client. A nil *Cache disables caching.
type Cache struct {
	client *redis.Client
}

// New connects to Redis; it returns nil when no address is configured
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping checks that Redis is reachable
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Memoize returns the cached value for key, or calls fn and caches its result for ttl.
// Results are only stored when fn succeeds; Redis errors fall through to fn.
func Memoize[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	if c == nil {
		return fn()
	}

	var result T

	cachedData, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cachedData, &result); jsonErr == nil {
			slog.Debug("cache hit", "key", key)
			return result, nil
		}
	} else if err != redis.Nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	cacheData, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := c.client.Set(ctx, key, cacheData, ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}

	return result, nil
}
