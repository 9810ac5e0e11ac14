// File: internal/platform/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bhoomi_backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key is absent or the cache is disabled.
var ErrCacheMiss = errors.New("cache: miss")

// Cache is a thin JSON-value cache over Redis. A nil *Cache (or one built
// from an empty REDIS_ADDR) is valid and behaves as an always-miss cache, so
// callers never need to branch on whether caching is enabled.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCache builds the cache from config. Returns nil when Redis is not
// configured.
func NewCache(cfg *config.Config, logger *zap.Logger) *Cache {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, listing cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Cache{client: client, logger: logger.Named("cache")}
}

// GetJSON fetches key and unmarshals it into target.
func (c *Cache) GetJSON(ctx context.Context, key string, target interface{}) error {
	if c == nil {
		return ErrCacheMiss
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal([]byte(val), target)
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeletePattern removes all keys matching the given glob pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping checks connectivity, for health reporting.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
