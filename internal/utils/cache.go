package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/karlseguin/ccache/v3" // In-process LRU cache
	"github.com/redis/go-redis/v9"    // Redis client
)

// Cache stores JSON-encoded response bodies by key
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// RedisCache is a Cache backed by Redis
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set sets a value in Redis with a specified TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeletePrefix deletes every key starting with prefix
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator() // SCAN instead of KEYS
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil // Nothing cached
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// LocalCache is a Cache kept in process memory, used when Redis is not configured
type LocalCache struct {
	cache *ccache.Cache[[]byte]
}

func NewLocalCache(maxSize int64) *LocalCache {
	return &LocalCache{cache: ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize))}
}

func (c *LocalCache) Get(_ context.Context, key string, dest any) (bool, error) {
	item := c.cache.Get(key)
	if item == nil || item.Expired() {
		return false, nil // Missing or stale
	}
	return true, json.Unmarshal(item.Value(), dest)
}

func (c *LocalCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Set(key, b, ttl)
	return nil
}

func (c *LocalCache) DeletePrefix(_ context.Context, prefix string) error {
	c.cache.DeletePrefix(prefix)
	return nil
}
