package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// Cache stores rendered view models by canonical selection key.
type Cache interface {
	Get(ctx context.Context, key string) (*ViewModel, bool, error)
	Set(ctx context.Context, key string, vm *ViewModel) error
	Name() string
}

// LRUCache keeps the most recently rendered view models in process.
type LRUCache struct {
	entries *lru.Cache[string, *ViewModel]
}

// NewLRUCache returns an in-process cache holding up to size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[string, *ViewModel](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

func (c *LRUCache) Get(_ context.Context, key string) (*ViewModel, bool, error) {
	vm, ok := c.entries.Get(key)
	return vm, ok, nil
}

func (c *LRUCache) Set(_ context.Context, key string, vm *ViewModel) error {
	c.entries.Add(key, vm)
	return nil
}

func (c *LRUCache) Name() string { return "lru" }

// Len returns the number of cached entries.
func (c *LRUCache) Len() int { return c.entries.Len() }

const redisKeyPrefix = "bikeshare:view:"

// RedisCache shares rendered view models between API instances as JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at url and checks it answers.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*ViewModel, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get from Redis: %w", err)
	}
	var vm ViewModel
	if err := json.Unmarshal(data, &vm); err != nil {
		return nil, false, fmt.Errorf("decode cached view: %w", err)
	}
	return &vm, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, vm *ViewModel) error {
	data, err := json.Marshal(vm)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set data in Redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Name() string { return "redis" }

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }
