package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/intercel/backend/internal/application/catalog"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "intercel:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisProjectionCache implements ProjectionCache on Redis.
// Values are stored as JSON so every instance of the API shares one copy.
type RedisProjectionCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
}

// NewRedisProjectionCache connects to Redis and verifies the connection
func NewRedisProjectionCache(cfg RedisConfig) (*RedisProjectionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProjectionCache{
		client:     client,
		ownsClient: true,
		keyPrefix:  defaultKeyPrefix,
	}, nil
}

// NewRedisProjectionCacheWithClient creates a cache on an existing client.
// The caller keeps ownership of the client.
func NewRedisProjectionCacheWithClient(client *redis.Client, keyPrefix string) *RedisProjectionCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisProjectionCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get loads the JSON value stored under key into dest
func (c *RedisProjectionCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON under key for ttl
func (c *RedisProjectionCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys
func (c *RedisProjectionCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// Increment runs INCR on key, so concurrent API instances never reuse a value
func (c *RedisProjectionCache) Increment(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Incr(ctx, c.keyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment cache key %s: %w", key, err)
	}
	return n, nil
}

// Close closes the Redis client if the cache created it
func (c *RedisProjectionCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

// Ensure RedisProjectionCache implements ProjectionCache
var _ appcatalog.ProjectionCache = (*RedisProjectionCache)(nil)
