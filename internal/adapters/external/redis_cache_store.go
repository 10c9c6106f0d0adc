package external

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

const (
	redisBackend   = "redis"
	redisScanCount = 200
)

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// RedisCacheStore implements ports.CacheStore using Redis. Expiry is delegated
// to Redis; hit and miss counters are kept in-process.
type RedisCacheStore struct {
	client *redis.Client
	stats  struct {
		hits   int64
		misses int64
		mutex  sync.Mutex
	}
}

// NewRedisCacheStore connects to Redis and verifies the connection
func NewRedisCacheStore(config *config.RedisConfig) (*RedisCacheStore, error) {
	if config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Duration(config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return NewRedisCacheStoreFromClient(client), nil
}

// NewRedisCacheStoreFromClient wraps an existing client
func NewRedisCacheStoreFromClient(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{client: client}
}

func (r *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.NewValidationError("cache key cannot be empty")
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			r.recordMiss()
			return nil, false, nil
		}
		return nil, false, errors.NewCacheError("redis get operation failed", err)
	}

	r.recordHit()
	return val, true, nil
}

func (r *RedisCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.NewCacheError("redis set operation failed", err)
	}

	return nil
}

func (r *RedisCacheStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.NewCacheError("redis delete operation failed", err)
	}

	return nil
}

func (r *RedisCacheStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	if pattern == "" {
		return 0, errors.NewValidationError("cache pattern cannot be empty")
	}

	keys, err := r.Keys(ctx, pattern)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewCacheError("redis delete operation failed", err)
	}

	return int(removed), nil
}

// Keys scans for keys containing pattern
func (r *RedisCacheStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	match := "*" + globEscaper.Replace(pattern) + "*"

	keys := make([]string, 0)
	iter := r.client.Scan(ctx, 0, match, redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.NewCacheError("redis scan operation failed", err)
	}

	return keys, nil
}

// Clear removes all keys from the Redis database and resets counters
func (r *RedisCacheStore) Clear(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return errors.NewCacheError("redis clear operation failed", err)
	}

	r.stats.mutex.Lock()
	r.stats.hits = 0
	r.stats.misses = 0
	r.stats.mutex.Unlock()

	return nil
}

func (r *RedisCacheStore) Stats(ctx context.Context) (ports.CacheStats, error) {
	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		return ports.CacheStats{}, errors.NewCacheError("redis dbsize operation failed", err)
	}

	r.stats.mutex.Lock()
	defer r.stats.mutex.Unlock()

	return buildStats(redisBackend, r.stats.hits, r.stats.misses, int(size)), nil
}

// Close closes the Redis client connection
func (r *RedisCacheStore) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewCacheError("failed to close Redis connection", err)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisCacheStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewCacheError("Redis ping failed", err)
	}
	return nil
}

func (r *RedisCacheStore) recordHit() {
	r.stats.mutex.Lock()
	defer r.stats.mutex.Unlock()
	r.stats.hits++
}

func (r *RedisCacheStore) recordMiss() {
	r.stats.mutex.Lock()
	defer r.stats.mutex.Unlock()
	r.stats.misses++
}
