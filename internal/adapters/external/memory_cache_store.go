package external

import (
	"context"
	"strings"
	"sync"
	"time"

	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

const memoryBackend = "memory"

// MemoryCacheStore implements ports.CacheStore with a map guarded by one mutex.
// Expired entries are removed lazily on read; there is no background sweep.
type MemoryCacheStore struct {
	mutex  sync.Mutex
	data   map[string]memoryCacheItem
	hits   int64
	misses int64
	now    func() time.Time
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func (i memoryCacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		data: make(map[string]memoryCacheItem),
		now:  time.Now,
	}
}

func (c *MemoryCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, exists := c.data[key]
	if exists && item.expired(c.now()) {
		delete(c.data, key)
		exists = false
	}

	if !exists {
		c.misses++
		return nil, false, nil
	}

	c.hits++
	return item.data, true, nil
}

func (c *MemoryCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item := memoryCacheItem{data: value}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	c.data[key] = item

	return nil
}

func (c *MemoryCacheStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	if pattern == "" {
		return 0, errors.NewValidationError("cache pattern cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.data {
		if !strings.Contains(key, pattern) {
			continue
		}
		delete(c.data, key)
		if !item.expired(now) {
			removed++
		}
	}
	return removed, nil
}

func (c *MemoryCacheStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	keys := make([]string, 0)
	for key, item := range c.data {
		if item.expired(now) {
			continue
		}
		if strings.Contains(key, pattern) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *MemoryCacheStore) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	c.hits = 0
	c.misses = 0
	return nil
}

func (c *MemoryCacheStore) Stats(ctx context.Context) (ports.CacheStats, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	live := 0
	for _, item := range c.data {
		if !item.expired(now) {
			live++
		}
	}
	return buildStats(memoryBackend, c.hits, c.misses, live), nil
}

func buildStats(backend string, hits, misses int64, totalKeys int) ports.CacheStats {
	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Backend:   backend,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		TotalKeys: totalKeys,
	}
}
