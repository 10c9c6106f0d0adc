package external

import (
	"context"
	"time"

	"synergyai.app/internal/ports"
)

// InstrumentedCacheStore decorates a CacheStore with latency and hit/miss metrics
type InstrumentedCacheStore struct {
	store   ports.CacheStore
	backend string
	metrics ports.CacheMetrics
}

func NewInstrumentedCacheStore(store ports.CacheStore, backend string, metrics ports.CacheMetrics) *InstrumentedCacheStore {
	return &InstrumentedCacheStore{
		store:   store,
		backend: backend,
		metrics: metrics,
	}
}

func (c *InstrumentedCacheStore) measureLatency(operation string, fn func()) {
	start := time.Now()
	fn()
	c.metrics.RecordLatency(c.backend, operation, time.Since(start))
}

func (c *InstrumentedCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
		err   error
	)
	c.measureLatency("get", func() {
		data, found, err = c.store.Get(ctx, key)
	})

	if err == nil {
		if found {
			c.metrics.RecordHit(c.backend)
		} else {
			c.metrics.RecordMiss(c.backend)
		}
	}

	return data, found, err
}

func (c *InstrumentedCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var err error
	c.measureLatency("set", func() {
		err = c.store.Set(ctx, key, value, ttl)
	})
	return err
}

func (c *InstrumentedCacheStore) Delete(ctx context.Context, key string) error {
	var err error
	c.measureLatency("delete", func() {
		err = c.store.Delete(ctx, key)
	})
	return err
}

func (c *InstrumentedCacheStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var (
		removed int
		err     error
	)
	c.measureLatency("delete_pattern", func() {
		removed, err = c.store.DeletePattern(ctx, pattern)
	})
	return removed, err
}

func (c *InstrumentedCacheStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.store.Keys(ctx, pattern)
}

func (c *InstrumentedCacheStore) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

func (c *InstrumentedCacheStore) Stats(ctx context.Context) (ports.CacheStats, error) {
	return c.store.Stats(ctx)
}

// Unwrap returns the decorated store
func (c *InstrumentedCacheStore) Unwrap() ports.CacheStore {
	return c.store
}
