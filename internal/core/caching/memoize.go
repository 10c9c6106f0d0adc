package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"synergyai.app/internal/ports"
)

var nullPayload = []byte("null")

// MaxComputeTime bounds a shared computation once it no longer follows any
// single caller's cancellation.
const MaxComputeTime = 5 * time.Minute

// Producer computes the value behind a cache key
type Producer[T any] func(ctx context.Context, args Args) (T, error)

// Entry is the type-erased view of a memoized producer used by HTTP handlers
// and warmers that do not know the concrete result type.
type Entry interface {
	Name() string
	Options() Options
	Key(args Args) string
	Fetch(ctx context.Context, args Args) (interface{}, error)
	Warm(ctx context.Context, args Args) error
	HasDefault() bool
	WriteDefault(ctx context.Context, args Args) error
	Invalidate(ctx context.Context, args Args) error
}

// Memoized wraps a producer with read-through caching in a ports.CacheStore.
// Concurrent misses on one key share a single producer call.
type Memoized[T any] struct {
	store    ports.CacheStore
	logger   ports.Logger
	opts     Options
	produce  Producer[T]
	fallback func() T
	group    singleflight.Group
}

// Memoize wraps produce so results are served from and written to store
func Memoize[T any](store ports.CacheStore, logger ports.Logger, opts Options, produce Producer[T]) *Memoized[T] {
	return &Memoized[T]{
		store:   store,
		logger:  logger,
		opts:    opts,
		produce: produce,
	}
}

// WithDefault sets the payload written by WriteDefault when a warm gives up
func (m *Memoized[T]) WithDefault(fallback func() T) *Memoized[T] {
	m.fallback = fallback
	return m
}

func (m *Memoized[T]) Name() string { return m.opts.Name }

func (m *Memoized[T]) Options() Options { return m.opts }

func (m *Memoized[T]) Key(args Args) string { return Key(m.opts, args) }

// Call returns the cached value for args or computes and stores it on a miss.
// Cache faults are logged and the producer result is returned uncached.
func (m *Memoized[T]) Call(ctx context.Context, args Args) (T, error) {
	key := m.Key(args)

	data, found, err := m.store.Get(ctx, key)
	switch {
	case err != nil:
		m.logger.Warn("Cache lookup failed, computing uncached",
			ports.F("key", key), ports.F("error", err))
	case found:
		var value T
		decodeErr := json.Unmarshal(data, &value)
		if decodeErr == nil {
			m.logger.Debug("Cache hit", ports.F("key", key))
			return value, nil
		}
		m.logger.Warn("Cached value could not be decoded, recomputing",
			ports.F("key", key), ports.F("error", decodeErr))
	}

	return m.computeShared(ctx, key, args)
}

// Refresh computes and stores the value unconditionally
func (m *Memoized[T]) Refresh(ctx context.Context, args Args) (T, error) {
	return m.computeShared(ctx, m.Key(args), args)
}

// Prime writes value under the key for args with the configured TTL
func (m *Memoized[T]) Prime(ctx context.Context, args Args, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.opts.Name, err)
	}
	return m.store.Set(ctx, m.Key(args), data, m.opts.EffectiveTTL())
}

// Invalidate removes the cached value for args
func (m *Memoized[T]) Invalidate(ctx context.Context, args Args) error {
	return m.store.Delete(ctx, m.Key(args))
}

func (m *Memoized[T]) Fetch(ctx context.Context, args Args) (interface{}, error) {
	return m.Call(ctx, args)
}

func (m *Memoized[T]) Warm(ctx context.Context, args Args) error {
	_, err := m.Refresh(ctx, args)
	return err
}

func (m *Memoized[T]) HasDefault() bool { return m.fallback != nil }

func (m *Memoized[T]) WriteDefault(ctx context.Context, args Args) error {
	if m.fallback == nil {
		return fmt.Errorf("%s has no default payload", m.opts.Name)
	}
	return m.Prime(ctx, args, m.fallback())
}

// computeShared runs at most one producer call per key. The call runs on a
// context detached from every caller so one caller giving up never fails the
// others; each caller stops waiting when its own ctx is done.
func (m *Memoized[T]) computeShared(ctx context.Context, key string, args Args) (T, error) {
	var zero T
	results := m.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), MaxComputeTime)
		defer cancel()
		return m.compute(shared, key, args)
	})

	select {
	case <-ctx.Done():
		m.logger.Debug("Caller stopped waiting for computation",
			ports.F("key", key), ports.F("error", ctx.Err()))
		return zero, ctx.Err()
	case res := <-results:
		if res.Shared {
			m.logger.Debug("Joined in-flight computation", ports.F("key", key))
		}
		if res.Err != nil {
			return zero, res.Err
		}
		value, _ := res.Val.(T)
		return value, nil
	}
}

func (m *Memoized[T]) compute(ctx context.Context, key string, args Args) (T, error) {
	start := time.Now()
	value, err := m.produce(ctx, args)
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn("Result could not be encoded, returning uncached",
			ports.F("key", key), ports.F("error", err))
		return value, nil
	}
	if string(data) == string(nullPayload) {
		return value, nil
	}

	if err := m.store.Set(ctx, key, data, m.opts.EffectiveTTL()); err != nil {
		m.logger.Warn("Cache store failed, returning uncached",
			ports.F("key", key), ports.F("error", err))
		return value, nil
	}

	m.logger.Debug("Cached computed value",
		ports.F("key", key), ports.F("duration", time.Since(start)))
	return value, nil
}
