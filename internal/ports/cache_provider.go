package ports

import (
	"context"
	"time"
)

// CacheStore defines the contract for the TTL key/value store backing memoized reads.
// Values are opaque bytes; a ttl <= 0 means the entry never expires.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes every key containing pattern as a substring
	DeletePattern(ctx context.Context, pattern string) (int, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (CacheStats, error)
}

// CacheStats represents cache performance statistics
type CacheStats struct {
	Backend   string  `json:"backend"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	TotalKeys int     `json:"total_keys"`
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	RecordHit(backend string)
	RecordMiss(backend string)
	RecordLatency(backend, operation string, duration time.Duration)
}
