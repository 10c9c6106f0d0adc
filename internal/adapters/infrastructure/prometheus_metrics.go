package infrastructure

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "synergy"

// PrometheusMetrics implements the cache, warm and scheduler metrics ports.
// All collectors are registered on the Registerer given to NewPrometheusMetrics.
type PrometheusMetrics struct {
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheRequests  *prometheus.CounterVec
	cacheLatency   *prometheus.HistogramVec
	cacheHitRatio  *prometheus.GaugeVec
	warmResults    *prometheus.CounterVec
	warmDuration   *prometheus.HistogramVec
	jobRuns        *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	jobSkippedTick *prometheus.CounterVec

	mu     sync.Mutex
	counts map[string]*hitCount
}

type hitCount struct {
	hits   int64
	misses int64
}

// NewPrometheusMetrics creates and registers every collector on reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "The total number of cache hits",
			},
			[]string{"cache_type"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "The total number of cache misses",
			},
			[]string{"cache_type"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "The total number of cache lookups",
			},
			[]string{"cache_type"},
		),
		cacheLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cache_duration_seconds",
				Help:      "Cache operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"cache_type", "operation"},
		),
		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_hit_ratio",
				Help:      "Cache hit ratio (hits/total lookups)",
			},
			[]string{"cache_type"},
		),
		warmResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "warm_results_total",
				Help:      "Warm attempts by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		warmDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "warm_duration_seconds",
				Help:      "Time spent warming one entity, retries included",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 180},
			},
			[]string{"entity"},
		),
		jobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_job_runs_total",
				Help:      "Scheduled job runs by job and outcome",
			},
			[]string{"job", "outcome"},
		),
		jobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scheduler_job_duration_seconds",
				Help:      "Scheduled job run duration in seconds",
				Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),
		jobSkippedTick: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_skipped_ticks_total",
				Help:      "Ticks skipped because the previous run was still in flight",
			},
			[]string{"job"},
		),
		counts: make(map[string]*hitCount),
	}
}

// RecordHit records a cache hit for backend
func (m *PrometheusMetrics) RecordHit(backend string) {
	m.cacheHits.WithLabelValues(backend).Inc()
	m.cacheRequests.WithLabelValues(backend).Inc()
	m.updateRatio(backend, true)
}

// RecordMiss records a cache miss for backend
func (m *PrometheusMetrics) RecordMiss(backend string) {
	m.cacheMisses.WithLabelValues(backend).Inc()
	m.cacheRequests.WithLabelValues(backend).Inc()
	m.updateRatio(backend, false)
}

// RecordLatency records the duration of one cache operation
func (m *PrometheusMetrics) RecordLatency(backend, operation string, duration time.Duration) {
	m.cacheLatency.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) updateRatio(backend string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counts[backend]
	if !ok {
		c = &hitCount{}
		m.counts[backend] = c
	}
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	m.cacheHitRatio.WithLabelValues(backend).Set(float64(c.hits) / float64(c.hits+c.misses))
}

// RecordWarm records the outcome of warming one entity
func (m *PrometheusMetrics) RecordWarm(entity, outcome string, duration time.Duration) {
	m.warmResults.WithLabelValues(entity, outcome).Inc()
	m.warmDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// RecordJobRun records one completed scheduled job run
func (m *PrometheusMetrics) RecordJobRun(job, outcome string, duration time.Duration) {
	m.jobRuns.WithLabelValues(job, outcome).Inc()
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// RecordSkippedTick records a tick dropped by the overlap guard
func (m *PrometheusMetrics) RecordSkippedTick(job string) {
	m.jobSkippedTick.WithLabelValues(job).Inc()
}
