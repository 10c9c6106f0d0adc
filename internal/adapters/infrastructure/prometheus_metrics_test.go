package infrastructure

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Cache(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())

	t.Run("Record hits and misses", func(t *testing.T) {
		metrics.RecordHit("memory")
		metrics.RecordHit("memory")
		metrics.RecordMiss("memory")

		assert.Equal(t, float64(2), testutil.ToFloat64(metrics.cacheHits.WithLabelValues("memory")))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheMisses.WithLabelValues("memory")))
		assert.Equal(t, float64(3), testutil.ToFloat64(metrics.cacheRequests.WithLabelValues("memory")))
		assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(metrics.cacheHitRatio.WithLabelValues("memory")), 1e-9)
	})

	t.Run("Backends are tracked separately", func(t *testing.T) {
		metrics.RecordMiss("redis")

		assert.Equal(t, float64(0), testutil.ToFloat64(metrics.cacheHitRatio.WithLabelValues("redis")))
		assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(metrics.cacheHitRatio.WithLabelValues("memory")), 1e-9)
	})

	t.Run("Latency", func(t *testing.T) {
		metrics.RecordLatency("memory", "get", 5*time.Millisecond)

		assert.Equal(t, 1, testutil.CollectAndCount(metrics.cacheLatency))
	})
}

func TestPrometheusMetrics_WarmAndScheduler(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())

	metrics.RecordWarm("alerts", "success", 10*time.Millisecond)
	metrics.RecordWarm("alerts", "failed", 20*time.Millisecond)
	metrics.RecordWarm("team", "success", time.Millisecond)
	metrics.RecordJobRun("mission_control", "success", time.Second)
	metrics.RecordSkippedTick("mission_control")
	metrics.RecordSkippedTick("mission_control")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.warmResults.WithLabelValues("alerts", "failed")))
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.warmResults))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.jobRuns.WithLabelValues("mission_control", "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.jobSkippedTick.WithLabelValues("mission_control")))
}

func TestPrometheusMetrics_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg)
	metrics.RecordSkippedTick("ai_content")

	expected := `
# HELP synergy_scheduler_skipped_ticks_total Ticks skipped because the previous run was still in flight
# TYPE synergy_scheduler_skipped_ticks_total counter
synergy_scheduler_skipped_ticks_total{job="ai_content"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "synergy_scheduler_skipped_ticks_total"))
}

func TestNewPrometheusMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusMetrics(reg)

	assert.Panics(t, func() { NewPrometheusMetrics(reg) })
}
