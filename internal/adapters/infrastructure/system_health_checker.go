package infrastructure

import (
	"context"
	"sync"
	"time"

	"synergyai.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DataSourceChecker ports.HealthChecker
	CacheChecker      ports.HealthChecker
	LLMChecker        ports.HealthChecker
	RetrievalChecker  ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	for name, checker := range map[string]ports.HealthChecker{
		"data_source": config.DataSourceChecker,
		"cache":       config.CacheChecker,
		"llm":         config.LLMChecker,
		"retrieval":   config.RetrievalChecker,
	} {
		if checker != nil {
			checkers[name] = checker
		}
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll runs every configured check concurrently
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range s.checkers {
		wg.Add(1)
		go func(name string, checker ports.HealthChecker) {
			defer wg.Done()
			start := time.Now()
			status := checker.Check(ctx)
			status.Latency = time.Since(start)
			status.LatencyMS = status.Latency.Milliseconds()
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	if s.configProvider != nil {
		cacheConfig := s.configProvider.GetCacheConfig()
		warmingConfig := s.configProvider.GetWarmingConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"cacheType":          cacheConfig.Type,
				"keyPrefix":          cacheConfig.KeyPrefix,
				"criticalTimeout":    warmingConfig.CriticalTimeout.String(),
				"criticalEntities":   warmingConfig.CriticalEntities,
				"warmingConcurrency": warmingConfig.Concurrency,
			},
		}
	}

	return results
}

// Healthy reports whether every component in results is healthy
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if !status.IsHealthy() {
			return false
		}
	}
	return true
}
