package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"synergyai.app/internal/ports"
)

const (
	statusHealthy   = ports.HealthHealthy
	statusUnhealthy = ports.HealthUnhealthy
)

// DatabaseHealthChecker pings the Postgres connection behind the row fetcher
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "data_source",
		Details:   map[string]interface{}{"type": "postgres"},
	}

	if d.db == nil {
		status.Status = statusUnhealthy
		status.Error = "database instance is nil"
		return status
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["connected"] = true
	return status
}

// RowFetcherHealthChecker checks a data source by reading a single row
type RowFetcherHealthChecker struct {
	fetcher ports.RowFetcher
	source  string
	table   string
}

// NewRowFetcherHealthChecker creates a checker reading one id from table
func NewRowFetcherHealthChecker(fetcher ports.RowFetcher, source, table string) *RowFetcherHealthChecker {
	return &RowFetcherHealthChecker{fetcher: fetcher, source: source, table: table}
}

// Check verifies the data source answers a minimal query
func (r *RowFetcherHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "data_source",
		Details:   map[string]interface{}{"type": r.source},
	}

	if r.fetcher == nil {
		status.Status = statusUnhealthy
		status.Error = "row fetcher not configured"
		return status
	}

	if _, err := r.fetcher.Select(ctx, ports.Query{Table: r.table, Columns: "id", Limit: 1}); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["connected"] = true
	return status
}

// Pinger is implemented by backends that can verify their own connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports cache statistics and, for remote backends, connectivity
type CacheHealthChecker struct {
	store   ports.CacheStore
	backend string
	pinger  Pinger
}

// NewCacheHealthChecker creates a cache health checker. pinger may be nil.
func NewCacheHealthChecker(store ports.CacheStore, backend string, pinger Pinger) *CacheHealthChecker {
	return &CacheHealthChecker{store: store, backend: backend, pinger: pinger}
}

// Check reports cache health
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   map[string]interface{}{"backend": c.backend},
	}

	if c.pinger != nil {
		if err := c.pinger.Ping(ctx); err != nil {
			status.Status = statusUnhealthy
			status.Error = err.Error()
			return status
		}
	}

	stats, err := c.store.Stats(ctx)
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["total_keys"] = stats.TotalKeys
	status.Details["hit_rate"] = stats.HitRate
	return status
}

// LLMPinger is the subset of the LLM client the health checker needs
type LLMPinger interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// LLMHealthChecker verifies the language model server is reachable
type LLMHealthChecker struct {
	client LLMPinger
}

// NewLLMHealthChecker creates a new LLM health checker
func NewLLMHealthChecker(client LLMPinger) *LLMHealthChecker {
	return &LLMHealthChecker{client: client}
}

// Check reports LLM reachability and breaker state
func (l *LLMHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "llm",
		Details:   map[string]interface{}{"breaker": l.client.BreakerState()},
	}

	if err := l.client.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	return status
}

// PingHealthChecker reports a component as healthy when its Ping succeeds
type PingHealthChecker struct {
	component string
	pinger    Pinger
}

// NewPingHealthChecker creates a health checker for any Pinger
func NewPingHealthChecker(component string, pinger Pinger) *PingHealthChecker {
	return &PingHealthChecker{component: component, pinger: pinger}
}

// Check pings the component
func (p *PingHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: p.component, Status: statusHealthy}
	if err := p.pinger.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
	}
	return status
}
