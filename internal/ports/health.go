package ports

import (
	"context"
	"time"
)

// Component health values
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// HealthChecker checks one collaborator the cache service depends on
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

// HealthStatus is the outcome of one check. Latency is filled in by the
// aggregating checker, not by the check itself.
type HealthStatus struct {
	Component string                 `json:"component"`
	Status    string                 `json:"status"`
	Latency   time.Duration          `json:"-"`
	LatencyMS int64                  `json:"latency_ms,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func (h HealthStatus) IsHealthy() bool {
	return h.Status == HealthHealthy
}

// SystemHealthChecker runs every registered checker and keys results by component
type SystemHealthChecker interface {
	CheckAll(ctx context.Context) map[string]HealthStatus
}
