package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
	"synergyai.app/pkg/validation"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// CacheStatsResponse is the body of GET /api/cache/stats
type CacheStatsResponse struct {
	Backend   string  `json:"backend"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	TotalKeys int     `json:"total_keys"`
}

// RemovedResponse reports how many cache keys a clear removed
type RemovedResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())

	response := HealthResponse{Status: ports.HealthHealthy, Components: results}
	statusCode := http.StatusOK
	for _, status := range results {
		if !status.IsHealthy() {
			response.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, response)
}

// getCacheStats handles GET /api/cache/stats requests
func (s *HTTPServerAdapter) getCacheStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		s.handleError(c, errors.NewCacheError("failed to read cache stats", err))
		return
	}

	c.JSON(http.StatusOK, CacheStatsResponse{
		Backend:   stats.Backend,
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		HitRate:   stats.HitRate,
		TotalKeys: stats.TotalKeys,
	})
}

// clearCache handles DELETE /api/cache requests
func (s *HTTPServerAdapter) clearCache(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		s.handleError(c, errors.NewCacheError("failed to clear cache", err))
		return
	}

	slog.Info("Cache cleared", "user_id", currentUser(c))
	c.JSON(http.StatusOK, RemovedResponse{Message: "Cache cleared"})
}

// clearCachePattern handles DELETE /api/cache/pattern requests
func (s *HTTPServerAdapter) clearCachePattern(c *gin.Context) {
	pattern, ok := validation.TrimAndValidate(c.Query("pattern"))
	if !ok {
		s.handleError(c, errors.NewValidationError("pattern parameter is required"))
		return
	}

	removed, err := s.store.DeletePattern(c.Request.Context(), pattern)
	if err != nil {
		s.handleError(c, errors.NewCacheError("failed to clear cache pattern", err))
		return
	}

	slog.Info("Cache pattern cleared", "pattern", pattern, "removed", removed, "user_id", currentUser(c))
	c.JSON(http.StatusOK, RemovedResponse{Message: "Cache pattern cleared", Removed: removed})
}
