// Package api provides the HTTP adapter for the hexagonal architecture.
// Handlers read through the memoized catalog and trigger cache warming.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/core/warming"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// Warmer is the part of the warming orchestrator the handlers trigger
type Warmer interface {
	WarmCritical(ctx context.Context, target ports.WarmTarget) warming.BatchReport
	WarmAllAsync(target ports.WarmTarget) uuid.UUID
	WarmEntitiesAsync(target ports.WarmTarget, names []string) uuid.UUID
}

// HTTPServerAdapter implements the HTTP surface using Gin
type HTTPServerAdapter struct {
	router        *gin.Engine
	config        ServerConfig
	catalog       *deals.Catalog
	warmer        Warmer
	store         ports.CacheStore
	health        ports.SystemHealthChecker
	authenticator ports.Authenticator
	activity      ports.ActivityRecorder
	gatherer      prometheus.Gatherer
	entities      map[string]struct{}
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config        ServerConfig
	Catalog       *deals.Catalog
	Warmer        Warmer
	Store         ports.CacheStore
	HealthChecker ports.SystemHealthChecker
	Authenticator ports.Authenticator
	Activity      ports.ActivityRecorder
	Gatherer      prometheus.Gatherer
	// Entities lists the names accepted by the prefetch endpoint
	Entities []string
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	entities := make(map[string]struct{}, len(opts.Entities))
	for _, name := range opts.Entities {
		entities[name] = struct{}{}
	}
	if err := registerValidators(entities); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	server := &HTTPServerAdapter{
		router:        router,
		config:        opts.Config,
		catalog:       opts.Catalog,
		warmer:        opts.Warmer,
		store:         opts.Store,
		health:        opts.HealthChecker,
		authenticator: opts.Authenticator,
		activity:      opts.Activity,
		gatherer:      opts.Gatherer,
		entities:      entities,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Catalog == nil {
		return errors.NewValidationError("catalog is required")
	}
	if opts.Warmer == nil {
		return errors.NewValidationError("warmer is required")
	}
	if opts.Store == nil {
		return errors.NewValidationError("cache store is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Authenticator == nil {
		return errors.NewValidationError("authenticator is required")
	}
	if opts.Activity == nil {
		return errors.NewValidationError("activity recorder is required")
	}
	if opts.Gatherer == nil {
		return errors.NewValidationError("metrics gatherer is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	s.router.GET("/api/health", s.getHealth)

	api := s.router.Group("/api", s.authenticate())
	{
		api.GET("/cache/stats", s.getCacheStats)
		api.DELETE("/cache", s.clearCache)
		api.DELETE("/cache/pattern", s.clearCachePattern)
		api.POST("/prefetch", s.prefetch)

		api.GET("/projects", s.getProjects)
		api.GET("/dashboard/chart_data", s.getChartData)
		api.GET("/dashboard/narrative", s.getNarrative)
		api.GET("/companies/search", s.searchCompanies)

		api.GET("/projects/:project_id/mission-control", s.getMissionControl)
		api.GET("/projects/:project_id/:entity", s.getProjectEntity)
		api.POST("/projects/:project_id/invalidate", s.invalidateProject)
	}
}

// Handler returns the router wrapped with CORS handling
func (s *HTTPServerAdapter) Handler() http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(s.router)
}

// NewHTTPServer builds the net/http server serving this adapter
func (s *HTTPServerAdapter) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.Handler(),
	}
}

// Start begins the HTTP server and blocks until it stops
func (s *HTTPServerAdapter) Start(srv *http.Server) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	return srv.ListenAndServe()
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
