package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"synergyai.app/internal/adapters/api"
	"synergyai.app/internal/adapters/infrastructure"
	"synergyai.app/internal/config"
	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/core/scheduler"
	"synergyai.app/internal/core/warming"
	"synergyai.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Use Cases
	catalog      *deals.Catalog
	orchestrator *warming.Orchestrator
	scheduler    *scheduler.Scheduler

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	container *DependencyContainer
	ports     *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	container, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, container)
}

// NewApplicationWithDependencies creates an application on an existing container
func NewApplicationWithDependencies(cfg *config.Config, container *DependencyContainer) (*Application, error) {
	app := &Application{
		config:    cfg,
		container: container,
		ports:     container.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	service, err := deals.NewService(deals.ServiceDependencies{
		Rows:     a.ports.RowFetcher,
		Searcher: a.ports.Searcher,
		LLM:      a.ports.TextGenerator,
		Logger:   a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create deals service: %w", err)
	}
	a.catalog = deals.NewCatalog(a.ports.CacheStore, a.ports.Logger, service, deals.CatalogConfig{
		KeyPrefix:  a.config.Cache.KeyPrefix,
		DefaultTTL: a.ports.ConfigProvider.GetCacheConfig().DefaultTTL,
	})

	registry, err := newWarmerRegistry(a.catalog)
	if err != nil {
		return fmt.Errorf("create warmer registry: %w", err)
	}

	orchestrator, err := warming.NewOrchestrator(warming.OrchestratorDependencies{
		Registry: registry,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.WarmMetrics,
		Tracing:  a.container.TracerProvider(),
	})
	if err != nil {
		return fmt.Errorf("create warm orchestrator: %w", err)
	}
	a.orchestrator = orchestrator

	schedulerConfig := a.ports.ConfigProvider.GetSchedulerConfig()
	jobs := scheduler.Jobs(scheduler.JobDependencies{
		Config:   schedulerConfig,
		Critical: a.ports.ConfigProvider.GetWarmingConfig().CriticalEntities,
		Targets:  a.ports.TargetProvider,
		Warmer:   orchestrator,
	})
	sched, err := scheduler.New(scheduler.Dependencies{
		Descriptors: jobs,
		Logger:      a.ports.Logger,
		Metrics:     a.ports.SchedulerMetrics,
	})
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	a.scheduler = sched

	slog.Info("Use cases initialized successfully", "warmers", len(registry.Names()), "jobs", len(jobs))
	return nil
}

// newWarmerRegistry registers a warmer for every user and project entity.
// Company search is keyed by free-text query and is only filled on demand.
func newWarmerRegistry(catalog *deals.Catalog) (*warming.Registry, error) {
	var warmers []warming.Warmer
	for _, entry := range catalog.UserEntities() {
		warmers = append(warmers, warming.ForUser(entry))
	}
	for _, entry := range catalog.ProjectEntities() {
		warmers = append(warmers, warming.ForProject(entry))
	}
	return warming.NewRegistry(warmers...)
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(a.container.HealthCheckers())

	appConfig := a.ports.ConfigProvider.GetAppConfig()
	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:           appConfig.Port,
			AllowedOrigins: appConfig.AllowedOrigins,
		},
		Catalog:       a.catalog,
		Warmer:        a.orchestrator,
		Store:         a.ports.CacheStore,
		HealthChecker: systemHealthChecker,
		Authenticator: a.ports.Authenticator,
		Activity:      a.ports.ActivityRecorder,
		Gatherer:      a.container.MetricsRegistry(),
		Entities:      warmableEntities(a.catalog),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = httpAdapter.NewHTTPServer()
	a.httpServer.ReadTimeout = 30 * time.Second
	// LLM-backed entities may take minutes on a cold cache
	a.httpServer.WriteTimeout = time.Duration(a.config.LLM.TimeoutSeconds+30) * time.Second
	a.httpServer.IdleTimeout = 60 * time.Second

	slog.Info("Adapters initialized successfully")
	return nil
}

func warmableEntities(catalog *deals.Catalog) []string {
	var names []string
	for _, entry := range append(catalog.UserEntities(), catalog.ProjectEntities()...) {
		names = append(names, entry.Name())
	}
	return names
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if a.config.Scheduler.Enabled {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	} else {
		slog.Info("Scheduler disabled")
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// Shutdown stops accepting requests, then lets scheduled and background warms
// finish within ctx before releasing connections.
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		errs = append(errs, fmt.Errorf("shutdown HTTP server: %w", err))
	}

	if a.config.Scheduler.Enabled {
		if err := a.scheduler.Stop(ctx); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}

	if err := a.orchestrator.Wait(ctx); err != nil {
		slog.Warn("Background warms still running at shutdown", "error", err)
		errs = append(errs, fmt.Errorf("wait for background warms: %w", err))
	}

	a.container.Cleanup()

	slog.Info("Application shutdown complete")
	return stderrors.Join(errs...)
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Catalog returns the memoized producers
func (a *Application) Catalog() *deals.Catalog {
	return a.catalog
}
