package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/supabase-community/supabase-go"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"synergyai.app/internal/adapters/database"
	"synergyai.app/internal/adapters/external"
	"synergyai.app/internal/adapters/infrastructure"
	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// healthTable is read by the data source health check
const healthTable = "projects"

type DependencyContainer struct {
	config   *config.Config
	db       *gorm.DB
	supabase *supabase.Client
	redis    *external.RedisCacheStore
	llm      *external.OllamaClient
	rag      *external.RetrievalClient
	registry *prometheus.Registry
	tracing  *sdktrace.TracerProvider
	ports    *ports.ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	if cfg.Tracing.Enabled() {
		tp, err := infrastructure.NewTracerProvider(context.Background(), &cfg.Tracing)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		container.tracing = tp
		slog.Info("Tracing enabled", "endpoint", cfg.Tracing.Endpoint, "service", cfg.Tracing.ServiceName)
	}

	if err := container.initializeDataSource(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize data source: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDataSource() error {
	slog.Info("Initializing data source...", "type", c.config.DataSource.Type.String())

	if c.config.DataSource.Type == config.DataSourceSupabase || c.config.Auth.Mode == config.AuthModeSupabase {
		client, err := external.NewSupabaseClient(&c.config.Supabase)
		if err != nil {
			return fmt.Errorf("create supabase client: %w", err)
		}
		c.supabase = client
	}

	if c.config.DataSource.Type == config.DataSourcePostgres {
		db, err := database.Open(&c.config.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		c.db = db
	}

	slog.Info("Data source initialized successfully")
	return nil
}

func (c *DependencyContainer) rowFetcher() (ports.RowFetcher, error) {
	switch c.config.DataSource.Type {
	case config.DataSourceSupabase:
		return external.NewSupabaseRowFetcher(c.supabase), nil
	case config.DataSourcePostgres:
		return database.NewRowFetcherAdapter(c.db), nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported data source: %s", c.config.DataSource.Type.String()), nil)
	}
}

func (c *DependencyContainer) authenticator(logger ports.Logger) ports.Authenticator {
	if c.config.Auth.Mode == config.AuthModeHeader {
		slog.Warn("Header authentication enabled, bearer values are trusted as user ids")
		return external.NewHeaderAuthenticator()
	}
	return external.NewSupabaseAuthenticator(c.supabase, logger)
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger := infrastructure.NewSlogLoggerAdapter(slog.Default())
	configProvider := infrastructure.NewConfigProviderAdapter(c.config)

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infrastructure.NewPrometheusMetrics(c.registry)

	cacheFactory := external.NewCacheStoreFactory()
	store, err := cacheFactory.CreateCacheStore(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache store", "error", err)
		return fmt.Errorf("create cache store: %w", err)
	}
	if redisStore, ok := store.(*external.RedisCacheStore); ok {
		c.redis = redisStore
	}

	slog.Info("Cache store initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	rows, err := c.rowFetcher()
	if err != nil {
		return err
	}

	c.llm = external.NewOllamaClient(external.LLMClientParams{
		BaseURL:         c.config.LLM.BaseURL,
		Model:           c.config.LLM.Model,
		Timeout:         time.Duration(c.config.LLM.TimeoutSeconds) * time.Second,
		BreakerFailures: c.config.LLM.BreakerFailures,
		BreakerOpen:     time.Duration(c.config.LLM.BreakerOpenSecs) * time.Second,
		Logger:          logger,
	})
	c.rag = external.NewRetrievalClient(external.RetrievalClientParams{
		BaseURL: c.config.RAG.BaseURL,
		Timeout: time.Duration(c.config.RAG.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})

	var seedFetcher ports.RowFetcher
	if c.config.Scheduler.SeedFromStore {
		seedFetcher = rows
	}
	tracker := infrastructure.NewActivityTracker(infrastructure.ActivityTrackerConfig{
		Window:     time.Duration(c.config.Scheduler.ActiveWindowMinutes) * time.Minute,
		SeedLimit:  c.config.Scheduler.SeedLimit,
		MaxTargets: c.config.Scheduler.ActiveTargetsMax,
		Fetcher:    seedFetcher,
		Logger:     logger,
	})

	var searcher ports.Searcher = c.rag
	var generator ports.TextGenerator = c.llm
	if c.config.Log.CollaboratorCalls {
		searcher = external.NewSearcherLoggingDecorator(searcher, logger)
		generator = external.NewTextGeneratorLoggingDecorator(generator, logger)
	}

	c.ports = &ports.ApplicationPorts{
		// Cache
		CacheStore:   external.NewInstrumentedCacheStore(store, c.config.Cache.Type.String(), metrics),
		CacheMetrics: metrics,

		// Collaborators
		RowFetcher:    rows,
		Searcher:      searcher,
		TextGenerator: generator,
		Authenticator: c.authenticator(logger),

		// Warming
		TargetProvider:   tracker,
		ActivityRecorder: tracker,
		WarmMetrics:      metrics,
		SchedulerMetrics: metrics,

		// Infrastructure
		ConfigProvider: configProvider,
		Logger:         logger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// HealthCheckers builds one checker per collaborator the service depends on
func (c *DependencyContainer) HealthCheckers() infrastructure.SystemHealthCheckerConfig {
	var dataSource ports.HealthChecker
	if c.db != nil {
		dataSource = infrastructure.NewDatabaseHealthChecker(c.db)
	} else {
		dataSource = infrastructure.NewRowFetcherHealthChecker(c.ports.RowFetcher, c.config.DataSource.Type.String(), healthTable)
	}

	var pinger infrastructure.Pinger
	if c.redis != nil {
		pinger = c.redis
	}

	return infrastructure.SystemHealthCheckerConfig{
		DataSourceChecker: dataSource,
		CacheChecker:      infrastructure.NewCacheHealthChecker(c.ports.CacheStore, c.config.Cache.Type.String(), pinger),
		LLMChecker:        infrastructure.NewLLMHealthChecker(c.llm),
		RetrievalChecker:  infrastructure.NewPingHealthChecker("retrieval", c.rag),
		ConfigProvider:    c.ports.ConfigProvider,
	}
}

// MetricsRegistry is the registry every collector of this container is registered on
func (c *DependencyContainer) MetricsRegistry() *prometheus.Registry {
	return c.registry
}

// TracerProvider is nil when span export is disabled
func (c *DependencyContainer) TracerProvider() trace.TracerProvider {
	if c.tracing == nil {
		return nil
	}
	return c.tracing
}

// Cleanup releases connections held by the container
func (c *DependencyContainer) Cleanup() {
	if c.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.tracing.Shutdown(ctx); err != nil {
			slog.Warn("Error flushing spans", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			slog.Warn("Error closing redis", "error", err)
		}
	}
	if c.db != nil {
		if err := database.Close(c.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}
}
