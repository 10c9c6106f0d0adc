package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/adapters/external"
	"synergyai.app/internal/adapters/infrastructure"
	"synergyai.app/internal/config"
	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/mocks"
	"synergyai.app/internal/ports"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Port: 8000},
		DataSource: config.DataSourceConfig{Type: config.DataSourcePostgres},
		Auth:       config.AuthConfig{Mode: config.AuthModeHeader},
		LLM:        config.LLMConfig{BaseURL: "http://localhost:11434", Model: "m", TimeoutSeconds: 1},
		RAG:        config.RAGConfig{BaseURL: "http://localhost:8100", TimeoutSeconds: 1},
		Cache:      config.CacheConfig{Type: config.CacheTypeMemory, DefaultTTLSeconds: 300, KeyPrefix: "synergy"},
		Warming: config.WarmingConfig{
			CriticalTimeoutSeconds: 1,
			CriticalEntities:       deals.CriticalEntities,
			Concurrency:            4,
		},
		Scheduler: config.SchedulerConfig{
			ActiveWindowMinutes:      30,
			MissionControlMinutes:    2,
			AlertsAndScoresMinutes:   3,
			UserDashboardsMinutes:    5,
			ProjectDataMinutes:       10,
			AIContentMinutes:         10,
			ValuationTemplateMinutes: 15,
		},
	}
}

// newTestContainer wires the container by hand so no network resources are opened
func newTestContainer(t *testing.T, cfg *config.Config) *DependencyContainer {
	t.Helper()
	logger := mocks.AllowLogging(mocks.NewLogger(t))
	registry := prometheus.NewRegistry()
	metrics := infrastructure.NewPrometheusMetrics(registry)
	rows := mocks.NewRowFetcher(t)
	tracker := infrastructure.NewActivityTracker(infrastructure.ActivityTrackerConfig{Window: time.Minute, Logger: logger})

	return &DependencyContainer{
		config:   cfg,
		registry: registry,
		llm:      external.NewOllamaClient(external.LLMClientParams{BaseURL: cfg.LLM.BaseURL, Model: cfg.LLM.Model, Logger: logger}),
		rag:      external.NewRetrievalClient(external.RetrievalClientParams{BaseURL: cfg.RAG.BaseURL, Logger: logger}),
		ports: &ports.ApplicationPorts{
			CacheStore:       external.NewInstrumentedCacheStore(external.NewMemoryCacheStore(), "memory", metrics),
			CacheMetrics:     metrics,
			RowFetcher:       rows,
			Searcher:         mocks.NewSearcher(t),
			TextGenerator:    mocks.NewTextGenerator(t),
			Authenticator:    external.NewHeaderAuthenticator(),
			TargetProvider:   tracker,
			ActivityRecorder: tracker,
			WarmMetrics:      metrics,
			SchedulerMetrics: metrics,
			ConfigProvider:   infrastructure.NewConfigProviderAdapter(cfg),
			Logger:           logger,
		},
	}
}

func TestNewApplicationWithDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	application, err := NewApplicationWithDependencies(cfg, newTestContainer(t, cfg))

	require.NoError(t, err)
	assert.Same(t, cfg, application.Config())
	assert.NotNil(t, application.Catalog())
	assert.Len(t, application.scheduler.Jobs(), 6)

	routes := map[string]bool{}
	for _, r := range application.GetRouter().Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	assert.True(t, routes["GET /api/projects/:project_id/mission-control"])
	assert.True(t, routes["POST /api/prefetch"])
	assert.True(t, routes["GET /metrics"])
}

func TestApplication_CatalogUsesConfiguredDefaultTTL(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.DefaultTTLSeconds = 120

	application, err := NewApplicationWithDependencies(cfg, newTestContainer(t, cfg))

	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, application.Catalog().Projects.Options().TTL)
	assert.Equal(t, 3*time.Minute, application.Catalog().Alerts.Options().TTL)
}

func TestNewWarmerRegistry(t *testing.T) {
	cfg := testConfig()
	container := newTestContainer(t, cfg)
	application, err := NewApplicationWithDependencies(cfg, container)
	require.NoError(t, err)

	registry, err := newWarmerRegistry(application.Catalog())

	require.NoError(t, err)
	assert.Len(t, registry.Names(), 19)
	_, ok := registry.Get(deals.EntityCompanySearch)
	assert.False(t, ok)
	assert.ElementsMatch(t, registry.Names(), warmableEntities(application.Catalog()))
}

func TestApplication_ServesCachedEntities(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	container := newTestContainer(t, cfg)
	container.ports.RowFetcher.(*mocks.RowFetcher).EXPECT().
		Call(mock.Anything, "get_user_projects", map[string]interface{}{"p_user_id": "U1"}).
		Return([]ports.Row{{"id": "P1"}}, nil).Once()

	application, err := NewApplicationWithDependencies(cfg, container)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Bearer U1")
		w := httptest.NewRecorder()
		application.GetRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"P1"}]`, w.Body.String())
	}

	stats, err := container.ports.CacheStore.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
