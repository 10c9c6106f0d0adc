package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/adapters/external"
	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/core/warming"
	"synergyai.app/internal/mocks"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

type fakeWarmer struct {
	mu       sync.Mutex
	critical []ports.WarmTarget
	all      []ports.WarmTarget
	subsets  [][]string
	report   warming.BatchReport
}

func (f *fakeWarmer) WarmCritical(ctx context.Context, target ports.WarmTarget) warming.BatchReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.critical = append(f.critical, target)
	report := f.report
	report.Target = target
	return report
}

func (f *fakeWarmer) WarmAllAsync(target ports.WarmTarget) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.all = append(f.all, target)
	return uuid.New()
}

func (f *fakeWarmer) WarmEntitiesAsync(target ports.WarmTarget, names []string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subsets = append(f.subsets, names)
	return uuid.New()
}

type fakeHealth struct {
	results map[string]ports.HealthStatus
}

func (f fakeHealth) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return f.results
}

type testServer struct {
	router   *gin.Engine
	store    *external.MemoryCacheStore
	catalog  *deals.Catalog
	warmer   *fakeWarmer
	rows     *mocks.RowFetcher
	activity *mocks.ActivityRecorder
	health   *fakeHealth
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := mocks.AllowLogging(mocks.NewLogger(t))
	rows := mocks.NewRowFetcher(t)
	svc, err := deals.NewService(deals.ServiceDependencies{
		Rows:     rows,
		Searcher: mocks.NewSearcher(t),
		LLM:      mocks.NewTextGenerator(t),
		Logger:   logger,
	})
	require.NoError(t, err)

	store := external.NewMemoryCacheStore()
	catalog := deals.NewCatalog(store, logger, svc, deals.CatalogConfig{KeyPrefix: "synergy"})

	authenticator := mocks.NewAuthenticator(t)
	authenticator.EXPECT().Authenticate(mock.Anything, "good-token").Return("U1", nil).Maybe()
	authenticator.EXPECT().Authenticate(mock.Anything, "bad-token").
		Return("", errors.NewUnauthorizedError("invalid token")).Maybe()

	activity := mocks.NewActivityRecorder(t)
	health := &fakeHealth{results: map[string]ports.HealthStatus{
		"cache": {Component: "cache", Status: "healthy"},
	}}
	warmer := &fakeWarmer{report: warming.BatchReport{ID: uuid.New()}}

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:        ServerConfig{Port: 8000, AllowedOrigins: []string{"http://localhost:3000"}},
		Catalog:       catalog,
		Warmer:        warmer,
		Store:         store,
		HealthChecker: health,
		Authenticator: authenticator,
		Activity:      activity,
		Gatherer:      prometheus.NewRegistry(),
		Entities:      []string{deals.EntityAlerts, deals.EntityTeam, deals.EntityProjects},
	})
	require.NoError(t, err)

	return &testServer{
		router:   server.GetRouter(),
		store:    store,
		catalog:  catalog,
		warmer:   warmer,
		rows:     rows,
		activity: activity,
		health:   health,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) allowTouch() {
	ts.activity.EXPECT().Touch(mock.Anything).Maybe()
}

func TestNewHTTPServerAdapter_Validation(t *testing.T) {
	_, err := NewHTTPServerAdapter(ServerOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is required")
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)

	ts.health.results["llm"] = ports.HealthStatus{Component: "llm", Status: "unhealthy", Error: "down"}
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthentication(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("Missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"missing bearer token"}`, w.Body.String())
	})

	t.Run("Rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Records activity", func(t *testing.T) {
		ts.activity.EXPECT().Touch(ports.WarmTarget{UserID: "U1", ProjectID: "P1"}).Once()
		ts.activity.EXPECT().Touch(mock.Anything).Maybe()
		require.NoError(t, ts.catalog.Alerts.Prime(context.Background(),
			caching.Args{UserID: "U1", ProjectID: "P1"}, []deals.Alert{}))

		w := ts.do(t, http.MethodGet, "/api/projects/P1/alerts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthentication_RejectedProjectIDIsNotRecorded(t *testing.T) {
	ts := setupTestServer(t)
	var touched []ports.WarmTarget
	ts.activity.EXPECT().Touch(mock.Anything).Run(func(target ports.WarmTarget) {
		touched = append(touched, target)
	})

	for _, path := range []string{"/api/projects/bad:id*x/team", "/api/projects/%20%20/team"} {
		w := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := ts.do(t, http.MethodPost, "/api/projects/%20P7%20/invalidate", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []ports.WarmTarget{{UserID: "U1"}, {UserID: "U1"}, {UserID: "U1", ProjectID: "P7"}}, touched)
}

func TestCacheAdmin(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()
	ctx := context.Background()

	require.NoError(t, ts.store.Set(ctx, "synergy:team:project_id:P1", []byte(`[]`), time.Minute))
	require.NoError(t, ts.store.Set(ctx, "synergy:alerts:project_id:P1", []byte(`[]`), time.Minute))
	require.NoError(t, ts.store.Set(ctx, "synergy:projects:user_id:U1", []byte(`[]`), time.Minute))
	_, _, _ = ts.store.Get(ctx, "synergy:team:project_id:P1")
	_, _, _ = ts.store.Get(ctx, "synergy:missing")

	t.Run("Stats", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/cache/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var stats CacheStatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, 0.5, stats.HitRate)
		assert.Equal(t, 3, stats.TotalKeys)
	})

	t.Run("Pattern requires value", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/cache/pattern?pattern=%20", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Pattern", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/cache/pattern?pattern=project_id:P1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response RemovedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Removed)
	})

	t.Run("Clear", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/cache", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		stats, err := ts.store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalKeys)
		assert.Equal(t, int64(0), stats.Hits)
	})
}

func TestPrefetch(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()

	t.Run("Targeted", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/prefetch", PrefetchRequest{
			ProjectID: "P1",
			Entities:  []string{deals.EntityAlerts, deals.EntityTeam},
		})

		assert.Equal(t, http.StatusAccepted, w.Code)
		var response PrefetchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		_, err := uuid.Parse(response.BatchID)
		assert.NoError(t, err)
		assert.Equal(t, [][]string{{deals.EntityAlerts, deals.EntityTeam}}, ts.warmer.subsets)
	})

	t.Run("Everything", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/prefetch", PrefetchRequest{ProjectID: "P2"})

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, []ports.WarmTarget{{UserID: "U1", ProjectID: "P2"}}, ts.warmer.all)
	})

	t.Run("Unknown entity", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/prefetch", PrefetchRequest{Entities: []string{"stock_quotes"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request format"}`, w.Body.String())
	})
}

func TestUserEntities(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()
	ctx := context.Background()
	args := caching.Args{UserID: "U1"}

	require.NoError(t, ts.catalog.Projects.Prime(ctx, args, []ports.Row{{"id": "P1", "name": "Acme"}}))
	require.NoError(t, ts.catalog.ChartData.Prime(ctx, args, deals.ChartData{}))

	w := ts.do(t, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"P1","name":"Acme"}]`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/dashboard/chart_data", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompanySearch_ShortQuery(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()

	w := ts.do(t, http.MethodGet, "/api/companies/search?query=a", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProjectEntity(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()

	t.Run("Cached", func(t *testing.T) {
		require.NoError(t, ts.catalog.AccessSummary.Prime(context.Background(),
			caching.Args{UserID: "U1", ProjectID: "P1"}, deals.AccessSummary{}))

		w := ts.do(t, http.MethodGet, "/api/projects/P1/access_summary", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown entity", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/projects/P1/stock_quotes", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Producer failure", func(t *testing.T) {
		ts.rows.EXPECT().Select(mock.Anything, mock.MatchedBy(func(q ports.Query) bool {
			return q.Table == "tasks"
		})).Return(nil, errors.NewDatabaseError("db down", nil)).Once()

		w := ts.do(t, http.MethodGet, "/api/projects/P1/tasks", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Invalid project id", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/projects/P1:user_id:U2/tasks", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMissionControl(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()
	ctx := context.Background()
	args := caching.Args{UserID: "U1", ProjectID: "P1"}

	// stands in for the critical warm
	require.NoError(t, ts.catalog.Team.Prime(ctx, args, []deals.TeamMember{}))
	require.NoError(t, ts.catalog.Documents.Prime(ctx, args, []ports.Row{}))
	require.NoError(t, ts.catalog.Alerts.Prime(ctx, args, []deals.Alert{}))
	require.NoError(t, ts.catalog.RiskProfile.Prime(ctx, args, deals.RiskProfile{}))
	require.NoError(t, ts.catalog.SynergyScore.Prime(ctx, args, deals.SynergyScore{}))
	require.NoError(t, ts.catalog.AccessSummary.Prime(ctx, args, deals.AccessSummary{}))

	w := ts.do(t, http.MethodGet, "/api/projects/P1/mission-control", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var response MissionControlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "P1", response.Data.ProjectID)
	assert.Empty(t, response.Data.Unavailable)
	assert.Equal(t, ts.warmer.report.ID.String(), response.CriticalWarm.BatchID)
	assert.NotEmpty(t, response.BackgroundBatchID)

	target := ports.WarmTarget{UserID: "U1", ProjectID: "P1"}
	assert.Equal(t, []ports.WarmTarget{target}, ts.warmer.critical)
	assert.Equal(t, []ports.WarmTarget{target}, ts.warmer.all)

	_, found, err := ts.store.Get(ctx, ts.catalog.MissionControl.Key(args))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInvalidateProject(t *testing.T) {
	ts := setupTestServer(t)
	ts.allowTouch()
	ctx := context.Background()

	for _, key := range []string{
		"synergy:team:user_id:U1:project_id:P1",
		"synergy:alerts:project_id:P1",
		"synergy:alerts:project_id:P10",
	} {
		require.NoError(t, ts.store.Set(ctx, key, []byte(`[]`), time.Minute))
	}

	w := ts.do(t, http.MethodPost, "/api/projects/P1/invalidate", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"project_id":"P1","removed":2}`, w.Body.String())

	keys, err := ts.store.Keys(ctx, "project_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"synergy:alerts:project_id:P10"}, keys)
}

func TestHandler_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{router: gin.New(), config: ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
