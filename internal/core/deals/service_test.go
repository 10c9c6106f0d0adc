package deals

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/mocks"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

type serviceMocks struct {
	rows   *mocks.RowFetcher
	search *mocks.Searcher
	llm    *mocks.TextGenerator
	logger *mocks.Logger
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	t.Helper()
	m := serviceMocks{
		rows:   mocks.NewRowFetcher(t),
		search: mocks.NewSearcher(t),
		llm:    mocks.NewTextGenerator(t),
		logger: mocks.AllowLogging(mocks.NewLogger(t)),
	}
	svc, err := NewService(ServiceDependencies{Rows: m.rows, Searcher: m.search, LLM: m.llm, Logger: m.logger})
	require.NoError(t, err)
	return svc, m
}

func table(name string) interface{} {
	return mock.MatchedBy(func(q ports.Query) bool { return q.Table == name })
}

func expectTargetCompany(m serviceMocks, projectID, cin string) {
	m.rows.EXPECT().Select(mock.Anything, mock.MatchedBy(func(q ports.Query) bool {
		return q.Table == "projects" && len(q.Filters) == 1 && q.Filters[0].Value == projectID
	})).Return([]ports.Row{{"company_cin": cin}}, nil)
}

func TestNewService_Validation(t *testing.T) {
	logger := mocks.NewLogger(t)
	rows := mocks.NewRowFetcher(t)
	search := mocks.NewSearcher(t)
	llm := mocks.NewTextGenerator(t)

	tests := []struct {
		name string
		deps ServiceDependencies
		msg  string
	}{
		{"MissingRows", ServiceDependencies{Searcher: search, LLM: llm, Logger: logger}, "row fetcher is required"},
		{"MissingSearcher", ServiceDependencies{Rows: rows, LLM: llm, Logger: logger}, "searcher is required"},
		{"MissingLLM", ServiceDependencies{Rows: rows, Searcher: search, Logger: logger}, "text generator is required"},
		{"MissingLogger", ServiceDependencies{Rows: rows, Searcher: search, LLM: llm}, "logger is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(tt.deps)
			assert.Nil(t, svc)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestService_ChartData(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Call(mock.Anything, "get_user_projects", map[string]interface{}{"p_user_id": "U1"}).Return([]ports.Row{
		{"id": "P1", "status": "Active", "targetCompany": map[string]interface{}{"sector": "Tech"}},
		{"id": "P2", "status": "Active", "targetCompany": map[string]interface{}{"sector": "Energy"}},
		{"id": "P3", "status": "Closed"},
	}, nil)

	chart, err := svc.ChartData(context.Background(), caching.Args{UserID: "U1"})

	require.NoError(t, err)
	assert.Equal(t, []Bucket{{"Energy", 1}, {"Tech", 1}, {"Unknown", 1}}, chart.BySector)
	assert.Equal(t, []Bucket{{"Active", 2}, {"Closed", 1}}, chart.ByStatus)
}

func TestService_ProjectsRequiresUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Projects(context.Background(), caching.Args{})
	assert.True(t, errors.IsValidationError(err))
}

func TestService_Narrative(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Call(mock.Anything, "get_user_projects", mock.Anything).Return([]ports.Row{{"id": "P1"}, {"id": "P2"}}, nil)
	m.search.EXPECT().Search(mock.Anything, narrativeQuery, narrativeChunks, []string(nil)).
		Return([]ports.Chunk{{Content: "growth"}, {Content: "risk"}}, nil)
	m.llm.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "Total Active Deals: 2") && assert.Contains(t, p, "growth\n\n---\n\nrisk")
	})).Return("  **Two** deals in flight.  ", nil)

	got, err := svc.Narrative(context.Background(), caching.Args{UserID: "U1"})

	require.NoError(t, err)
	assert.Equal(t, "**Two** deals in flight.", got.Narrative)
}

func TestService_Categories(t *testing.T) {
	tests := []struct {
		name     string
		rows     []ports.Row
		err      error
		expected []Category
	}{
		{
			name:     "Counts",
			rows:     []ports.Row{{"name": "Financials", "document_count": float64(3)}},
			expected: []Category{{Name: "Financials", DocumentCount: 3}},
		},
		{
			name:     "EmptyUsesDefaults",
			rows:     []ports.Row{},
			expected: defaultCategories(),
		},
		{
			name:     "ErrorUsesDefaults",
			err:      fmt.Errorf("rpc missing"),
			expected: defaultCategories(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			m.rows.EXPECT().Call(mock.Anything, "get_categories_with_counts",
				map[string]interface{}{"project_id_param": "P1"}).Return(tt.rows, tt.err)

			got, err := svc.Categories(context.Background(), caching.Args{ProjectID: "P1"})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestService_CategoriesList(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Select(mock.Anything, table("vdr_documents")).Return([]ports.Row{
		{"category": "Legal"}, {"category": "Financials"}, {"category": "Legal"},
	}, nil)

	got, err := svc.CategoriesList(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Financials", "General", "Legal"}, got)
}

func TestService_CategoriesListDefaults(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Select(mock.Anything, table("vdr_documents")).Return(nil, fmt.Errorf("timeout"))

	got, err := svc.CategoriesList(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Financials", "General", "Human Resources", "Intellectual Property", "Legal & Compliance"}, got)
}

func TestService_Alerts(t *testing.T) {
	svc, m := newTestService(t)
	expectTargetCompany(m, "P1", "CIN1")
	m.rows.EXPECT().Select(mock.Anything, mock.MatchedBy(func(q ports.Query) bool {
		return q.Table == "events" && q.Limit == alertsLimit && q.Desc && q.OrderBy == "event_date"
	})).Return([]ports.Row{
		{"id": "E1", "severity": "High", "summary": "Lawsuit filed", "event_type": "Legal",
			"event_date": "2024-05-01", "details": map[string]interface{}{"summary": "Patent dispute"}},
		{"id": "E2"},
	}, nil)

	alerts, err := svc.Alerts(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, Alert{
		ID: "E1", Priority: "High", Title: "Lawsuit filed", Type: "Legal", Source: "Internal",
		Timestamp: "2024-05-01", Description: "Patent dispute", AIInsight: defaultAlertInsight,
	}, alerts[0])
	assert.Equal(t, "Low", alerts[1].Priority)
	assert.Equal(t, "No description available", alerts[1].Description)
}

func TestService_AlertsProjectNotFound(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Select(mock.Anything, table("projects")).Return([]ports.Row{}, nil)

	_, err := svc.Alerts(context.Background(), caching.Args{ProjectID: "missing"})

	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_RiskProfile(t *testing.T) {
	svc, m := newTestService(t)
	expectTargetCompany(m, "P1", "CIN1")
	m.rows.EXPECT().Select(mock.Anything, table("companies")).Return([]ports.Row{{"name": "Acme"}}, nil)
	m.rows.EXPECT().Select(mock.Anything, table("vdr_documents")).Return([]ports.Row{{"file_path": "p1/report.pdf"}}, nil)
	m.search.EXPECT().Search(mock.Anything, riskQuery, analysisChunks, []string{"p1/report.pdf"}).
		Return([]ports.Chunk{{Content: "litigation pending"}}, nil)
	m.llm.EXPECT().Generate(mock.Anything, mock.Anything).Return(
		"Here is the profile:\n```json\n{\"overallScore\": 62, \"topRisks\": [{\"risk\": \"Litigation\", \"mitigation\": \"Escrow\"}],}\n```", nil)

	profile, err := svc.RiskProfile(context.Background(), caching.Args{ProjectID: "P1", UserID: "U1"})

	require.NoError(t, err)
	assert.Equal(t, "CIN1", profile.ID)
	assert.Equal(t, "Acme", profile.Name)
	assert.Equal(t, 62, profile.OverallScore)
	assert.Equal(t, []TopRisk{{Risk: "Litigation", Mitigation: "Escrow"}}, profile.TopRisks)
}

func TestService_RiskProfileBadJSON(t *testing.T) {
	svc, m := newTestService(t)
	expectTargetCompany(m, "P1", "CIN1")
	m.rows.EXPECT().Select(mock.Anything, table("companies")).Return([]ports.Row{}, nil)
	m.rows.EXPECT().Select(mock.Anything, table("vdr_documents")).Return([]ports.Row{}, nil)
	m.search.EXPECT().Search(mock.Anything, riskQuery, analysisChunks, []string(nil)).Return(nil, nil)
	m.llm.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "'Unknown Company'")
	})).Return("I cannot answer that.", nil)

	_, err := svc.RiskProfile(context.Background(), caching.Args{ProjectID: "P1"})

	assert.True(t, errors.IsExternalAPIError(err))
}

func userProjects() []ports.Row {
	return []ports.Row{{
		"id":            "P1",
		"name":          "Project Falcon",
		"targetCompany": map[string]interface{}{"name": "Acme", "sector": "Tech"},
	}}
}

func TestService_SynergyScore(t *testing.T) {
	tests := []struct {
		name     string
		genText  string
		genErr   error
		expected int
		fallback bool
	}{
		{"Parsed", `{"overallScore": 88, "subScores": [], "rationale": "Strong fit"}`, nil, 88, false},
		{"Unparseable", "no json here", nil, 75, true},
		{"ModelDown", "", fmt.Errorf("breaker open"), 70, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			m.rows.EXPECT().Call(mock.Anything, "get_user_projects", mock.Anything).Return(userProjects(), nil)
			m.search.EXPECT().Search(mock.Anything, mock.MatchedBy(func(q string) bool {
				return assert.Contains(t, q, "acquisition of Acme")
			}), analysisChunks, []string(nil)).Return([]ports.Chunk{{Content: "ctx"}}, nil)
			m.llm.EXPECT().Generate(mock.Anything, mock.Anything).Return(tt.genText, tt.genErr)

			score, err := svc.SynergyScore(context.Background(), caching.Args{ProjectID: "P1", UserID: "U1"})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, score.OverallScore)
			assert.Equal(t, tt.fallback, score.Fallback)
		})
	}
}

func TestService_SynergyScoreProjectNotVisible(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Call(mock.Anything, "get_user_projects", mock.Anything).Return(userProjects(), nil)

	_, err := svc.SynergyScore(context.Background(), caching.Args{ProjectID: "P9", UserID: "U1"})

	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_AccessSummary(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Select(mock.Anything, table("project_members")).Return([]ports.Row{
		{"user_id": "U1", "role": "owner"},
		{"user_id": "U2", "role": "analyst"},
		{"user_id": "U3", "role": "analyst"},
	}, nil)

	got, err := svc.AccessSummary(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	assert.Equal(t, AccessSummary{ProjectID: "P1", TotalMembers: 3, ByRole: map[string]int{"owner": 1, "analyst": 2}}, got)
}

func TestService_AnnotatedDocuments(t *testing.T) {
	svc, m := newTestService(t)
	m.rows.EXPECT().Select(mock.Anything, table("document_annotations")).Return([]ports.Row{
		{"document_id": "D2", "note": "a"},
		{"document_id": "D1", "note": "b"},
		{"document_id": "D2", "note": "c"},
		{"note": "orphan"},
	}, nil)

	got, err := svc.AnnotatedDocuments(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "D1", got[0].DocumentID)
	assert.Equal(t, 2, got[1].Count)
}

func TestService_IndustryInsights(t *testing.T) {
	svc, m := newTestService(t)
	expectTargetCompany(m, "P1", "CIN1")
	m.rows.EXPECT().Select(mock.Anything, table("companies")).Return([]ports.Row{
		{"name": "Acme", "industry": `{"sector": "Renewables"}`},
	}, nil)
	m.search.EXPECT().Search(mock.Anything, industryQuery("Renewables"), insightChunks, []string(nil)).Return(nil, nil)
	m.llm.EXPECT().Generate(mock.Anything, mock.Anything).Return("Consolidating market.", nil)

	got, err := svc.IndustryInsights(context.Background(), caching.Args{ProjectID: "P1"})

	require.NoError(t, err)
	assert.Equal(t, IndustryInsights{ProjectID: "P1", Company: "Acme", Sector: "Renewables", Insights: "Consolidating market."}, got)
}

func TestService_ValuationTemplates(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.ValuationTemplates(context.Background(), caching.Args{ProjectID: "P7"})

	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, tpl := range got {
		assert.Equal(t, "P7", tpl.ProjectID)
	}
}

func TestService_CompanySearch(t *testing.T) {
	t.Run("ShortQueryReturnsEmpty", func(t *testing.T) {
		svc, _ := newTestService(t)

		got, err := svc.CompanySearch(context.Background(), caching.Args{Extra: map[string]string{"query": "a"}})

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("BuildsFilters", func(t *testing.T) {
		svc, m := newTestService(t)
		m.rows.EXPECT().Select(mock.Anything, ports.Query{
			Table:   "companies",
			Columns: companySearchColumns,
			Filters: []ports.Filter{
				{Column: "name", Op: ports.OpILike, Value: "%acme%"},
				{Column: "industry->>sector", Op: ports.OpILike, Value: "%Tech%"},
				{Column: "location->>headquarters", Op: ports.OpILike, Value: "%, CA%"},
			},
			OrderBy: "name",
			Limit:   companySearchLimit,
		}).Return([]ports.Row{{"cin": "C1"}}, nil)

		args := caching.Args{}.With("query", " acme ").With("sector", "Tech").With("hq_state", "CA")
		got, err := svc.CompanySearch(context.Background(), args)

		require.NoError(t, err)
		assert.Equal(t, []ports.Row{{"cin": "C1"}}, got)
	})
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"Plain", `{"overallScore": 10}`, 10, false},
		{"Prose", `Sure! {"overallScore": 20} Hope that helps.`, 20, false},
		{"TrailingComma", `{"overallScore": 30, "subScores": [{"score": 1,},],}`, 30, false},
		{"NoObject", `nothing`, 0, true},
		{"Broken", `{"overallScore": }`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SynergyScore
			err := decodeModelJSON(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.OverallScore)
		})
	}
}
