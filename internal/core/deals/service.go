package deals

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

const (
	recentDocumentsLimit = 10
	alertsLimit          = 50
	companySearchLimit   = 20
	minSearchQueryLength = 2
	narrativeChunks      = 5
	analysisChunks       = 10
	summaryChunks        = 8
	insightChunks        = 5
	generalCategory      = "General"
	defaultAlertInsight  = "AI insight generation for this alert is pending."
	companySearchColumns = "cin, name, logo_url, industry, financial_summary"
)

// Service holds the fetch logic behind every cached data product.
// Each exported producer has the caching.Producer signature.
type Service struct {
	rows   ports.RowFetcher
	search ports.Searcher
	llm    ports.TextGenerator
	logger ports.Logger
}

type ServiceDependencies struct {
	Rows     ports.RowFetcher
	Searcher ports.Searcher
	LLM      ports.TextGenerator
	Logger   ports.Logger
}

func NewService(deps ServiceDependencies) (*Service, error) {
	if deps.Rows == nil {
		return nil, errors.NewValidationError("row fetcher is required")
	}
	if deps.Searcher == nil {
		return nil, errors.NewValidationError("searcher is required")
	}
	if deps.LLM == nil {
		return nil, errors.NewValidationError("text generator is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &Service{
		rows:   deps.Rows,
		search: deps.Searcher,
		llm:    deps.LLM,
		logger: deps.Logger,
	}, nil
}

func requireUser(args caching.Args) error {
	if strings.TrimSpace(args.UserID) == "" {
		return errors.NewValidationError("user id is required")
	}
	return nil
}

func requireProject(args caching.Args) error {
	if strings.TrimSpace(args.ProjectID) == "" {
		return errors.NewValidationError("project id is required")
	}
	return nil
}

func projectFilter(projectID string) []ports.Filter {
	return []ports.Filter{{Column: "project_id", Op: ports.OpEq, Value: projectID}}
}

// Projects lists the projects a user is a member of
func (s *Service) Projects(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	if err := requireUser(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Call(ctx, "get_user_projects", map[string]interface{}{"p_user_id": args.UserID})
	if err != nil {
		return nil, fmt.Errorf("fetch projects for user %s: %w", args.UserID, err)
	}
	if rows == nil {
		rows = []ports.Row{}
	}
	return rows, nil
}

// ChartData groups the user's projects by target sector and by status
func (s *Service) ChartData(ctx context.Context, args caching.Args) (ChartData, error) {
	projects, err := s.Projects(ctx, args)
	if err != nil {
		return ChartData{}, err
	}

	sectors := make(map[string]int)
	statuses := make(map[string]int)
	for _, p := range projects {
		sector := nestedString(p, "targetCompany", "sector")
		if sector == "" {
			sector = "Unknown"
		}
		sectors[sector]++
		statuses[stringFieldOr(p, "status", "Unknown")]++
	}

	return ChartData{BySector: toBuckets(sectors), ByStatus: toBuckets(statuses)}, nil
}

func toBuckets(counts map[string]int) []Bucket {
	buckets := make([]Bucket, 0, len(counts))
	for name, value := range counts {
		buckets = append(buckets, Bucket{Name: name, Value: value})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Name < buckets[j].Name })
	return buckets
}

// Narrative writes an executive summary of the user's deal pipeline
func (s *Service) Narrative(ctx context.Context, args caching.Args) (Narrative, error) {
	projects, err := s.Projects(ctx, args)
	if err != nil {
		return Narrative{}, err
	}

	chunks, err := s.search.Search(ctx, narrativeQuery, narrativeChunks, nil)
	if err != nil {
		return Narrative{}, fmt.Errorf("retrieve narrative context: %w", err)
	}

	text, err := s.llm.Generate(ctx, narrativePrompt(len(projects), joinContext(chunks)))
	if err != nil {
		return Narrative{}, fmt.Errorf("generate narrative: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = "Could not generate summary."
	}
	return Narrative{Narrative: text}, nil
}

// Team lists the members of a project
func (s *Service) Team(ctx context.Context, args caching.Args) ([]TeamMember, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "project_members",
		Columns: "user_id, role, joined_at",
		Filters: projectFilter(args.ProjectID),
		OrderBy: "joined_at",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch team for project %s: %w", args.ProjectID, err)
	}

	team := make([]TeamMember, 0, len(rows))
	for _, row := range rows {
		team = append(team, TeamMember{
			UserID:   stringField(row, "user_id"),
			Role:     stringFieldOr(row, "role", "member"),
			JoinedAt: stringField(row, "joined_at"),
		})
	}
	return team, nil
}

// Documents returns the most recently uploaded data room documents
func (s *Service) Documents(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "vdr_documents",
		Columns: "*",
		Filters: projectFilter(args.ProjectID),
		OrderBy: "uploaded_at",
		Desc:    true,
		Limit:   recentDocumentsLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch documents for project %s: %w", args.ProjectID, err)
	}
	if rows == nil {
		rows = []ports.Row{}
	}
	return rows, nil
}

// Categories returns document counts per category. It never fails: an empty
// or failed lookup yields the default category set.
func (s *Service) Categories(ctx context.Context, args caching.Args) ([]Category, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Call(ctx, "get_categories_with_counts", map[string]interface{}{"project_id_param": args.ProjectID})
	if err != nil {
		s.logger.Warn("Category lookup failed, using defaults",
			ports.F("project_id", args.ProjectID), ports.F("error", err))
		return defaultCategories(), nil
	}
	if len(rows) == 0 {
		return defaultCategories(), nil
	}

	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{
			Name:          stringFieldOr(row, "name", "Uncategorized"),
			DocumentCount: intField(row, "document_count"),
		})
	}
	return categories, nil
}

// CategoriesList returns the distinct document categories in use plus General
func (s *Service) CategoriesList(ctx context.Context, args caching.Args) ([]string, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "vdr_documents",
		Columns: "category",
		Filters: []ports.Filter{
			{Column: "project_id", Op: ports.OpEq, Value: args.ProjectID},
			{Column: "category", Op: ports.OpNotNull},
			{Column: "category", Op: ports.OpNeq, Value: ""},
		},
	})
	if err != nil {
		s.logger.Warn("Category list lookup failed, using defaults",
			ports.F("project_id", args.ProjectID), ports.F("error", err))
		return defaultCategoryList(), nil
	}

	seen := make(map[string]struct{})
	for _, row := range rows {
		if c := stringField(row, "category"); c != "" {
			seen[c] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return defaultCategoryList(), nil
	}
	seen[generalCategory] = struct{}{}

	list := make([]string, 0, len(seen))
	for c := range seen {
		list = append(list, c)
	}
	sort.Strings(list)
	return list, nil
}

// targetCompany resolves the CIN of the company a project is evaluating
func (s *Service) targetCompany(ctx context.Context, projectID string) (string, error) {
	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "projects",
		Columns: "company_cin",
		Filters: []ports.Filter{{Column: "id", Op: ports.OpEq, Value: projectID}},
		Limit:   1,
	})
	if err != nil {
		return "", fmt.Errorf("fetch project %s: %w", projectID, err)
	}
	if len(rows) == 0 {
		return "", errors.NewNotFoundError(fmt.Sprintf("project %s not found", projectID))
	}
	cin := stringField(rows[0], "company_cin")
	if cin == "" {
		return "", errors.NewNotFoundError(fmt.Sprintf("project %s has no target company", projectID))
	}
	return cin, nil
}

func (s *Service) company(ctx context.Context, cin, columns string) (ports.Row, error) {
	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "companies",
		Columns: columns,
		Filters: []ports.Filter{{Column: "cin", Op: ports.OpEq, Value: cin}},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch company %s: %w", cin, err)
	}
	if len(rows) == 0 {
		return ports.Row{}, nil
	}
	return rows[0], nil
}

// projectSources lists the file paths of the project's documents, used to
// scope retrieval to the project's own data room.
func (s *Service) projectSources(ctx context.Context, projectID string) []string {
	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "vdr_documents",
		Columns: "file_path",
		Filters: projectFilter(projectID),
	})
	if err != nil {
		s.logger.Warn("Could not scope retrieval to project documents",
			ports.F("project_id", projectID), ports.F("error", err))
		return nil
	}

	sources := make([]string, 0, len(rows))
	for _, row := range rows {
		if p := stringField(row, "file_path"); p != "" {
			sources = append(sources, p)
		}
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}

// Alerts maps the target company's latest events to dashboard alerts
func (s *Service) Alerts(ctx context.Context, args caching.Args) ([]Alert, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	cin, err := s.targetCompany(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "events",
		Columns: "*",
		Filters: []ports.Filter{{Column: "company_cin", Op: ports.OpEq, Value: cin}},
		OrderBy: "event_date",
		Desc:    true,
		Limit:   alertsLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch events for company %s: %w", cin, err)
	}

	alerts := make([]Alert, 0, len(rows))
	for _, event := range rows {
		if event == nil {
			continue
		}
		description := stringFieldOr(event, "summary", "No description available")
		if details, ok := asRow(event["details"]); ok {
			description = stringField(details, "summary")
		}
		alerts = append(alerts, Alert{
			ID:          stringFieldOr(event, "id", "unknown"),
			Priority:    stringFieldOr(event, "severity", "Low"),
			Title:       stringFieldOr(event, "summary", "No title"),
			Type:        stringFieldOr(event, "event_type", "Unknown"),
			Source:      stringFieldOr(event, "source_url", "Internal"),
			Timestamp:   stringFieldOr(event, "event_date", "N/A"),
			Description: description,
			AIInsight:   defaultAlertInsight,
		})
	}
	return alerts, nil
}

// RiskProfile asks the model for a structured risk assessment of the target
func (s *Service) RiskProfile(ctx context.Context, args caching.Args) (RiskProfile, error) {
	if err := requireProject(args); err != nil {
		return RiskProfile{}, err
	}

	cin, err := s.targetCompany(ctx, args.ProjectID)
	if err != nil {
		return RiskProfile{}, err
	}
	company, err := s.company(ctx, cin, "name")
	if err != nil {
		return RiskProfile{}, err
	}
	name := stringFieldOr(company, "name", "Unknown Company")

	chunks, err := s.search.Search(ctx, riskQuery, analysisChunks, s.projectSources(ctx, args.ProjectID))
	if err != nil {
		return RiskProfile{}, fmt.Errorf("retrieve risk context: %w", err)
	}

	text, err := s.llm.Generate(ctx, riskPrompt(name, joinContext(chunks)))
	if err != nil {
		return RiskProfile{}, fmt.Errorf("generate risk profile: %w", err)
	}

	var profile RiskProfile
	if err := decodeModelJSON(text, &profile); err != nil {
		return RiskProfile{}, errors.NewExternalAPIError("risk profile response was not valid JSON", err)
	}
	profile.ID = cin
	profile.Name = name
	return profile, nil
}

// SynergyScore runs a strategic fit audit. Model or parse failures degrade to
// a fallback payload; only a missing project is reported as an error.
func (s *Service) SynergyScore(ctx context.Context, args caching.Args) (SynergyScore, error) {
	if err := requireProject(args); err != nil {
		return SynergyScore{}, err
	}
	if err := requireUser(args); err != nil {
		return SynergyScore{}, err
	}

	projects, err := s.Projects(ctx, args)
	if err != nil {
		s.logger.Warn("Synergy score falling back", ports.F("project_id", args.ProjectID), ports.F("error", err))
		return defaultSynergyScore(err.Error()), nil
	}

	var project ports.Row
	for _, p := range projects {
		if stringField(p, "id") == args.ProjectID {
			project = p
			break
		}
	}
	if project == nil {
		return SynergyScore{}, errors.NewNotFoundError(fmt.Sprintf("project %s not found or access denied", args.ProjectID))
	}

	targetName := nestedString(project, "targetCompany", "name")
	target, _ := json.Marshal(project["targetCompany"])
	query := fmt.Sprintf("Analyze the strategic rationale, market position, and potential risks for an acquisition of %s based on all available documents.", targetName)

	chunks, err := s.search.Search(ctx, query, analysisChunks, nil)
	if err != nil {
		s.logger.Warn("Synergy score falling back", ports.F("project_id", args.ProjectID), ports.F("error", err))
		return defaultSynergyScore(err.Error()), nil
	}

	text, err := s.llm.Generate(ctx, synergyPrompt(stringField(project, "name"), targetName, string(target), joinContext(chunks)))
	if err != nil {
		s.logger.Warn("Synergy score falling back", ports.F("project_id", args.ProjectID), ports.F("error", err))
		return defaultSynergyScore(err.Error()), nil
	}

	var score SynergyScore
	if err := decodeModelJSON(text, &score); err != nil {
		s.logger.Warn("Synergy score response unparseable", ports.F("project_id", args.ProjectID), ports.F("error", err))
		return unparsedSynergyScore(), nil
	}
	return score, nil
}

// AISummary summarizes the project's data room
func (s *Service) AISummary(ctx context.Context, args caching.Args) (AISummary, error) {
	if err := requireProject(args); err != nil {
		return AISummary{}, err
	}

	docs, err := s.Documents(ctx, args)
	if err != nil {
		return AISummary{}, err
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		if n := stringField(d, "file_name"); n != "" {
			names = append(names, n)
		}
	}

	chunks, err := s.search.Search(ctx, summaryQuery, summaryChunks, s.projectSources(ctx, args.ProjectID))
	if err != nil {
		return AISummary{}, fmt.Errorf("retrieve summary context: %w", err)
	}

	text, err := s.llm.Generate(ctx, summaryPrompt(names, joinContext(chunks)))
	if err != nil {
		return AISummary{}, fmt.Errorf("generate summary: %w", err)
	}

	return AISummary{
		ProjectID: args.ProjectID,
		Summary:   strings.TrimSpace(text),
		Sources:   chunkSources(chunks),
	}, nil
}

// Tasks lists the project's open diligence tasks
func (s *Service) Tasks(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	return s.projectTable(ctx, args, "tasks", "due_date", false)
}

// Simulations lists saved valuation simulations, newest first
func (s *Service) Simulations(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	return s.projectTable(ctx, args, "simulations", "created_at", true)
}

// Scenarios lists saved deal scenarios, newest first
func (s *Service) Scenarios(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	return s.projectTable(ctx, args, "scenarios", "created_at", true)
}

func (s *Service) projectTable(ctx context.Context, args caching.Args, table, orderBy string, desc bool) ([]ports.Row, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   table,
		Columns: "*",
		Filters: projectFilter(args.ProjectID),
		OrderBy: orderBy,
		Desc:    desc,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s for project %s: %w", table, args.ProjectID, err)
	}
	if rows == nil {
		rows = []ports.Row{}
	}
	return rows, nil
}

// AccessSummary counts project members by role
func (s *Service) AccessSummary(ctx context.Context, args caching.Args) (AccessSummary, error) {
	team, err := s.Team(ctx, args)
	if err != nil {
		return AccessSummary{}, err
	}

	byRole := make(map[string]int)
	for _, m := range team {
		byRole[m.Role]++
	}
	return AccessSummary{
		ProjectID:    args.ProjectID,
		TotalMembers: len(team),
		ByRole:       byRole,
	}, nil
}

// AnnotatedDocuments groups the project's annotations by document
func (s *Service) AnnotatedDocuments(ctx context.Context, args caching.Args) ([]AnnotatedDocument, error) {
	rows, err := s.projectTable(ctx, args, "document_annotations", "created_at", false)
	if err != nil {
		return nil, err
	}

	byDoc := make(map[string][]ports.Row)
	for _, row := range rows {
		id := stringField(row, "document_id")
		if id == "" {
			continue
		}
		byDoc[id] = append(byDoc[id], row)
	}

	docs := make([]AnnotatedDocument, 0, len(byDoc))
	for id, annotations := range byDoc {
		docs = append(docs, AnnotatedDocument{DocumentID: id, Count: len(annotations), Annotations: annotations})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].DocumentID < docs[j].DocumentID })
	return docs, nil
}

// IndustryInsights describes the target's sector
func (s *Service) IndustryInsights(ctx context.Context, args caching.Args) (IndustryInsights, error) {
	if err := requireProject(args); err != nil {
		return IndustryInsights{}, err
	}

	cin, err := s.targetCompany(ctx, args.ProjectID)
	if err != nil {
		return IndustryInsights{}, err
	}
	company, err := s.company(ctx, cin, "name, industry")
	if err != nil {
		return IndustryInsights{}, err
	}
	name := stringFieldOr(company, "name", "Unknown Company")
	sector := nestedString(company, "industry", "sector")
	if sector == "" {
		sector = "Unknown"
	}

	chunks, err := s.search.Search(ctx, industryQuery(sector), insightChunks, nil)
	if err != nil {
		return IndustryInsights{}, fmt.Errorf("retrieve industry context: %w", err)
	}

	text, err := s.llm.Generate(ctx, industryPrompt(name, sector, joinContext(chunks)))
	if err != nil {
		return IndustryInsights{}, fmt.Errorf("generate industry insights: %w", err)
	}

	return IndustryInsights{
		ProjectID: args.ProjectID,
		Company:   name,
		Sector:    sector,
		Insights:  strings.TrimSpace(text),
	}, nil
}

// ValuationTemplates returns the static valuation model set for a project
func (s *Service) ValuationTemplates(ctx context.Context, args caching.Args) ([]ValuationTemplate, error) {
	if err := requireProject(args); err != nil {
		return nil, err
	}
	return valuationTemplates(args.ProjectID), nil
}

// CompanySearch filters companies by name, sector and headquarters state
func (s *Service) CompanySearch(ctx context.Context, args caching.Args) ([]ports.Row, error) {
	query := strings.TrimSpace(args.Extra["query"])
	sector := strings.TrimSpace(args.Extra["sector"])
	state := strings.TrimSpace(args.Extra["hq_state"])

	if len(query) < minSearchQueryLength && sector == "" && state == "" {
		return []ports.Row{}, nil
	}

	var filters []ports.Filter
	if len(query) >= minSearchQueryLength {
		filters = append(filters, ports.Filter{Column: "name", Op: ports.OpILike, Value: "%" + query + "%"})
	}
	if sector != "" && sector != "All" {
		filters = append(filters, ports.Filter{Column: "industry->>sector", Op: ports.OpILike, Value: "%" + sector + "%"})
	}
	if state != "" && state != "All" {
		filters = append(filters, ports.Filter{Column: "location->>headquarters", Op: ports.OpILike, Value: "%, " + state + "%"})
	}

	rows, err := s.rows.Select(ctx, ports.Query{
		Table:   "companies",
		Columns: companySearchColumns,
		Filters: filters,
		OrderBy: "name",
		Limit:   companySearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	if rows == nil {
		rows = []ports.Row{}
	}
	return rows, nil
}
