package deals

import (
	"context"
	"time"

	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/ports"
)

// Entity names double as producer names in cache keys
const (
	EntityProjects           = "projects"
	EntityChartData          = "chart_data"
	EntityNarrative          = "narrative"
	EntityTeam               = "team"
	EntityDocuments          = "documents"
	EntityCategories         = "categories"
	EntityCategoriesList     = "categories_list"
	EntityAlerts             = "alerts"
	EntityRiskProfile        = "risk_profile"
	EntitySynergyScore       = "synergy_score"
	EntityAISummary          = "ai_summary"
	EntityTasks              = "tasks"
	EntityAccessSummary      = "access_summary"
	EntityAnnotatedDocuments = "annotated_documents"
	EntitySimulations        = "simulations"
	EntityScenarios          = "scenarios"
	EntityIndustryInsights   = "industry_insights"
	EntityValuationTemplates = "valuation_templates"
	EntityMissionControl     = "mission_control"
	EntityCompanySearch      = "company_search"
)

const (
	fastTTL   = 3 * time.Minute
	slowTTL   = 10 * time.Minute
	staticTTL = 24 * time.Hour

	// shortTTL entities follow the configured cache default
	shortTTL time.Duration = 0
)

// EntityTTLs is the cache lifetime of every entity. Zero means the catalog's
// default TTL.
var EntityTTLs = map[string]time.Duration{
	EntityProjects:           shortTTL,
	EntityChartData:          shortTTL,
	EntityNarrative:          slowTTL,
	EntityTeam:               slowTTL,
	EntityDocuments:          shortTTL,
	EntityCategories:         slowTTL,
	EntityCategoriesList:     slowTTL,
	EntityAlerts:             fastTTL,
	EntityRiskProfile:        shortTTL,
	EntitySynergyScore:       shortTTL,
	EntityAISummary:          slowTTL,
	EntityTasks:              shortTTL,
	EntityAccessSummary:      shortTTL,
	EntityAnnotatedDocuments: slowTTL,
	EntitySimulations:        slowTTL,
	EntityScenarios:          slowTTL,
	EntityIndustryInsights:   slowTTL,
	EntityValuationTemplates: staticTTL,
	EntityMissionControl:     fastTTL,
	EntityCompanySearch:      slowTTL,
}

// CriticalEntities back the first paint of the mission control view
var CriticalEntities = []string{
	EntityTeam, EntityDocuments, EntityAlerts, EntityRiskProfile, EntitySynergyScore, EntityAccessSummary,
}

// Catalog owns one memoized wrapper per entity. HTTP handlers and warmers
// share these wrappers, so both read and write the same keys.
type Catalog struct {
	Projects           *caching.Memoized[[]ports.Row]
	ChartData          *caching.Memoized[ChartData]
	Narrative          *caching.Memoized[Narrative]
	Team               *caching.Memoized[[]TeamMember]
	Documents          *caching.Memoized[[]ports.Row]
	Categories         *caching.Memoized[[]Category]
	CategoriesList     *caching.Memoized[[]string]
	Alerts             *caching.Memoized[[]Alert]
	RiskProfile        *caching.Memoized[RiskProfile]
	SynergyScore       *caching.Memoized[SynergyScore]
	AISummary          *caching.Memoized[AISummary]
	Tasks              *caching.Memoized[[]ports.Row]
	AccessSummary      *caching.Memoized[AccessSummary]
	AnnotatedDocuments *caching.Memoized[[]AnnotatedDocument]
	Simulations        *caching.Memoized[[]ports.Row]
	Scenarios          *caching.Memoized[[]ports.Row]
	IndustryInsights   *caching.Memoized[IndustryInsights]
	ValuationTemplates *caching.Memoized[[]ValuationTemplate]
	MissionControl     *caching.Memoized[MissionControl]
	CompanySearch      *caching.Memoized[[]ports.Row]

	logger  ports.Logger
	user    []caching.Entry
	project []caching.Entry
	byName  map[string]caching.Entry
}

// CatalogConfig carries the cache settings shared by every entity
type CatalogConfig struct {
	KeyPrefix string
	// DefaultTTL applies to entities without a tier of their own; zero falls
	// back to caching.DefaultTTL.
	DefaultTTL time.Duration
}

func (cfg CatalogConfig) options(name string) caching.Options {
	ttl := EntityTTLs[name]
	if ttl == 0 {
		ttl = cfg.DefaultTTL
	}
	return caching.Options{Name: name, KeyPrefix: cfg.KeyPrefix, TTL: ttl}
}

// NewCatalog wraps every producer of svc with read-through caching in store
func NewCatalog(store ports.CacheStore, logger ports.Logger, svc *Service, cfg CatalogConfig) *Catalog {
	c := &Catalog{logger: logger, byName: make(map[string]caching.Entry)}

	c.Projects = caching.Memoize(store, logger, cfg.options(EntityProjects), svc.Projects)
	c.ChartData = caching.Memoize(store, logger, cfg.options(EntityChartData), svc.ChartData)
	c.Narrative = caching.Memoize(store, logger, cfg.options(EntityNarrative), svc.Narrative)

	c.Team = caching.Memoize(store, logger, cfg.options(EntityTeam), svc.Team)
	c.Documents = caching.Memoize(store, logger, cfg.options(EntityDocuments), svc.Documents)
	c.Categories = caching.Memoize(store, logger, cfg.options(EntityCategories), svc.Categories).
		WithDefault(defaultCategories)
	c.CategoriesList = caching.Memoize(store, logger, cfg.options(EntityCategoriesList), svc.CategoriesList).
		WithDefault(defaultCategoryList)
	c.Alerts = caching.Memoize(store, logger, cfg.options(EntityAlerts), svc.Alerts)
	c.RiskProfile = caching.Memoize(store, logger, cfg.options(EntityRiskProfile), svc.RiskProfile)
	c.SynergyScore = caching.Memoize(store, logger, cfg.options(EntitySynergyScore), svc.SynergyScore).
		WithDefault(func() SynergyScore { return defaultSynergyScore("warm retries exhausted") })
	c.AISummary = caching.Memoize(store, logger, cfg.options(EntityAISummary), svc.AISummary)
	c.Tasks = caching.Memoize(store, logger, cfg.options(EntityTasks), svc.Tasks)
	c.AccessSummary = caching.Memoize(store, logger, cfg.options(EntityAccessSummary), svc.AccessSummary)
	c.AnnotatedDocuments = caching.Memoize(store, logger, cfg.options(EntityAnnotatedDocuments), svc.AnnotatedDocuments)
	c.Simulations = caching.Memoize(store, logger, cfg.options(EntitySimulations), svc.Simulations)
	c.Scenarios = caching.Memoize(store, logger, cfg.options(EntityScenarios), svc.Scenarios)
	c.IndustryInsights = caching.Memoize(store, logger, cfg.options(EntityIndustryInsights), svc.IndustryInsights)
	c.ValuationTemplates = caching.Memoize(store, logger, cfg.options(EntityValuationTemplates), svc.ValuationTemplates)
	c.MissionControl = caching.Memoize(store, logger, cfg.options(EntityMissionControl), c.assembleMissionControl)

	// Shared across users: keyed by the search extras only, never by a caller.
	c.CompanySearch = caching.Memoize(store, logger, cfg.options(EntityCompanySearch), svc.CompanySearch)

	c.user = []caching.Entry{c.Projects, c.ChartData, c.Narrative}
	c.project = []caching.Entry{
		c.Team, c.Documents, c.Categories, c.CategoriesList, c.Alerts, c.RiskProfile,
		c.SynergyScore, c.AISummary, c.Tasks, c.AccessSummary, c.AnnotatedDocuments,
		c.Simulations, c.Scenarios, c.IndustryInsights, c.ValuationTemplates, c.MissionControl,
	}
	for _, e := range append(append([]caching.Entry{c.CompanySearch}, c.user...), c.project...) {
		c.byName[e.Name()] = e
	}

	return c
}

// Entry looks up a memoized producer by entity name
func (c *Catalog) Entry(name string) (caching.Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// ProjectEntity looks up a project-scoped entity
func (c *Catalog) ProjectEntity(name string) (caching.Entry, bool) {
	for _, e := range c.project {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// UserEntities are keyed by user only
func (c *Catalog) UserEntities() []caching.Entry {
	return append([]caching.Entry(nil), c.user...)
}

// ProjectEntities are keyed by project, and by user as well when one is given
func (c *Catalog) ProjectEntities() []caching.Entry {
	return append([]caching.Entry(nil), c.project...)
}

// assembleMissionControl reads the critical entities through their wrappers,
// so after a critical warm every section is a cache hit.
func (c *Catalog) assembleMissionControl(ctx context.Context, args caching.Args) (MissionControl, error) {
	if err := requireProject(args); err != nil {
		return MissionControl{}, err
	}

	mc := MissionControl{ProjectID: args.ProjectID}
	unavailable := func(entity string, err error) {
		c.logger.Warn("Mission control section unavailable",
			ports.F("project_id", args.ProjectID), ports.F("entity", entity), ports.F("error", err))
		mc.Unavailable = append(mc.Unavailable, entity)
	}

	if team, err := c.Team.Call(ctx, args); err != nil {
		unavailable(EntityTeam, err)
	} else {
		mc.Team = team
	}
	if docs, err := c.Documents.Call(ctx, args); err != nil {
		unavailable(EntityDocuments, err)
	} else {
		mc.Documents = docs
	}
	if alerts, err := c.Alerts.Call(ctx, args); err != nil {
		unavailable(EntityAlerts, err)
	} else {
		mc.Alerts = alerts
	}
	if risk, err := c.RiskProfile.Call(ctx, args); err != nil {
		unavailable(EntityRiskProfile, err)
	} else {
		mc.RiskProfile = &risk
	}
	if score, err := c.SynergyScore.Call(ctx, args); err != nil {
		unavailable(EntitySynergyScore, err)
	} else {
		mc.SynergyScore = &score
	}
	if access, err := c.AccessSummary.Call(ctx, args); err != nil {
		unavailable(EntityAccessSummary, err)
	} else {
		mc.AccessSummary = &access
	}

	return mc, nil
}
