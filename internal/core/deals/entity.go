package deals

import (
	"fmt"
	"sort"

	"synergyai.app/internal/ports"
)

// Bucket is one slice of a dashboard distribution chart
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartData struct {
	BySector []Bucket `json:"bySector"`
	ByStatus []Bucket `json:"byStatus"`
}

type Narrative struct {
	Narrative string `json:"narrative"`
}

type TeamMember struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at,omitempty"`
}

type Category struct {
	Name          string `json:"name"`
	DocumentCount int    `json:"document_count"`
}

type Alert struct {
	ID          string `json:"id"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	AIInsight   string `json:"aiInsight"`
}

type TopRisk struct {
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
}

type RiskCategory struct {
	Category string   `json:"category"`
	Score    int      `json:"score"`
	Insights []string `json:"insights"`
}

type RiskProfile struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	OverallScore      int            `json:"overallScore"`
	TopRisks          []TopRisk      `json:"topRisks"`
	DetailedBreakdown []RiskCategory `json:"detailedBreakdown"`
}

type SubScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Summary  string `json:"summary"`
}

type SynergyScore struct {
	OverallScore int        `json:"overallScore"`
	SubScores    []SubScore `json:"subScores"`
	Rationale    string     `json:"rationale"`
	Fallback     bool       `json:"fallback,omitempty"`
}

type AISummary struct {
	ProjectID string   `json:"project_id"`
	Summary   string   `json:"summary"`
	Sources   []string `json:"sources"`
}

type AccessSummary struct {
	ProjectID    string         `json:"project_id"`
	TotalMembers int            `json:"total_members"`
	ByRole       map[string]int `json:"by_role"`
}

type AnnotatedDocument struct {
	DocumentID  string      `json:"document_id"`
	Count       int         `json:"count"`
	Annotations []ports.Row `json:"annotations"`
}

type IndustryInsights struct {
	ProjectID string `json:"project_id"`
	Company   string `json:"company"`
	Sector    string `json:"sector"`
	Insights  string `json:"insights"`
}

type ValuationTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	LastUsed     string `json:"lastUsed"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ProjectID    string `json:"projectId"`
}

// MissionControl is the first-paint dashboard for a project. Sections that
// could not be produced are listed in Unavailable instead of failing the view.
type MissionControl struct {
	ProjectID     string         `json:"project_id"`
	Team          []TeamMember   `json:"team"`
	Documents     []ports.Row    `json:"documents"`
	Alerts        []Alert        `json:"alerts"`
	RiskProfile   *RiskProfile   `json:"risk_profile,omitempty"`
	SynergyScore  *SynergyScore  `json:"synergy_score,omitempty"`
	AccessSummary *AccessSummary `json:"access_summary,omitempty"`
	Unavailable   []string       `json:"unavailable,omitempty"`
}

var defaultCategoryNames = []string{
	"Financials", "Legal & Compliance", "Human Resources", "Intellectual Property",
}

func defaultCategories() []Category {
	categories := make([]Category, 0, len(defaultCategoryNames)+1)
	for _, name := range defaultCategoryNames {
		categories = append(categories, Category{Name: name})
	}
	return append(categories, Category{Name: "Uncategorized"})
}

func defaultCategoryList() []string {
	list := append([]string{}, defaultCategoryNames...)
	list = append(list, generalCategory)
	sort.Strings(list)
	return list
}

func defaultSynergyScore(reason string) SynergyScore {
	return SynergyScore{
		OverallScore: 70,
		SubScores: []SubScore{
			{Category: "Financial Synergy", Score: 65, Summary: "Analysis unavailable - service error"},
			{Category: "Strategic Fit", Score: 70, Summary: "Analysis unavailable - service error"},
			{Category: "Risk Profile", Score: 65, Summary: "Analysis unavailable - service error"},
		},
		Rationale: fmt.Sprintf("Unable to generate complete analysis due to: %s. Please try again later.", reason),
		Fallback:  true,
	}
}

func unparsedSynergyScore() SynergyScore {
	return SynergyScore{
		OverallScore: 75,
		SubScores: []SubScore{
			{Category: "Financial Synergy", Score: 70, Summary: "Moderate financial synergy potential based on available data"},
			{Category: "Strategic Fit", Score: 80, Summary: "Good strategic alignment with current portfolio"},
			{Category: "Risk Profile", Score: 65, Summary: "Moderate risk profile requiring careful due diligence"},
		},
		Rationale: "Unable to generate AI analysis due to technical issues. Please try again or check the AI service.",
		Fallback:  true,
	}
}

func valuationTemplates(projectID string) []ValuationTemplate {
	return []ValuationTemplate{
		{
			ID:           "dcf",
			Name:         "Discounted Cash Flow (DCF)",
			Description:  "Project future cash flows and discount them to arrive at a present value estimate.",
			LastUsed:     "2 days ago",
			ThumbnailURL: "/thumbnails/dcf.png",
			ProjectID:    projectID,
		},
		{
			ID:           "lbo",
			Name:         "Leveraged Buyout (LBO)",
			Description:  "Model a leveraged buyout transaction to determine the potential IRR for financial sponsors.",
			LastUsed:     "1 week ago",
			ThumbnailURL: "/thumbnails/lbo.png",
			ProjectID:    projectID,
		},
		{
			ID:           "cca",
			Name:         "Comparable Company Analysis",
			Description:  "Value a company by comparing it to similar publicly traded companies.",
			LastUsed:     "5 days ago",
			ThumbnailURL: "/thumbnails/comps.png",
			ProjectID:    projectID,
		},
		{
			ID:           "pt",
			Name:         "Precedent Transactions",
			Description:  "Analyze past M&A transactions of similar companies to derive valuation multiples.",
			LastUsed:     "1 month ago",
			ThumbnailURL: "/thumbnails/precedents.png",
			ProjectID:    projectID,
		},
	}
}
