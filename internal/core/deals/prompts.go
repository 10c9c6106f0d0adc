package deals

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"synergyai.app/internal/ports"
)

const contextSeparator = "\n\n---\n\n"

const (
	narrativeQuery = "Summarize the overall strategic initiatives, management outlook, and key identified risks from across all documents."
	riskQuery      = "Find all text related to risks, liabilities, litigation, dependencies, competition, and challenges."
	summaryQuery   = "Summarize the key findings, financial highlights, and open diligence items across the deal documents."
)

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

func joinContext(chunks []ports.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, contextSeparator)
}

func chunkSources(chunks []ports.Chunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Source == "" {
			continue
		}
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		sources = append(sources, c.Source)
	}
	return sources
}

// extractJSONObject returns the outermost {...} span of text
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeModelJSON parses an object out of free-form model output. Models wrap
// JSON in prose or markdown fences and leave trailing commas, so each of those
// is tried in turn.
func decodeModelJSON(text string, target interface{}) error {
	trimmed := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}

	object, ok := extractJSONObject(trimmed)
	if !ok {
		return fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(object), target); err == nil {
		return nil
	}

	cleaned := trailingComma.ReplaceAllString(object, "$1")
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

func narrativePrompt(dealCount int, context string) string {
	briefing := fmt.Sprintf("Total Active Deals: %d\n\nQualitative Insights from Documents:\n%s", dealCount, context)
	return "Instruction: You are a senior M&A analyst. Based on the following context, write a detailed, insightful, " +
		"multi-paragraph executive summary of the current deal pipeline. Use markdown bolding (**word**) to highlight " +
		"all key metrics and important phrases.\n\nContext: " + briefing + "\n\nResponse:"
}

func riskPrompt(companyName, context string) string {
	return fmt.Sprintf(`Instruction: You are a senior M&A risk analyst. Your task is to create a complete risk profile for the acquisition of '%s'. Based ONLY on the provided context from their VDR, generate a JSON object with the following structure: {"overallScore": <0-100>, "topRisks": [{"risk": "<Identified Risk>", "mitigation": "<Suggested Mitigation>"}], "detailedBreakdown": [{"category": "<Category>", "score": <0-100>, "insights": ["<Insight 1>"]}]}.

Context from VDR Documents:
%s

Response (JSON object only):
`, companyName, context)
}

func synergyPrompt(projectName, targetName, target, context string) string {
	return fmt.Sprintf(`Instruction: You are the head of a top-tier M&A investment committee. Your task is to conduct a final Strategic Fit Audit for the potential acquisition of %s. Based ONLY on the provided context, generate a JSON object with the following structure: {"overallScore": <0-100>, "subScores": [{"category": "<Category>", "score": <0-100>, "summary": "<One-sentence summary>"}], "rationale": "<A detailed, multi-paragraph analysis>"}.

The categories for subScores must be exactly: 'Financial Synergy', 'Strategic Fit', and 'Risk Profile'. The rationale should be a professional, data-driven narrative explaining your scores.

Context from Database and VDR Documents:
Project Name: %s
Target Company: %s
Qualitative Insights from VDR:
%s

Response (JSON object only):
`, targetName, projectName, target, context)
}

func summaryPrompt(documentNames []string, context string) string {
	return fmt.Sprintf("Instruction: You are a senior M&A analyst preparing a diligence briefing. Using only the context below, "+
		"write a concise summary of the data room covering financial highlights, key risks and open questions.\n\n"+
		"Documents in data room: %s\n\nContext:\n%s\n\nResponse:", strings.Join(documentNames, ", "), context)
}

func industryQuery(sector string) string {
	return fmt.Sprintf("Describe market trends, competitive dynamics, regulation and consolidation activity in the %s sector.", sector)
}

func industryPrompt(companyName, sector, context string) string {
	return fmt.Sprintf("Instruction: You are an industry analyst advising on the acquisition of %s in the %s sector. "+
		"Using the context below, describe the industry outlook, key competitors, regulatory considerations and "+
		"consolidation trends relevant to this deal.\n\nContext:\n%s\n\nResponse:", companyName, sector, context)
}
