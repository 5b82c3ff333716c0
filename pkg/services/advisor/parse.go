package advisor

import (
	"encoding/json"
	"strings"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

// DefaultScore is the neutral aggregate used when the response carries no
// usable score.
const DefaultScore = 75.0

// Result is the parsed engine output: either structured findings or the
// raw unparseable text retained for audit alongside empty results.
type Result struct {
	Findings        []domain.Finding
	Recommendations []domain.Recommendation
	Score           float64

	// Structured reports whether the response parsed as the expected
	// schema. An empty response is not structured.
	Structured bool

	// Raw holds the original response when it could not be parsed as the
	// structured schema. Empty for structured results.
	Raw string
}

type structuredResponse struct {
	Findings        []structuredFinding        `json:"findings"`
	Recommendations []structuredRecommendation `json:"recommendations"`
	Score           *float64                   `json:"score"`
}

type structuredFinding struct {
	ID          string `json:"id"`
	Pillar      string `json:"pillar"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	ResourceArn string `json:"resourceArn"`
	Service     string `json:"service"`
}

type structuredRecommendation struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	Effort              string `json:"effort"`
	ImplementationGuide string `json:"implementationGuide"`
}

// Parse interprets a response defensively. Anything that does not
// unmarshal as the structured schema falls back to empty results with the
// default score; the fallback is never an error.
func Parse(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return fallback(raw)
	}

	var resp structuredResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return fallback(raw)
	}

	result := Result{Score: DefaultScore, Structured: true}
	if resp.Score != nil {
		result.Score = *resp.Score
	}
	for _, f := range resp.Findings {
		result.Findings = append(result.Findings, domain.Finding{
			ID:          f.ID,
			Pillar:      f.Pillar,
			Title:       f.Title,
			Description: f.Description,
			Severity:    domain.Severity(f.Severity),
			ResourceArn: f.ResourceArn,
			Service:     f.Service,
		})
	}
	for _, r := range resp.Recommendations {
		result.Recommendations = append(result.Recommendations, domain.Recommendation(r))
	}

	return result
}

func fallback(raw string) Result {
	return Result{
		Score: DefaultScore,
		Raw:   raw,
	}
}
