package store

import "time"

// Review is the persisted shape of one (review_id, ts) entry. Findings and
// recommendations are stored as JSON documents alongside the row.
type Review struct {
	ReviewID        string
	Timestamp       time.Time
	Status          string
	AWSAccountID    string
	Region          string
	Pillars         []string
	Findings        []Finding
	Recommendations []Recommendation
	Score           *float64
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Finding struct {
	ID          string `json:"id"`
	Pillar      string `json:"pillar"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	ResourceArn string `json:"resourceArn"`
	Service     string `json:"service"`
}

type Recommendation struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	Effort              string `json:"effort"`
	ImplementationGuide string `json:"implementationGuide"`
}
