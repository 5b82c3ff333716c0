package domain

import (
	"fmt"
	"time"
)

type ReviewStatus string

const (
	ReviewStatusPending    ReviewStatus = "PENDING"
	ReviewStatusInProgress ReviewStatus = "IN_PROGRESS"
	ReviewStatusCompleted  ReviewStatus = "COMPLETED"
	ReviewStatusFailed     ReviewStatus = "FAILED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusCompleted || s == ReviewStatusFailed
}

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type Pillar string

const (
	// PillarAll is a sentinel that enables every pillar's rule set.
	PillarAll         Pillar = "all"
	PillarSecurity    Pillar = "security"
	PillarReliability Pillar = "reliability"
	PillarPerformance Pillar = "performance"
	PillarCost        Pillar = "cost"
)

// Pillars in their fixed evaluation order.
func EvaluationOrder() []Pillar {
	return []Pillar{PillarSecurity, PillarReliability, PillarPerformance, PillarCost}
}

// Review is the aggregate root of one Well-Architected evaluation.
// (ReviewID, Timestamp) form the composite identity; status mutations
// always target the latest Timestamp for a ReviewID.
type Review struct {
	ReviewID        string
	Timestamp       time.Time
	Status          ReviewStatus
	AWSAccountID    string
	Region          string
	Pillars         []Pillar
	Findings        []Finding
	Recommendations []Recommendation
	Score           *float64
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Finding struct {
	ID          string
	Pillar      string
	Title       string
	Description string
	Severity    Severity
	ResourceArn string
	Service     string
}

type Recommendation struct {
	ID                  string
	Title               string
	Description         string
	Priority            string
	Effort              string
	ImplementationGuide string
}

// FindingID derives a stable finding identifier from the rule and the
// affected resource so re-runs produce the same id for the same issue.
func FindingID(rule, resource string) string {
	return fmt.Sprintf("%s-%s", rule, resource)
}

// Job is the queued delivery vehicle for one review. It carries no status;
// lifecycle state lives only in the review store.
type Job struct {
	ReviewID     string
	AWSAccountID string
	Region       string
	Pillars      []Pillar
	Timestamp    time.Time
}
