// Package pipeline runs the analysis for one review: inspect resources,
// evaluate rules, consult the recommendation engine, and persist a
// terminal status.
package pipeline

import (
	"context"
	"fmt"

	"github.com/de-tools/arch-atlas/pkg/adapters"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/de-tools/arch-atlas/pkg/models/store"
	"github.com/de-tools/arch-atlas/pkg/services/advisor"
	"github.com/de-tools/arch-atlas/pkg/services/evaluator"
	"github.com/de-tools/arch-atlas/pkg/services/inspector"
	"github.com/de-tools/arch-atlas/pkg/store/duckdb/review"
	"github.com/rs/zerolog"
)

// ActionPerformReview tags the pipeline invocation payload.
const ActionPerformReview = "perform_well_architected_review"

// Payload is the pipeline invocation message.
type Payload struct {
	ReviewID     string   `json:"reviewId"`
	AWSAccountID string   `json:"awsAccountId"`
	Region       string   `json:"region"`
	Pillars      []string `json:"pillars"`
	Action       string   `json:"action"`
}

// Advisor is the reasoning step consulted after rule evaluation.
type Advisor interface {
	Review(ctx context.Context, snapshot domain.Snapshot, pillars []domain.Pillar) (advisor.Result, error)
}

type Pipeline struct {
	store     review.Store
	inspector inspector.Inspector
	advisor   Advisor
}

func NewPipeline(store review.Store, insp inspector.Inspector, adv Advisor) *Pipeline {
	return &Pipeline{
		store:     store,
		inspector: insp,
		advisor:   adv,
	}
}

// Run always terminates by writing COMPLETED or FAILED to the review
// store, with one exception: a failure in the final write itself is
// logged and returned to the caller instead of being converted.
func (p *Pipeline) Run(ctx context.Context, payload Payload) error {
	logger := zerolog.Ctx(ctx).With().Str("review_id", payload.ReviewID).Logger()
	ctx = logger.WithContext(ctx)

	if payload.Action != ActionPerformReview {
		return p.fail(ctx, payload.ReviewID, fmt.Errorf("unknown action: %s", payload.Action))
	}

	pillars := adapters.MapStringsToPillarsDomain(payload.Pillars)
	if len(pillars) == 0 {
		pillars = []domain.Pillar{domain.PillarAll}
	}

	snapshot := p.inspector.Inspect(ctx, payload.AWSAccountID, payload.Region)

	findings, recs := evaluator.Evaluate(snapshot, pillars)

	result, err := p.advisor.Review(ctx, snapshot, pillars)
	if err != nil {
		return p.fail(ctx, payload.ReviewID, err)
	}

	// Rule output first, then engine output; duplicates stay detectable
	// through deterministic finding ids.
	findings = append(findings, result.Findings...)
	recs = append(recs, result.Recommendations...)

	storeFindings := make([]store.Finding, 0, len(findings))
	for _, f := range findings {
		storeFindings = append(storeFindings, store.Finding(adapters.MapFindingDomainToApi(f)))
	}
	storeRecs := make([]store.Recommendation, 0, len(recs))
	for _, r := range recs {
		storeRecs = append(storeRecs, store.Recommendation(adapters.MapRecommendationDomainToApi(r)))
	}

	if err := p.store.SaveResults(ctx, payload.ReviewID, storeFindings, storeRecs, result.Score); err != nil {
		logger.Error().Err(err).Msg("failed to save review results")
		return &domain.PersistenceError{Op: "save results", Err: err}
	}

	logger.Info().
		Int("findings", len(findings)).
		Int("recommendations", len(recs)).
		Float64("score", result.Score).
		Msg("review completed")

	return nil
}

// fail records the terminal FAILED state. A store failure here is the one
// case that propagates instead of converting.
func (p *Pipeline) fail(ctx context.Context, reviewID string, cause error) error {
	logger := zerolog.Ctx(ctx)
	logger.Error().Err(cause).Msg("review failed")

	msg := cause.Error()
	if err := p.store.UpdateStatus(ctx, reviewID, string(domain.ReviewStatusFailed), &msg); err != nil {
		logger.Error().Err(err).Msg("failed to record FAILED status")
		return &domain.PersistenceError{Op: "update status", Err: err}
	}

	return nil
}
