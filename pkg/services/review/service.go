// Package review implements the review request service: validation,
// record creation, and job dispatch onto the queue.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/arch-atlas/pkg/adapters"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/de-tools/arch-atlas/pkg/queue"
	reviewstore "github.com/de-tools/arch-atlas/pkg/store/duckdb/review"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service interface {
	Create(ctx context.Context, accountID, region string, pillars []string) (*domain.Review, error)
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	List(ctx context.Context, limit int, pageToken string) ([]domain.Review, string, error)
}

type service struct {
	store         reviewstore.Store
	queue         queue.Client
	defaultRegion string
	now           func() time.Time
	newID         func() string
}

func NewService(store reviewstore.Store, q queue.Client, defaultRegion string) Service {
	return &service{
		store:         store,
		queue:         q,
		defaultRegion: defaultRegion,
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
}

// Create writes the PENDING record before enqueueing the job; the record
// write happens-before the enqueue. An enqueue failure is compensated by
// transitioning the fresh record to FAILED rather than leaving it PENDING
// forever.
func (s *service) Create(ctx context.Context, accountID, region string, pillars []string) (*domain.Review, error) {
	logger := zerolog.Ctx(ctx)

	if accountID == "" {
		return nil, &domain.ValidationError{Field: "awsAccountId", Reason: "is required"}
	}
	if region == "" {
		region = s.defaultRegion
	}
	if len(pillars) == 0 {
		pillars = []string{string(domain.PillarAll)}
	}

	ts := s.now().UTC()
	rec := domain.Review{
		ReviewID:     s.newID(),
		Timestamp:    ts,
		Status:       domain.ReviewStatusPending,
		AWSAccountID: accountID,
		Region:       region,
		Pillars:      adapters.MapStringsToPillarsDomain(pillars),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	if err := s.store.Create(ctx, adapters.MapReviewDomainToStore(rec)); err != nil {
		logger.Error().Err(err).Msg("failed to create review record")
		return nil, &domain.PersistenceError{Op: "create review", Err: err}
	}

	job := queue.Job{
		ReviewID:     rec.ReviewID,
		AWSAccountID: accountID,
		Region:       region,
		Pillars:      pillars,
		Timestamp:    ts.Format(time.RFC3339Nano),
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		logger.Error().Err(err).Str("review_id", rec.ReviewID).Msg("failed to enqueue review job")

		msg := err.Error()
		if updateErr := s.store.UpdateStatus(ctx, rec.ReviewID, string(domain.ReviewStatusFailed), &msg); updateErr != nil {
			logger.Error().Err(updateErr).Str("review_id", rec.ReviewID).Msg("failed to compensate enqueue failure")
		}

		return nil, &domain.DownstreamInvocationError{Target: "queue", Reason: err.Error()}
	}

	logger.Info().
		Str("review_id", rec.ReviewID).
		Str("account_id", accountID).
		Msg("review created")

	return &rec, nil
}

func (s *service) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	rec, err := s.store.GetLatest(ctx, reviewID)
	if errors.Is(err, reviewstore.ErrNotFound) {
		return nil, &domain.NotFoundError{ReviewID: reviewID}
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get review", Err: err}
	}
	return adapters.MapReviewStoreToDomain(rec), nil
}

func (s *service) List(ctx context.Context, limit int, pageToken string) ([]domain.Review, string, error) {
	records, nextToken, err := s.store.List(ctx, limit, pageToken)
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "list reviews", Err: err}
	}

	reviews := make([]domain.Review, 0, len(records))
	for i := range records {
		rec := records[i]
		reviews = append(reviews, *adapters.MapReviewStoreToDomain(&rec))
	}

	return reviews, nextToken, nil
}
