// Package worker consumes queued review jobs: it marks reviews
// IN_PROGRESS and hands them to the analysis pipeline, reporting back
// exactly the deliveries that failed.
package worker

import (
	"context"
	"errors"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/de-tools/arch-atlas/pkg/queue"
	"github.com/de-tools/arch-atlas/pkg/services/pipeline"
	"github.com/de-tools/arch-atlas/pkg/store/duckdb/review"
	"github.com/rs/zerolog"
)

type Processor struct {
	store      review.Store
	dispatcher pipeline.Dispatcher
}

func NewProcessor(store review.Store, dispatcher pipeline.Dispatcher) *Processor {
	return &Processor{
		store:      store,
		dispatcher: dispatcher,
	}
}

// ProcessBatch handles each message in isolation and returns the ids of
// the messages that failed; the queue redelivers only those. A message is
// done once its pipeline dispatch is acknowledged, not once the pipeline
// finishes.
func (p *Processor) ProcessBatch(ctx context.Context, msgs []queue.Message) []string {
	var failed []string
	for _, msg := range msgs {
		if err := p.processMessage(ctx, msg); err != nil {
			zerolog.Ctx(ctx).Error().
				Err(err).
				Str("message_id", msg.MessageID).
				Str("review_id", msg.Job.ReviewID).
				Msg("failed to process review job")
			failed = append(failed, msg.MessageID)
		}
	}
	return failed
}

func (p *Processor) processMessage(ctx context.Context, msg queue.Message) error {
	logger := zerolog.Ctx(ctx).With().
		Str("review_id", msg.Job.ReviewID).
		Str("message_id", msg.MessageID).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("processing review job")

	// Idempotent under redelivery: re-marking an IN_PROGRESS or terminal
	// record just overwrites status and timestamp.
	err := p.store.UpdateStatus(ctx, msg.Job.ReviewID, string(domain.ReviewStatusInProgress), nil)
	switch {
	case errors.Is(err, review.ErrNotFound):
		// Orphaned job; the record is the source of truth, so this is not
		// fatal to the batch.
		logger.Error().Msg("review not found for status update")
	case err != nil:
		p.markFailed(ctx, msg.Job.ReviewID, err.Error())
		return &domain.PersistenceError{Op: "update status", Err: err}
	}

	payload := pipeline.Payload{
		ReviewID:     msg.Job.ReviewID,
		AWSAccountID: msg.Job.AWSAccountID,
		Region:       msg.Job.Region,
		Pillars:      msg.Job.Pillars,
		Action:       pipeline.ActionPerformReview,
	}

	ack, err := p.dispatcher.Dispatch(ctx, payload)
	if err != nil {
		p.markFailed(ctx, msg.Job.ReviewID, err.Error())
		return &domain.DownstreamInvocationError{Target: "pipeline", Reason: err.Error()}
	}
	if !ack.Accepted {
		invErr := &domain.DownstreamInvocationError{Target: "pipeline", Reason: ack.Reason}
		p.markFailed(ctx, msg.Job.ReviewID, invErr.Error())
		return invErr
	}

	logger.Info().Msg("review dispatched to analysis pipeline")
	return nil
}

// markFailed is best-effort: the job is already being reported for
// redelivery, so a store failure here only gets logged.
func (p *Processor) markFailed(ctx context.Context, reviewID, msg string) {
	if err := p.store.UpdateStatus(ctx, reviewID, string(domain.ReviewStatusFailed), &msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to record FAILED status")
	}
}
