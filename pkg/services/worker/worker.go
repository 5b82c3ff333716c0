package worker

import (
	"context"
	"time"

	"github.com/de-tools/arch-atlas/pkg/queue"
	"github.com/rs/zerolog"
)

type Config struct {
	BatchSize    int
	PollInterval time.Duration
}

// Worker is the long-running consume loop: receive a batch, process it,
// ack the succeeded deliveries and requeue the failed ones.
type Worker struct {
	queue     queue.Client
	processor *Processor
	config    Config
}

func NewWorker(q queue.Client, processor *Processor, config Config) *Worker {
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	return &Worker{
		queue:     q,
		processor: processor,
		config:    config,
	}
}

// Run consumes until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Int("batch_size", w.config.BatchSize).
		Dur("poll_interval", w.config.PollInterval).
		Msg("worker started")

	// A previous consumer may have crashed mid-batch; its deliveries are
	// still parked in the processing list.
	if reclaimed, err := w.queue.Reclaim(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to reclaim in-flight messages")
	} else if reclaimed > 0 {
		logger.Info().Int("count", reclaimed).Msg("reclaimed in-flight messages")
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("worker stopped")
			return ctx.Err()
		default:
		}

		msgs, err := w.queue.Receive(ctx, w.config.BatchSize)
		if err != nil {
			logger.Error().Err(err).Msg("failed to receive messages")
			w.sleep(ctx)
			continue
		}

		if len(msgs) == 0 {
			w.sleep(ctx)
			continue
		}

		failedIDs := w.processor.ProcessBatch(ctx, msgs)
		logger.Info().
			Int("received", len(msgs)).
			Int("failed", len(failedIDs)).
			Msg("batch processed")

		done, failed := splitByFailure(msgs, failedIDs)
		if err := w.queue.Ack(ctx, done); err != nil {
			logger.Error().Err(err).Msg("failed to ack messages")
		}

		if len(failed) == 0 {
			continue
		}

		if err := w.queue.Requeue(ctx, failed); err != nil {
			logger.Error().Err(err).Msg("failed to requeue messages")
		}
	}
}

func (w *Worker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.config.PollInterval):
	}
}

func splitByFailure(msgs []queue.Message, failedIDs []string) (done, failed []queue.Message) {
	ids := make(map[string]struct{}, len(failedIDs))
	for _, id := range failedIDs {
		ids[id] = struct{}{}
	}

	for _, msg := range msgs {
		if _, ok := ids[msg.MessageID]; ok {
			failed = append(failed, msg)
		} else {
			done = append(done, msg)
		}
	}
	return done, failed
}
