package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Ack is the dispatch acknowledgment. Accepted means the pipeline
// confirmed it started; it says nothing about completion.
type Ack struct {
	Accepted bool
	Reason   string
}

// Dispatcher hands a payload to the analysis pipeline without waiting for
// it to finish. This is a one-way send: callers get an acknowledgment, not
// a result.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload Payload) (Ack, error)
}

// GoDispatcher runs the pipeline on a detached goroutine. The run outlives
// the dispatching call and its context; two dispatches for one reviewId
// may race, with the last store write winning.
type GoDispatcher struct {
	pipeline *Pipeline
	wg       sync.WaitGroup
}

func NewGoDispatcher(p *Pipeline) *GoDispatcher {
	return &GoDispatcher{pipeline: p}
}

func (d *GoDispatcher) Dispatch(ctx context.Context, payload Payload) (Ack, error) {
	// Detach cancellation but keep context values (request logger).
	runCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.pipeline.Run(runCtx, payload); err != nil {
			zerolog.Ctx(runCtx).Error().
				Err(err).
				Str("review_id", payload.ReviewID).
				Msg("pipeline run ended with unrecorded failure")
		}
	}()

	return Ack{Accepted: true}, nil
}

// Wait blocks until all dispatched runs have finished. Used for graceful
// shutdown draining.
func (d *GoDispatcher) Wait() {
	d.wg.Wait()
}
