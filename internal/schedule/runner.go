package schedule

import (
	"context"
	"sync"

	"github.com/noteforge/noteforge/internal/logger"
)

// batchRequest asks the runner to execute one batch. reply, when non-nil,
// receives the result so a caller can wait synchronously.
type batchRequest struct {
	id        string
	batchSize int
	topics    []string
	reply     chan BatchResult
}

// runner serializes batch execution on a single worker goroutine: a
// timer-driven fire and a manual run can never execute concurrently. One
// request may queue behind the running batch; further submissions are
// rejected.
type runner struct {
	requests chan batchRequest
	run      func(context.Context, batchRequest) BatchResult
	logger   *logger.Logger
	wg       sync.WaitGroup
}

func newRunner(run func(context.Context, batchRequest) BatchResult, log *logger.Logger) *runner {
	return &runner{
		requests: make(chan batchRequest, 1),
		run:      run,
		logger:   log,
	}
}

// start launches the worker goroutine. It drains until ctx is cancelled.
func (r *runner) start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case req := <-r.requests:
				res := r.run(ctx, req)
				if req.reply != nil {
					req.reply <- res
				}
			}
		}
	}()
}

// trySubmit queues a request without blocking. It returns false when the
// queue is full, meaning a batch is running and another is already waiting.
func (r *runner) trySubmit(req batchRequest) bool {
	select {
	case r.requests <- req:
		r.logger.Debug("batch queued",
			logger.Field{Key: "batch_id", Value: req.id},
			logger.Field{Key: "batch_size", Value: req.batchSize})
		return true
	default:
		return false
	}
}

// wait blocks until the worker goroutine has exited.
func (r *runner) wait() {
	r.wg.Wait()
}
