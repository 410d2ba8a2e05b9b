package schedule

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/noteforge/noteforge/internal/logger"
)

// runBatch executes one batch on the worker goroutine: select topics, run
// the per-topic pipeline, fold the result into the tracker and hand the
// summary to the completion callback.
func (s *Scheduler) runBatch(ctx context.Context, req batchRequest) BatchResult {
	res := BatchResult{
		ID:        req.id,
		StartedAt: time.Now(),
	}

	selected := selectTopics(req.topics, req.batchSize)
	s.logbuf.Appendf("batch started: %d of %d topics selected", len(selected), len(req.topics))
	s.logger.Info("batch started",
		logger.Field{Key: "batch_id", Value: req.id},
		logger.Field{Key: "selected", Value: len(selected)},
		logger.Field{Key: "pool", Value: len(req.topics)})

	for i, topic := range selected {
		outcome := s.processTopic(ctx, i+1, len(selected), topic)
		res.Outcomes = append(res.Outcomes, outcome)
		if outcome.Status == StatusSuccess {
			res.SuccessCount++
		} else {
			res.FailedCount++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", outcome.Topic, outcome.Err))
		}
	}

	res.FinishedAt = time.Now()

	s.tracker.Record(res)
	s.updateNextRun()

	if s.metrics != nil {
		s.metrics.RecordBatch(res, res.FinishedAt.Sub(res.StartedAt))
	}

	s.logbuf.Appendf("batch finished: %d succeeded, %d failed", res.SuccessCount, res.FailedCount)
	s.logger.Info("batch finished",
		logger.Field{Key: "batch_id", Value: req.id},
		logger.Field{Key: "success", Value: res.SuccessCount},
		logger.Field{Key: "failed", Value: res.FailedCount},
		logger.Field{Key: "duration", Value: res.FinishedAt.Sub(res.StartedAt).String()})

	if s.onComplete != nil {
		s.onComplete(res.Summary())
	}

	return res
}

// processTopic runs generate, persist, publish for one topic. Failures are
// isolated: generation and persistence errors mark the topic failed and the
// batch continues; a publish failure after persistence is logged only, since
// the artifact is already durable. A collaborator panic becomes a failed
// outcome.
func (s *Scheduler) processTopic(ctx context.Context, i, n int, topic string) (out TopicOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = TopicOutcome{
				Topic:     topic,
				Status:    StatusFailed,
				Timestamp: time.Now(),
				Err:       fmt.Sprintf("panic: %v", r),
			}
			s.logbuf.Appendf("[%d/%d] %s: panic recovered: %v", i, n, topic, r)
			s.logger.Error("topic pipeline panic recovered", fmt.Errorf("panic: %v", r),
				logger.Field{Key: "topic", Value: topic})
		}
	}()

	out = TopicOutcome{Topic: topic}

	s.logbuf.Appendf("[%d/%d] generating: %s", i, n, topic)
	content, err := s.gen.Generate(ctx, topic)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err.Error()
		out.Timestamp = time.Now()
		s.logbuf.Appendf("[%d/%d] generation failed: %v", i, n, err)
		s.logger.Error("generation failed", err, logger.Field{Key: "topic", Value: topic})
		return out
	}
	s.logbuf.Appendf("[%d/%d] generated %d bytes", i, n, len(content))

	path, err := s.store.Save(content, topic)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err.Error()
		out.Timestamp = time.Now()
		s.logbuf.Appendf("[%d/%d] save failed: %v", i, n, err)
		s.logger.Error("save failed", err, logger.Field{Key: "topic", Value: topic})
		return out
	}
	out.ArtifactPath = path
	out.Status = StatusSuccess
	out.Timestamp = time.Now()
	s.logbuf.Appendf("[%d/%d] saved: %s", i, n, path)

	// The note is durable from here on; publishing is best effort and its
	// failure never downgrades the outcome.
	if s.pub != nil {
		vars := map[string]string{
			"topic": topic,
			"count": strconv.Itoa(1),
		}
		if err := s.pub.CommitAndPush(ctx, []string{path}, vars); err != nil {
			s.logbuf.Appendf("[%d/%d] publish failed: %v", i, n, err)
			s.logger.Warn("publish failed",
				logger.Field{Key: "topic", Value: topic},
				logger.Field{Key: "path", Value: path},
				logger.Field{Key: "error", Value: err.Error()})
		} else {
			s.logbuf.Appendf("[%d/%d] published", i, n)
		}
	}

	return out
}
