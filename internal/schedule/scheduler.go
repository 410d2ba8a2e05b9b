// Package schedule owns the scheduling and execution pipeline: a single
// recurring job (daily anchor or fixed interval), batch topic selection, the
// per-topic generate, persist, publish pipeline with isolated failures, and
// the bounded stats, history and log accounting.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/noteforge/noteforge/internal/logger"
)

// Generator turns a topic into note content.
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// ArtifactStore persists note content and returns the file path.
type ArtifactStore interface {
	Save(content, topic string) (string, error)
}

// Publisher synchronizes persisted artifacts to a remote repository.
// A nil Publisher disables publishing.
type Publisher interface {
	CommitAndPush(ctx context.Context, paths []string, vars map[string]string) error
}

// CompletionFunc is invoked once per batch with the aggregated outcome.
type CompletionFunc func(Summary)

// Scheduler owns the single job slot and drives the execution pipeline.
// All collaborators are injected; there is no process-wide state.
type Scheduler struct {
	cron       *cron.Cron
	logger     *logger.Logger
	gen        Generator
	store      ArtifactStore
	pub        Publisher
	onComplete CompletionFunc

	tracker *Tracker
	logbuf  *LogBuffer
	runner  *runner
	metrics *Metrics

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	job     *Job
	mu      sync.RWMutex
}

// NewScheduler creates a scheduler with no job armed. onComplete may be nil.
func NewScheduler(log *logger.Logger, gen Generator, store ArtifactStore, pub Publisher, onComplete CompletionFunc) *Scheduler {
	s := &Scheduler{
		cron:       cron.New(),
		logger:     log,
		gen:        gen,
		store:      store,
		pub:        pub,
		onComplete: onComplete,
		tracker:    NewTracker(),
		logbuf:     NewLogBuffer(),
	}
	s.runner = newRunner(s.runBatch, log)
	return s
}

// SetMetrics attaches Prometheus metrics. Must be called before Start.
func (s *Scheduler) SetMetrics(m *Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
}

// Start starts the trigger clock and the batch worker. It returns
// immediately; the scheduler runs until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	s.cron.Start()
	s.runner.start(s.ctx)
	s.logger.Info("scheduler started")

	go func() {
		<-s.ctx.Done()
		s.cron.Stop()
		s.logger.Info("scheduler stopped")
	}()

	return nil
}

// Stop stops the trigger clock and waits for an in-flight batch to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("scheduler not started")
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.runner.wait()
	return nil
}

// IsStarted reports whether Start has been called without a matching Stop.
func (s *Scheduler) IsStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// SetupDaily arms a job firing every day at the given "HH:MM" anchor: today
// if the anchor is still in the future, otherwise tomorrow. Any existing job
// is replaced atomically; on configuration errors nothing changes.
func (s *Scheduler) SetupDaily(anchor string, batchSize int, topics []string) error {
	return s.setup(Daily(anchor), batchSize, topics)
}

// SetupInterval arms a job firing at the given period (sub-hour resolution
// allowed, minimum one second). Same replace semantics as SetupDaily.
func (s *Scheduler) SetupInterval(period time.Duration, batchSize int, topics []string) error {
	return s.setup(Interval(period), batchSize, topics)
}

func (s *Scheduler) setup(trigger Trigger, batchSize int, topics []string) error {
	if batchSize < 1 {
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrConfiguration, batchSize)
	}

	sched, err := trigger.schedule()
	if err != nil {
		return err
	}

	job := &Job{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		BatchSize: batchSize,
		Topics:    append([]string(nil), topics...),
		State:     JobScheduled,
		sched:     sched,
	}

	s.mu.Lock()
	s.removeLocked()
	job.entryID = s.cron.Schedule(sched, cron.FuncJob(s.fire))
	s.job = job
	s.mu.Unlock()

	next := sched.Next(time.Now())
	s.tracker.SetNextRun(&next)

	s.logbuf.Appendf("job armed: %s, batch size %d, %d topics", trigger, batchSize, len(topics))
	s.logger.Info("job armed",
		logger.Field{Key: "job_id", Value: job.ID},
		logger.Field{Key: "trigger", Value: trigger.String()},
		logger.Field{Key: "batch_size", Value: batchSize},
		logger.Field{Key: "topics", Value: len(topics)},
		logger.Field{Key: "next_run", Value: next})

	return nil
}

// Pause suspends firing without discarding the job's configuration or the
// accumulated stats.
func (s *Scheduler) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return ErrNoActiveJob
	}
	if s.job.State == JobPaused {
		return nil
	}

	s.cron.Remove(s.job.entryID)
	s.job.State = JobPaused
	s.tracker.SetNextRun(nil)

	s.logbuf.Appendf("job paused")
	s.logger.Info("job paused", logger.Field{Key: "job_id", Value: s.job.ID})
	return nil
}

// Resume re-arms a paused job from its stored trigger.
func (s *Scheduler) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return ErrNoActiveJob
	}
	if s.job.State == JobScheduled {
		return nil
	}

	s.job.entryID = s.cron.Schedule(s.job.sched, cron.FuncJob(s.fire))
	s.job.State = JobScheduled

	next := s.job.sched.Next(time.Now())
	s.tracker.SetNextRun(&next)

	s.logbuf.Appendf("job resumed")
	s.logger.Info("job resumed",
		logger.Field{Key: "job_id", Value: s.job.ID},
		logger.Field{Key: "next_run", Value: next})
	return nil
}

// Remove cancels the current job and clears the next fire time. Stats,
// history and the log buffer are kept.
func (s *Scheduler) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return ErrNoActiveJob
	}

	s.removeLocked()
	s.tracker.SetNextRun(nil)
	s.logbuf.Appendf("job removed")
	return nil
}

func (s *Scheduler) removeLocked() {
	if s.job == nil {
		return
	}
	if s.job.State == JobScheduled {
		s.cron.Remove(s.job.entryID)
	}
	s.logger.Info("job removed", logger.Field{Key: "job_id", Value: s.job.ID})
	s.job = nil
}

// fire runs on the cron goroutine when the trigger fires. The batch itself
// is handed to the worker so the clock is never blocked; a fire arriving
// while the queue is full is dropped and logged.
func (s *Scheduler) fire() {
	s.mu.RLock()
	job := s.job
	s.mu.RUnlock()

	if job == nil || job.State != JobScheduled {
		return
	}

	req := batchRequest{
		id:        uuid.NewString(),
		batchSize: job.BatchSize,
		topics:    job.Topics,
	}
	if !s.runner.trySubmit(req) {
		s.logbuf.Appendf("trigger fire skipped: a batch is already in flight")
		s.logger.Warn("trigger fire skipped",
			logger.Field{Key: "job_id", Value: job.ID})
		if s.metrics != nil {
			s.metrics.RecordRejectedFire()
		}
	}
}

// ExecuteNow triggers one batch using the current job's topic pool,
// independent of the timer, and waits for the result. A batchSize of zero
// uses the job's configured size.
func (s *Scheduler) ExecuteNow(ctx context.Context, batchSize int) (BatchResult, error) {
	s.mu.RLock()
	job := s.job
	s.mu.RUnlock()

	if job == nil {
		return BatchResult{}, ErrNoActiveJob
	}
	if batchSize <= 0 {
		batchSize = job.BatchSize
	}
	return s.ExecuteNowWith(ctx, batchSize, job.Topics)
}

// ExecuteNowWith triggers one batch over an explicit topic pool. It shares
// the worker with timer-driven fires, so a manual run never overlaps one.
func (s *Scheduler) ExecuteNowWith(ctx context.Context, batchSize int, topics []string) (BatchResult, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	if !started {
		return BatchResult{}, ErrNotStarted
	}
	if batchSize < 1 {
		return BatchResult{}, fmt.Errorf("%w: batch size must be at least 1, got %d", ErrConfiguration, batchSize)
	}

	req := batchRequest{
		id:        uuid.NewString(),
		batchSize: batchSize,
		topics:    append([]string(nil), topics...),
		reply:     make(chan BatchResult, 1),
	}
	if !s.runner.trySubmit(req) {
		return BatchResult{}, ErrBatchInFlight
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return BatchResult{}, ctx.Err()
	}
}

// Stats returns a snapshot of the aggregate execution view.
func (s *Scheduler) Stats() Stats {
	totalRuns, success, failed, lastRun, nextRun := s.tracker.Counters()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalRuns:    totalRuns,
		SuccessCount: success,
		FailedCount:  failed,
		LastRunAt:    lastRun,
		NextRunAt:    nextRun,
	}
	if s.job != nil {
		stats.Enabled = s.job.State == JobScheduled
		stats.TopicsCount = len(s.job.Topics)
	}
	return stats
}

// History returns the most recent limit outcomes, newest first.
func (s *Scheduler) History(limit int) []TopicOutcome {
	return s.tracker.History(limit)
}

// LogLines returns the diagnostic trace, oldest first.
func (s *Scheduler) LogLines() []string {
	return s.logbuf.Lines()
}

// Job returns a copy of the current job, or nil when none is configured.
func (s *Scheduler) Job() *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.job == nil {
		return nil
	}
	j := *s.job
	j.Topics = append([]string(nil), s.job.Topics...)
	return &j
}

// updateNextRun refreshes the tracker's next fire time from the armed job.
func (s *Scheduler) updateNextRun() {
	s.mu.RLock()
	job := s.job
	s.mu.RUnlock()

	s.tracker.SetNextRun(job.NextFire(time.Now()))
}
