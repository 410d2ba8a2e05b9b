package schedule

import (
	"sync"
	"time"
)

// historyCap bounds the per-topic outcome history. Oldest entries are
// evicted first once the cap is exceeded.
const historyCap = 100

// Tracker accumulates execution stats and a bounded outcome history.
// All reads return copies so the presentation layer can poll safely while
// the pipeline worker mutates.
type Tracker struct {
	mu           sync.Mutex
	totalRuns    int
	successCount int
	failedCount  int
	lastRunAt    *time.Time
	nextRunAt    *time.Time
	history      []TopicOutcome
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record folds one batch result into the stats and history. TotalRuns
// increments once per batch; success/failed counters accumulate per topic.
func (t *Tracker) Record(res BatchResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalRuns++
	t.successCount += res.SuccessCount
	t.failedCount += res.FailedCount

	finished := res.FinishedAt
	t.lastRunAt = &finished

	t.history = append(t.history, res.Outcomes...)
	if excess := len(t.history) - historyCap; excess > 0 {
		t.history = append(t.history[:0:0], t.history[excess:]...)
	}
}

// SetNextRun records the next scheduled fire time, or clears it with nil.
func (t *Tracker) SetNextRun(next *time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextRunAt = next
}

// Counters returns the accumulated counters and run timestamps.
func (t *Tracker) Counters() (totalRuns, success, failed int, lastRun, nextRun *time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalRuns, t.successCount, t.failedCount, copyTime(t.lastRunAt), copyTime(t.nextRunAt)
}

// History returns up to limit outcomes, newest first. A non-positive limit
// returns the whole retained history.
func (t *Tracker) History(limit int) []TopicOutcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.history)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]TopicOutcome, limit)
	for i := 0; i < limit; i++ {
		out[i] = t.history[n-1-i]
	}
	return out
}

// Len returns the number of retained history entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
