package schedule

import (
	"time"

	"github.com/robfig/cron/v3"
)

// JobState is the lifecycle state of the scheduled job.
type JobState string

const (
	// JobScheduled means the job's trigger is armed.
	JobScheduled JobState = "scheduled"
	// JobPaused means the job keeps its configuration but does not fire.
	JobPaused JobState = "paused"
)

// Job is the single scheduled generation activity. The scheduler holds at
// most one; creating a new job replaces the previous one.
type Job struct {
	ID        string
	Trigger   Trigger
	BatchSize int
	Topics    []string
	State     JobState

	entryID cron.EntryID
	sched   cron.Schedule
}

// NextFire returns the job's next fire time after now, or nil while paused.
func (j *Job) NextFire(now time.Time) *time.Time {
	if j == nil || j.State != JobScheduled || j.sched == nil {
		return nil
	}
	next := j.sched.Next(now)
	return &next
}

// Status is a snapshot of the outcome of processing one topic.
type Status string

const (
	// StatusSuccess means the note was generated and persisted. A publish
	// failure after persistence does not downgrade the status.
	StatusSuccess Status = "success"
	// StatusFailed means generation or persistence failed.
	StatusFailed Status = "failed"
)

// TopicOutcome records what happened to a single topic within a batch.
type TopicOutcome struct {
	Topic        string
	Status       Status
	Timestamp    time.Time
	Err          string // set iff Status is StatusFailed
	ArtifactPath string // set iff the note was persisted
}

// BatchResult aggregates one pipeline run. Immutable once returned.
type BatchResult struct {
	ID           string
	Outcomes     []TopicOutcome
	StartedAt    time.Time
	FinishedAt   time.Time
	SuccessCount int
	FailedCount  int
	Errors       []string
}

// Summary is the compact form handed to the completion callback.
type Summary struct {
	BatchID  string
	Total    int
	Success  int
	Failed   int
	Errors   []string
	Duration time.Duration
}

// Summary converts the batch result into its completion-callback form.
func (r BatchResult) Summary() Summary {
	return Summary{
		BatchID:  r.ID,
		Total:    len(r.Outcomes),
		Success:  r.SuccessCount,
		Failed:   r.FailedCount,
		Errors:   r.Errors,
		Duration: r.FinishedAt.Sub(r.StartedAt),
	}
}

// Stats is the aggregate execution view exposed to the presentation layer.
// TotalRuns counts batches; SuccessCount and FailedCount count topics.
type Stats struct {
	Enabled      bool
	TotalRuns    int
	SuccessCount int
	FailedCount  int
	LastRunAt    *time.Time
	NextRunAt    *time.Time
	TopicsCount  int
}
