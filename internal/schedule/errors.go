package schedule

import "errors"

var (
	// ErrConfiguration indicates invalid trigger parameters at setup time.
	// The job is not created and the previous one, if any, is untouched.
	ErrConfiguration = errors.New("invalid schedule configuration")

	// ErrNoActiveJob is returned by operations that need a configured job.
	ErrNoActiveJob = errors.New("no active job")

	// ErrNotStarted is returned when a batch is requested before Start.
	ErrNotStarted = errors.New("scheduler not started")

	// ErrBatchInFlight is returned when a manual run is rejected because a
	// batch is already running and another is queued behind it.
	ErrBatchInFlight = errors.New("a batch is already in flight")
)
