package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when submitting to a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull is returned when the job queue is full
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrUnknownJobKind is returned for job kinds the executor cannot handle
	ErrUnknownJobKind = errors.New("unknown job kind")

	// ErrInvalidSchedule is returned for cron expressions the trigger cannot parse
	ErrInvalidSchedule = errors.New("invalid schedule expression")
)
