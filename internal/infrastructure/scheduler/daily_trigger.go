package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DailyTriggerConfig holds the trigger's firing time and poll interval.
type DailyTriggerConfig struct {
	Hour          int
	Minute        int
	CheckInterval time.Duration
	MaxRetries    int
}

// ParseDailySchedule extracts the firing time from a five-field cron
// expression of the form "M H * * *". Only daily schedules are supported.
func ParseDailySchedule(expr string) (hour, minute int, err error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return 0, 0, fmt.Errorf("%w: expected 5 fields, got %d", ErrInvalidSchedule, len(fields))
	}
	for _, f := range fields[2:] {
		if f != "*" {
			return 0, 0, fmt.Errorf("%w: only daily schedules (\"M H * * *\") are supported", ErrInvalidSchedule)
		}
	}
	minute, err = strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute %q", ErrInvalidSchedule, fields[0])
	}
	hour, err = strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour %q", ErrInvalidSchedule, fields[1])
	}
	return hour, minute, nil
}

// DailyTrigger submits a fixed set of jobs once per day at the configured
// time. The overdue sweep and low stock scan run on this trigger.
type DailyTrigger struct {
	config    DailyTriggerConfig
	scheduler *Scheduler
	kinds     []JobKind
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a trigger that submits one job per kind each day.
func NewDailyTrigger(config DailyTriggerConfig, sched *Scheduler, kinds []JobKind, logger *zap.Logger) *DailyTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &DailyTrigger{
		config:    config,
		scheduler: sched,
		kinds:     kinds,
		logger:    logger,
	}
}

// Start launches the polling loop.
func (t *DailyTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Daily trigger started",
		zap.Int("hour", t.config.Hour),
		zap.Int("minute", t.config.Minute),
		zap.Duration("check_interval", t.config.CheckInterval),
	)
	return nil
}

// Stop halts the polling loop, honoring the context deadline.
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndFire(time.Now())
		}
	}
}

func (t *DailyTrigger) checkAndFire(now time.Time) {
	currentDate := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == currentDate
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	// Fire once the scheduled time for the day has passed. Checking the
	// wall clock against a window instead of an exact minute keeps slow
	// poll intervals and missed ticks from skipping the whole day.
	scheduledAt := time.Date(now.Year(), now.Month(), now.Day(),
		t.config.Hour, t.config.Minute, 0, 0, now.Location())
	if now.Before(scheduledAt) {
		return
	}

	t.mu.Lock()
	t.lastRunDate = currentDate
	t.mu.Unlock()

	t.Fire()
}

// Fire submits the trigger's jobs immediately. Exposed so operators can
// run the sweep on demand.
func (t *DailyTrigger) Fire() {
	for _, kind := range t.kinds {
		job := NewJob(kind, t.config.MaxRetries)
		if err := t.scheduler.SubmitJob(job); err != nil {
			t.logger.Error("Failed to submit scheduled job",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			continue
		}
		t.logger.Info("Scheduled job submitted",
			zap.String("kind", string(kind)),
			zap.String("job_id", job.ID.String()),
		)
	}
}
