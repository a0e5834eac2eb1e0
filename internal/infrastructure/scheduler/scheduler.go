// Package scheduler runs recurring background jobs such as the training
// overdue sweep.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobKind identifies what a job does.
type JobKind string

const (
	// JobKindOverdueSweep marks training assignments past their due date.
	JobKindOverdueSweep JobKind = "TRAINING_OVERDUE_SWEEP"

	// JobKindLowStockScan reports asset batches running low on stock.
	JobKindLowStockScan JobKind = "ASSET_LOW_STOCK_SCAN"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is one unit of background work.
type Job struct {
	ID          uuid.UUID
	Kind        JobKind
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time
}

// NewJob creates a pending job of the given kind.
func NewJob(kind JobKind, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		Kind:       kind,
		Status:     JobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job as running.
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful.
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed with the given reason.
func (j *Job) Fail(reason string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = reason
}

// ShouldRetry reports whether the job has retries left.
func (j *Job) ShouldRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// ScheduleRetry bumps the retry counter and sets the next attempt time.
func (j *Job) ScheduleRetry(delay time.Duration) {
	j.RetryCount++
	next := time.Now().Add(delay)
	j.NextRetryAt = &next
	j.Status = JobStatusPending
}

// JobExecutor executes jobs by kind.
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}

// Config holds scheduler tuning knobs.
type Config struct {
	Workers       int
	JobTimeout    time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns a conservative scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Workers:       2,
		JobTimeout:    10 * time.Minute,
		RetryAttempts: 3,
		RetryDelay:    5 * time.Minute,
	}
}

// Scheduler runs submitted jobs on a small worker pool.
type Scheduler struct {
	config   Config
	executor JobExecutor
	logger   *zap.Logger

	jobs      chan *Job
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a scheduler. Start must be called before SubmitJob.
func NewScheduler(config Config, executor JobExecutor, logger *zap.Logger) *Scheduler {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	return &Scheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *Job, 100),
	}
}

// Start launches the worker pool.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.Workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Job scheduler started",
		zap.Int("workers", s.config.Workers),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop drains the workers, honoring the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	close(s.jobs)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Job scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob queues a job for execution.
func (s *Scheduler) SubmitJob(job *Job) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	select {
	case s.jobs <- job:
		s.logger.Debug("Job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("kind", string(job.Kind)),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

func (s *Scheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *Scheduler) processJob(ctx context.Context, job *Job, workerID int) {
	// Retried jobs wait for their back-off window before rerunning.
	if job.NextRetryAt != nil && time.Now().Before(*job.NextRetryAt) {
		s.requeue(job)
		return
	}

	job.Start()
	s.logger.Info("Processing job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.executor.Execute(jobCtx, job); err != nil {
		job.Fail(err.Error())
		s.logger.Error("Job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("kind", string(job.Kind)),
			zap.Error(err),
		)
		if job.ShouldRetry() {
			job.ScheduleRetry(s.config.RetryDelay)
			s.logger.Info("Job scheduled for retry",
				zap.String("job_id", job.ID.String()),
				zap.Int("retry_count", job.RetryCount),
				zap.Int("max_retries", job.MaxRetries),
			)
			s.requeue(job)
		}
		return
	}

	job.Complete()
	s.logger.Info("Job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
	)
}

func (s *Scheduler) requeue(job *Job) {
	select {
	case s.jobs <- job:
	default:
		s.logger.Warn("Failed to re-queue job",
			zap.String("job_id", job.ID.String()),
		)
	}
}
