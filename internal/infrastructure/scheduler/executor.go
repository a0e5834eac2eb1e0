package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueSweeper marks open training assignments past their due date.
// Implemented by the training application service.
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, now time.Time) (int, error)
}

// LowStockScanner reports asset batches at or below their stock threshold.
// Implemented by the asset application service.
type LowStockScanner interface {
	ScanLowStock(ctx context.Context) (int, error)
}

// Executor dispatches jobs to the application services by kind.
type Executor struct {
	sweeper OverdueSweeper
	scanner LowStockScanner
	logger  *zap.Logger
}

// NewExecutor creates an executor. The scanner may be nil when the low
// stock scan is not wanted.
func NewExecutor(sweeper OverdueSweeper, scanner LowStockScanner, logger *zap.Logger) *Executor {
	return &Executor{
		sweeper: sweeper,
		scanner: scanner,
		logger:  logger,
	}
}

// Execute runs a job.
func (e *Executor) Execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case JobKindOverdueSweep:
		marked, err := e.sweeper.SweepOverdue(ctx, time.Now())
		if err != nil {
			return err
		}
		e.logger.Info("Overdue sweep finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("assignments_marked", marked),
		)
		return nil
	case JobKindLowStockScan:
		if e.scanner == nil {
			return nil
		}
		low, err := e.scanner.ScanLowStock(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Low stock scan finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("batches_low", low),
		)
		return nil
	default:
		return ErrUnknownJobKind
	}
}
