package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Metric attribute keys.
const (
	AttrEntityType    = attribute.Key("entity_type")
	AttrAssetCategory = attribute.Key("asset_category")
	AttrImportStatus  = attribute.Key("import_status")
)

// WorkforceMetricsProvider supplies point-in-time workforce numbers for the
// periodic collector. Implemented by the application layer so telemetry does
// not depend on the domain packages.
type WorkforceMetricsProvider interface {
	// GetLowStockBatchCount returns the number of batches at or below threshold
	GetLowStockBatchCount(ctx context.Context) (int64, error)

	// GetOverdueTrainingCount returns the number of overdue training assignments
	GetOverdueTrainingCount(ctx context.Context) (int64, error)
}

// BusinessMetrics tracks HRIS domain activity: logins, asset movements,
// imports, scenario applies and training completions.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	loginTotal         *Counter
	assetCheckoutTotal *Counter
	assetReturnTotal   *Counter
	importRowsTotal    *Counter
	scenarioApplyTotal *Counter
	trainingDoneTotal  *Counter
	importDuration     *Histogram
	lowStockBatches    *Gauge
	overdueAssignments *Gauge

	stopChan chan struct{}
	stopOnce sync.Once

	provider WorkforceMetricsProvider
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	Provider        WorkforceMetricsProvider
}

// NewBusinessMetrics creates the HRIS business metric instruments.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:    cfg.Meter,
		logger:   logger,
		stopChan: make(chan struct{}),
		provider: cfg.Provider,
	}

	var err error

	bm.loginTotal, err = NewCounter(cfg.Meter,
		"hris_login_total", "Total number of successful logins", "{logins}")
	if err != nil {
		return nil, err
	}
	bm.assetCheckoutTotal, err = NewCounter(cfg.Meter,
		"hris_asset_checkout_total", "Total asset units checked out", "{units}")
	if err != nil {
		return nil, err
	}
	bm.assetReturnTotal, err = NewCounter(cfg.Meter,
		"hris_asset_return_total", "Total asset units returned", "{units}")
	if err != nil {
		return nil, err
	}
	bm.importRowsTotal, err = NewCounter(cfg.Meter,
		"hris_import_rows_total", "Total rows processed by bulk imports", "{rows}")
	if err != nil {
		return nil, err
	}
	bm.scenarioApplyTotal, err = NewCounter(cfg.Meter,
		"hris_scenario_apply_total", "Total salary scenario applications", "{applies}")
	if err != nil {
		return nil, err
	}
	bm.trainingDoneTotal, err = NewCounter(cfg.Meter,
		"hris_training_completion_total", "Total training assignment completions", "{completions}")
	if err != nil {
		return nil, err
	}
	bm.importDuration, err = NewHistogram(cfg.Meter,
		"hris_import_duration_seconds", "Bulk import processing duration", "s",
		0.1, 0.5, 1, 5, 15, 60, 300)
	if err != nil {
		return nil, err
	}
	bm.lowStockBatches, err = NewGauge(cfg.Meter,
		"hris_asset_low_stock_batches", "Asset batches at or below their stock threshold", "{batches}")
	if err != nil {
		return nil, err
	}
	bm.overdueAssignments, err = NewGauge(cfg.Meter,
		"hris_training_overdue_assignments", "Training assignments past their due date", "{assignments}")
	if err != nil {
		return nil, err
	}

	if cfg.Provider != nil {
		interval := cfg.CollectInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.collectLoop(interval)
	}

	return bm, nil
}

// RecordLogin counts a successful login.
func (bm *BusinessMetrics) RecordLogin(ctx context.Context) {
	bm.loginTotal.Inc(ctx)
}

// RecordAssetCheckout counts units checked out of a batch.
func (bm *BusinessMetrics) RecordAssetCheckout(ctx context.Context, category string, quantity int) {
	bm.assetCheckoutTotal.Add(ctx, int64(quantity), AttrAssetCategory.String(category))
}

// RecordAssetReturn counts units returned to a batch.
func (bm *BusinessMetrics) RecordAssetReturn(ctx context.Context, category string, quantity int) {
	bm.assetReturnTotal.Add(ctx, int64(quantity), AttrAssetCategory.String(category))
}

// RecordImport counts the rows of a completed import and its duration.
func (bm *BusinessMetrics) RecordImport(ctx context.Context, entityType, status string, rows int, took time.Duration) {
	attrs := []attribute.KeyValue{
		AttrEntityType.String(entityType),
		AttrImportStatus.String(status),
	}
	bm.importRowsTotal.Add(ctx, int64(rows), attrs...)
	bm.importDuration.RecordDuration(ctx, took, attrs...)
}

// RecordScenarioApply counts a salary scenario application.
func (bm *BusinessMetrics) RecordScenarioApply(ctx context.Context) {
	bm.scenarioApplyTotal.Inc(ctx)
}

// RecordTrainingCompletion counts a completed training assignment.
func (bm *BusinessMetrics) RecordTrainingCompletion(ctx context.Context) {
	bm.trainingDoneTotal.Inc(ctx)
}

func (bm *BusinessMetrics) collectLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-bm.stopChan:
			return
		case <-ticker.C:
			bm.collect()
		}
	}
}

func (bm *BusinessMetrics) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if low, err := bm.provider.GetLowStockBatchCount(ctx); err != nil {
		bm.logger.Warn("Failed to collect low stock batch count", zap.Error(err))
	} else {
		bm.lowStockBatches.Record(ctx, low)
	}

	if overdue, err := bm.provider.GetOverdueTrainingCount(ctx); err != nil {
		bm.logger.Warn("Failed to collect overdue training count", zap.Error(err))
	} else {
		bm.overdueAssignments.Record(ctx, overdue)
	}
}

// Stop halts the periodic collector.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}
