package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database span instrumentation.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bind variables in spans, dev only
	SlowQueryThresh time.Duration
	DBName          string
}

// DefaultDBTracingConfig returns the default database tracing configuration.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "hris",
	}
}

// DBTracingPlugin wraps the otelgorm plugin and adds slow query detection
// on top of the spans it produces.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs the otelgorm plugin and the slow query callbacks on the
// given GORM instance. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBName),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_name", p.config.DBName),
	)
	return nil
}

// registerTimingCallbacks wires a before callback that stamps the query start
// time and an after callback that annotates the active span.
func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("hris_timing:before_create", markQueryStart); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("hris_timing:after_create", p.annotateSpan); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("hris_timing:before_query", markQueryStart); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("hris_timing:after_query", p.annotateSpan); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("hris_timing:before_update", markQueryStart); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("hris_timing:after_update", p.annotateSpan); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("hris_timing:before_delete", markQueryStart); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("hris_timing:after_delete", p.annotateSpan); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("hris_timing:before_row", markQueryStart); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("hris_timing:after_row", p.annotateSpan); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("hris_timing:before_raw", markQueryStart); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("hris_timing:after_raw", p.annotateSpan); err != nil {
		return err
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotateSpan runs after each statement and enriches the otelgorm span with
// row counts, table name, errors and slow query events.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

const queryStartTimeKey contextKey = "query_start_time"
