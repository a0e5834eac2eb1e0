package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type traceTestModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100"`
	CreatedAt time.Time
}

func setupTracingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&traceTestModel{}))
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "hris", cfg.DBName)
}

func TestDBTracingPluginRegisterDisabled(t *testing.T) {
	db := setupTracingDB(t)

	cfg := DefaultDBTracingConfig()
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NoError(t, plugin.Register(db))
}

func TestDBTracingPluginRegisterEnabled(t *testing.T) {
	db := setupTracingDB(t)

	cfg := DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "hris",
	}
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NoError(t, plugin.Register(db))

	require.NoError(t, db.Create(&traceTestModel{Name: "laptop"}).Error)

	var got traceTestModel
	require.NoError(t, db.First(&got, "name = ?", "laptop").Error)
	assert.Equal(t, "laptop", got.Name)
}

func TestDBTracingPluginAnnotatesSlowQuery(t *testing.T) {
	db := setupTracingDB(t)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
		DBName:          "hris",
	}
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "db.query")
	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))

	require.NoError(t, db.Create(&traceTestModel{Name: "monitor"}).Error)

	var got traceTestModel
	tx := db.WithContext(ctx).First(&got, "name = ?", "monitor")
	require.NoError(t, tx.Error)

	plugin.annotateSpan(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	var foundSlow, foundRows bool
	for _, attr := range spans[0].Attributes() {
		switch string(attr.Key) {
		case "db.slow_query":
			foundSlow = attr.Value.AsBool()
		case "db.rows_affected":
			foundRows = attr.Value.AsInt64() == 1
		}
	}
	assert.True(t, foundSlow, "expected span marked as slow query")
	assert.True(t, foundRows, "expected rows_affected attribute")
}

func TestDBTracingPluginIgnoresRecordNotFound(t *testing.T) {
	db := setupTracingDB(t)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Hour}, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "db.query")

	var got traceTestModel
	tx := db.WithContext(ctx).First(&got, 99999)
	require.Error(t, tx.Error)

	plugin.annotateSpan(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestNewDBTracingPluginDefaultsThreshold(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, plugin.config.SlowQueryThresh)
}
