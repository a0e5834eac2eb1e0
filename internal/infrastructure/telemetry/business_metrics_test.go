package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

func testMeter(t *testing.T) *sdkmetric.MeterProvider {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("nil meter rejected", func(t *testing.T) {
		_, err := NewBusinessMetrics(BusinessMetricsConfig{})
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("records without provider", func(t *testing.T) {
		bm, err := NewBusinessMetrics(BusinessMetricsConfig{
			Meter:  testMeter(t).Meter("test"),
			Logger: zap.NewNop(),
		})
		require.NoError(t, err)
		defer bm.Stop()

		ctx := context.Background()
		bm.RecordLogin(ctx)
		bm.RecordAssetCheckout(ctx, "LAPTOP", 3)
		bm.RecordAssetReturn(ctx, "LAPTOP", 1)
		bm.RecordImport(ctx, "employees", "completed", 120, 2*time.Second)
		bm.RecordScenarioApply(ctx)
		bm.RecordTrainingCompletion(ctx)
	})
}

type fakeWorkforceProvider struct {
	low     int64
	overdue int64
}

func (f *fakeWorkforceProvider) GetLowStockBatchCount(context.Context) (int64, error) {
	return f.low, nil
}

func (f *fakeWorkforceProvider) GetOverdueTrainingCount(context.Context) (int64, error) {
	return f.overdue, nil
}

func TestBusinessMetricsCollect(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:           testMeter(t).Meter("test"),
		Logger:          zap.NewNop(),
		Provider:        &fakeWorkforceProvider{low: 2, overdue: 7},
		CollectInterval: time.Hour,
	})
	require.NoError(t, err)
	defer bm.Stop()

	// Direct call so the test does not wait for the ticker.
	bm.collect()
}

func TestGetTraceIDWithoutSpan(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
}

func TestStartServiceSpan(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "asset", "checkout",
		WithAttribute(SpanAttrQuantity, 4))
	defer span.End()

	require.NotNil(t, ctx)
	require.NotNil(t, span)

	SetAttributes(span, SpanAttrEmployeeCode, "EMP-0042", SpanAttrQuantity, 4)
	AddEvent(span, "stock_reserved", SpanAttrQuantity, 4)
	RecordError(span, nil)
}
