package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"tabprep/internal/config"
)

func TestTelemetryDisabled(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.Tracer)
	require.NotNil(t, tel.Metrics)

	ctx, span := tel.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	assert.Empty(t, TraceIDFromContext(ctx))
	span.End()

	tel.RecordInvocation(ctx, InvocationRecord{Operation: config.OpCleaning, RowsIn: 3})
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestTelemetryTraceFile(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "traces", "spans.json")

	tel, err := InitializeTelemetry(config.TelemetryConfig{TraceFile: traceFile}, nil)
	require.NoError(t, err)

	ctx, span := tel.Tracer.Start(context.Background(), "preprocess")
	assert.True(t, span.IsRecording())
	assert.Len(t, TraceIDFromContext(ctx), 32)

	AddSpanEvent(ctx, "dataset.loaded", attribute.Int("rows", 4))
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Name":"preprocess"`)
	assert.Contains(t, string(content), "dataset.loaded")
	assert.Contains(t, string(content), "boom")
}

func TestTelemetryMetricsFile(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "metrics", "preprocess.prom")

	tel, err := InitializeTelemetry(config.TelemetryConfig{MetricsFile: metricsFile, ServiceName: "test-svc"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	tel.RecordInvocation(ctx, InvocationRecord{
		Operation:   config.OpOutliers,
		Method:      config.OutlierIQR,
		Duration:    25 * time.Millisecond,
		RowsIn:      10,
		RowsRemoved: 2,
	})
	tel.RecordInvocation(ctx, InvocationRecord{
		Operation: config.OpFill,
		Method:    config.FillMean,
		ErrorType: "LOAD",
	})

	require.NoError(t, tel.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "preprocess_invocations_total")
	assert.Contains(t, text, "preprocess_rows_processed_total")
	assert.Contains(t, text, "preprocess_rows_removed_total")
	assert.Contains(t, text, "preprocess_errors_total")
	assert.Contains(t, text, `error_type="LOAD"`)
	assert.Contains(t, text, `operation="outliers"`)
}

func TestTelemetryBadTracePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := InitializeTelemetry(config.TelemetryConfig{TraceFile: filepath.Join(blocker, "x", "t.json")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize tracing")
}

func TestNilTelemetry(t *testing.T) {
	var tel *Telemetry
	tel.RecordInvocation(context.Background(), InvocationRecord{})
	assert.NoError(t, tel.Shutdown(context.Background()))
}
