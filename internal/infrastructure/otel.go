package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"tabprep/internal/config"
)

const (
	// InstrumentationName names the tracer and meter.
	InstrumentationName = "tabprep"
)

// Telemetry holds the tracing and metrics providers for one invocation.
// Spans go to a JSON file and metrics to a Prometheus textfile; with both
// paths empty every instrument is a no-op.
type Telemetry struct {
	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *InvocationMetrics

	tracerProvider *sdktrace.TracerProvider
	traceFile      *os.File

	meterProvider *sdkmetric.MeterProvider
	registry      *prometheus.Registry
	metricsFile   string

	logger *slog.Logger
}

// InvocationMetrics holds the instruments recorded per invocation.
type InvocationMetrics struct {
	InvocationsTotal   metric.Int64Counter
	InvocationDuration metric.Float64Histogram
	RowsProcessed      metric.Int64Counter
	RowsRemoved        metric.Int64Counter
	ErrorsTotal        metric.Int64Counter
}

// InitializeTelemetry builds the providers described by cfg.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = DiscardLogger()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = config.AppName
	}

	t := NoopTelemetry()
	t.logger = logger

	res := createResource(serviceName)

	if cfg.TraceFile != "" {
		if err := t.initializeTracing(cfg.TraceFile, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := t.initializeMetrics(cfg.MetricsFile, res); err != nil {
			t.closeTracing(context.Background())
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	metrics, err := CreateInvocationMetrics(t.Meter)
	if err != nil {
		t.closeTracing(context.Background())
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	t.Metrics = metrics

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.tracerProvider != nil),
		slog.Bool("metrics_enabled", t.meterProvider != nil))

	return t, nil
}

// NoopTelemetry returns telemetry whose instruments discard everything.
func NoopTelemetry() *Telemetry {
	meter := metricnoop.NewMeterProvider().Meter(InstrumentationName)
	// noop instruments never fail
	metrics, _ := CreateInvocationMetrics(meter)
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:   meter,
		Metrics: metrics,
		logger:  DiscardLogger(),
	}
}

// createResource creates the OpenTelemetry resource
func createResource(serviceName string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.Int("process.pid", os.Getpid()),
	)
}

// initializeTracing exports spans synchronously so nothing is lost when the
// process exits right after the invocation.
func (t *Telemetry) initializeTracing(path string, res *resource.Resource) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	t.traceFile = file
	t.tracerProvider = tp
	t.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics registers the OpenTelemetry Prometheus exporter on a
// private registry that Shutdown writes out as a textfile.
func (t *Telemetry) initializeMetrics(path string, res *resource.Resource) error {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.registry = registry
	t.metricsFile = path
	t.meterProvider = mp
	t.Meter = mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// CreateInvocationMetrics creates the application instruments on meter.
func CreateInvocationMetrics(meter metric.Meter) (*InvocationMetrics, error) {
	invocationsTotal, err := meter.Int64Counter(
		"preprocess_invocations_total",
		metric.WithDescription("Total number of preprocessing invocations"),
	)
	if err != nil {
		return nil, err
	}

	invocationDuration, err := meter.Float64Histogram(
		"preprocess_invocation_duration_seconds",
		metric.WithDescription("Preprocessing invocation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rowsProcessed, err := meter.Int64Counter(
		"preprocess_rows_processed_total",
		metric.WithDescription("Total number of input rows processed"),
	)
	if err != nil {
		return nil, err
	}

	rowsRemoved, err := meter.Int64Counter(
		"preprocess_rows_removed_total",
		metric.WithDescription("Total number of rows removed by an operation"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"preprocess_errors_total",
		metric.WithDescription("Total number of failed invocations"),
	)
	if err != nil {
		return nil, err
	}

	return &InvocationMetrics{
		InvocationsTotal:   invocationsTotal,
		InvocationDuration: invocationDuration,
		RowsProcessed:      rowsProcessed,
		RowsRemoved:        rowsRemoved,
		ErrorsTotal:        errorsTotal,
	}, nil
}

// InvocationRecord describes one finished invocation.
type InvocationRecord struct {
	Operation   string
	Method      string
	Duration    time.Duration
	RowsIn      int
	RowsRemoved int
	ErrorType   string
}

// RecordInvocation records metrics for one invocation. An empty ErrorType
// means success.
func (t *Telemetry) RecordInvocation(ctx context.Context, rec InvocationRecord) {
	if t == nil || t.Metrics == nil {
		return
	}

	status := "success"
	if rec.ErrorType != "" {
		status = "failure"
	}
	attrs := []attribute.KeyValue{
		attribute.String("operation", rec.Operation),
		attribute.String("method", rec.Method),
	}
	withStatus := metric.WithAttributes(append(attrs, attribute.String("status", status))...)

	t.Metrics.InvocationsTotal.Add(ctx, 1, withStatus)
	t.Metrics.InvocationDuration.Record(ctx, rec.Duration.Seconds(), withStatus)

	if rec.ErrorType != "" {
		t.Metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			append(attrs, attribute.String("error.type", rec.ErrorType))...))
		return
	}

	t.Metrics.RowsProcessed.Add(ctx, int64(rec.RowsIn), metric.WithAttributes(attrs...))
	if rec.RowsRemoved > 0 {
		t.Metrics.RowsRemoved.Add(ctx, int64(rec.RowsRemoved), metric.WithAttributes(attrs...))
	}
}

// Shutdown flushes spans, writes the metrics textfile and releases the
// providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error

	if err := t.closeTracing(ctx); err != nil {
		errs = append(errs, err)
	}

	if t.meterProvider != nil {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
		t.meterProvider = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}

	t.logger.Debug("Telemetry shutdown complete")
	return nil
}

func (t *Telemetry) closeTracing(ctx context.Context) error {
	if t.tracerProvider == nil {
		return nil
	}
	var err error
	if shutdownErr := t.tracerProvider.Shutdown(ctx); shutdownErr != nil {
		err = fmt.Errorf("tracer provider shutdown: %w", shutdownErr)
	}
	if closeErr := t.traceFile.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("trace file close: %w", closeErr)
	}
	t.tracerProvider = nil
	t.traceFile = nil
	return err
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID for log correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
