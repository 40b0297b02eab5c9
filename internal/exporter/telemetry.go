package exporter

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	apperrors "sheetexport/internal/errors"
)

const (
	statusSuccess = "success"
	spanExportRun = "export.run"
)

// Telemetry holds the tracer and instruments the engine reports to.
type Telemetry struct {
	tracer   trace.Tracer
	exports  metric.Int64Counter
	duration metric.Float64Histogram
	rows     metric.Int64Counter
}

// NewTelemetry creates the export instruments on meter.
func NewTelemetry(tracer trace.Tracer, meter metric.Meter) (*Telemetry, error) {
	exports, err := meter.Int64Counter(
		"sheetexport_exports_total",
		metric.WithDescription("Total number of exports by profile and status"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"sheetexport_export_duration_seconds",
		metric.WithDescription("Duration of export runs"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"sheetexport_rows_written_total",
		metric.WithDescription("Total number of data rows written by successful exports"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	return &Telemetry{tracer: tracer, exports: exports, duration: duration, rows: rows}, nil
}

// NoopTelemetry discards every span and measurement.
func NoopTelemetry() *Telemetry {
	t, _ := NewTelemetry(
		tracenoop.NewTracerProvider().Tracer("sheetexport"),
		metricnoop.NewMeterProvider().Meter("sheetexport"),
	)
	return t
}

func exportStatus(err error) string {
	if err == nil {
		return statusSuccess
	}
	if t := apperrors.TypeOf(err); t != "" {
		return strings.ToLower(string(t))
	}
	return "error"
}

func (t *Telemetry) record(ctx context.Context, profile string, rows int, elapsed time.Duration, err error) {
	status := exportStatus(err)
	t.exports.Add(ctx, 1, metric.WithAttributes(
		attribute.String("profile", profile),
		attribute.String("status", status),
	))
	t.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("profile", profile),
	))
	if err == nil {
		t.rows.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("profile", profile)))
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
