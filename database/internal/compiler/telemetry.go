package compiler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/gaborage/sqlbricks/compiler"

	spanCompile = "sqlbricks.compile"

	metricCompileCalls    = "sqlbricks.compile.calls"
	metricCompileDuration = "sqlbricks.compile.duration"

	attrDBSystem   = "db.system"
	attrBindings   = "sqlbricks.bindings"
	attrClauses    = "sqlbricks.clauses"
	attrSubqueries = "sqlbricks.subqueries"
	attrError      = "error"
)

// telemetry holds the tracer and metric instruments of one Compiler.
// A nil instrument is skipped, so metric registration failures never break compilation.
type telemetry struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) *telemetry {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.calls, err = meter.Int64Counter(
		metricCompileCalls,
		metric.WithDescription("Total number of query compilations"),
	)
	logMetricError(metricCompileCalls, err)

	t.duration, err = meter.Float64Histogram(
		metricCompileDuration,
		metric.WithDescription("Duration of query compilation in milliseconds"),
		metric.WithUnit("ms"),
	)
	logMetricError(metricCompileDuration, err)

	return t
}

// logMetricError reports instrument registration failures to stderr.
func logMetricError(metricName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to initialize metric %s: %v\n", metricName, err)
	}
}

func (t *telemetry) startSpan(ctx context.Context, dialect string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanCompile,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String(attrDBSystem, dialect)),
	)
}

// finish closes the span and records call and duration metrics.
func (t *telemetry) finish(ctx context.Context, span trace.Span, dialect string, cc *compileContext, elapsed time.Duration) {
	failed := cc.err != nil

	span.SetAttributes(
		attribute.Int(attrBindings, len(cc.bindings)),
		attribute.String(attrClauses, strings.Join(cc.rendered, ",")),
		attribute.Int(attrSubqueries, cc.subqueries),
	)
	if failed {
		span.RecordError(cc.err)
		span.SetStatus(codes.Error, cc.err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	attrs := metric.WithAttributes(
		attribute.String(attrDBSystem, dialect),
		attribute.Bool(attrError, failed),
	)
	if t.calls != nil {
		t.calls.Add(ctx, 1, attrs)
	}
	if t.duration != nil {
		t.duration.Record(ctx, float64(elapsed.Microseconds())/1000.0, attrs)
	}
}
