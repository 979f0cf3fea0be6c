package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Call outcomes used as the tool.outcome attribute.
const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeDenied = "denied"
)

// Metrics holds the tool call instruments. Safe for concurrent use.
type Metrics struct {
	ToolCalls    metric.Int64Counter
	ToolDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.ToolCalls, err = meter.Int64Counter("tool.calls",
		metric.WithDescription("Tool calls partitioned by tool and outcome"))
	if err != nil {
		return nil, err
	}

	m.ToolDuration, err = meter.Float64Histogram("tool.duration",
		metric.WithDescription("Wall time of a tool call"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCall records one finished call.
func (m *Metrics) RecordCall(ctx context.Context, tool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool.name", tool),
		attribute.String("tool.outcome", outcome),
	)
	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// StartCall opens a span for a tool call. The returned func ends the span and
// records the call metrics. A nil Telemetry yields a pass-through.
func (t *Telemetry) StartCall(ctx context.Context, tool, correlationID string) (context.Context, func(outcome, message string)) {
	if t == nil || t.Tracer == nil {
		return ctx, func(string, string) {}
	}
	start := time.Now()
	ctx, span := t.Tracer.Start(ctx, "tools/call "+tool, trace.WithAttributes(
		attribute.String("tool.name", tool),
		attribute.String("correlation_id", correlationID),
	))
	return ctx, func(outcome, message string) {
		span.SetAttributes(attribute.String("tool.outcome", outcome))
		if outcome != OutcomeOK {
			span.SetStatus(codes.Error, message)
		}
		span.End()
		t.Metrics.RecordCall(ctx, tool, outcome, time.Since(start))
	}
}
