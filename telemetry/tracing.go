package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager starts and ends spans for Monte Carlo iterations and workflow
// steps. Grounded on flowgraph/observability.SpanManager; StartRunSpan/
// StartNodeSpan there become StartStepSpan/StartIterationSpan here.
type SpanManager interface {
	// StartStepSpan starts a span covering one Workflow Driver step
	// (§4.12).
	StartStepSpan(ctx context.Context, stepName, stepType string) (context.Context, trace.Span)
	// StartIterationSpan starts a span covering one Monte Carlo iteration
	// (§4.11 step 3).
	StartIterationSpan(ctx context.Context, index int) (context.Context, trace.Span)
	// EndSpanWithError ends span, recording err's status if non-nil.
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager using the global otel TracerProvider
// under the "netgraph" instrumentation name. With no provider configured,
// otel.Tracer returns its built-in no-op tracer, so this is always safe to
// call.
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: otel.Tracer("netgraph")}
}

func (m *otelSpanManager) StartStepSpan(ctx context.Context, stepName, stepType string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "workflow.step",
		trace.WithAttributes(attribute.String("step.name", stepName), attribute.String("step.type", stepType)))
}

func (m *otelSpanManager) StartIterationSpan(ctx context.Context, index int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "montecarlo.iteration", trace.WithAttributes(attribute.Int("iteration.index", index)))
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// NoopSpanManager does nothing; used when tracing is disabled.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

func (NoopSpanManager) StartStepSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (NoopSpanManager) StartIterationSpan(ctx context.Context, _ int) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (NoopSpanManager) EndSpanWithError(trace.Span, error) {}
