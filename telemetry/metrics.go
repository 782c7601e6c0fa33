package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records Monte Carlo iteration and workflow step metrics.
// Grounded on flowgraph/observability.MetricsRecorder; NetGraph's three
// methods replace that package's node/graph/checkpoint vocabulary with
// iteration/step/pattern, the units this engine actually measures.
type MetricsRecorder interface {
	// RecordIteration records one Monte Carlo iteration's duration and
	// error status (§4.11 step 3).
	RecordIteration(ctx context.Context, stepName string, duration time.Duration, err error)
	// RecordStep records one Workflow Driver step's completion (§4.12).
	RecordStep(ctx context.Context, stepName string, success bool, duration time.Duration)
	// RecordPatternCount records the number of distinct deduplicated
	// failure patterns a Monte Carlo run reduced to (§4.11 step 4).
	RecordPatternCount(ctx context.Context, stepName string, count int64)
}

type otelMetrics struct {
	iterations     metric.Int64Counter
	iterationMs    metric.Float64Histogram
	iterationErrs  metric.Int64Counter
	steps          metric.Int64Counter
	stepMs         metric.Float64Histogram
	patternCount   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("netgraph")

	iterations, err := meter.Int64Counter("netgraph.montecarlo.iterations",
		metric.WithDescription("Number of Monte Carlo iterations executed"))
	if err != nil {
		return nil, err
	}
	iterationMs, err := meter.Float64Histogram("netgraph.montecarlo.iteration_latency_ms",
		metric.WithDescription("Monte Carlo iteration latency"), metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	iterationErrs, err := meter.Int64Counter("netgraph.montecarlo.iteration_errors",
		metric.WithDescription("Number of Monte Carlo iterations that errored"))
	if err != nil {
		return nil, err
	}
	steps, err := meter.Int64Counter("netgraph.workflow.steps",
		metric.WithDescription("Number of workflow steps executed"))
	if err != nil {
		return nil, err
	}
	stepMs, err := meter.Float64Histogram("netgraph.workflow.step_latency_ms",
		metric.WithDescription("Workflow step latency"), metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	patternCount, err := meter.Int64Histogram("netgraph.montecarlo.distinct_patterns",
		metric.WithDescription("Distinct deduplicated failure patterns per run"))
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		iterations:    iterations,
		iterationMs:   iterationMs,
		iterationErrs: iterationErrs,
		steps:         steps,
		stepMs:        stepMs,
		patternCount:  patternCount,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global otel
// MeterProvider, falling back to NoopMetrics if instrument creation fails —
// the same fallback flowgraph/observability.NewMetricsRecorder performs.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("netgraph: metrics initialization failed, using no-op recorder", slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordIteration(ctx context.Context, stepName string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("step", stepName))
	m.iterations.Add(ctx, 1, attrs)
	m.iterationMs.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.iterationErrs.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordStep(ctx context.Context, stepName string, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("step", stepName), attribute.Bool("success", success))
	m.steps.Add(ctx, 1, attrs)
	m.stepMs.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (m *otelMetrics) RecordPatternCount(ctx context.Context, stepName string, count int64) {
	m.patternCount.Record(ctx, count, metric.WithAttributes(attribute.String("step", stepName)))
}

// NoopMetrics is a MetricsRecorder that does nothing, for callers that
// configure no otel provider.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordIteration(context.Context, string, time.Duration, error) {}
func (NoopMetrics) RecordStep(context.Context, string, bool, time.Duration)       {}
func (NoopMetrics) RecordPatternCount(context.Context, string, int64)             {}
