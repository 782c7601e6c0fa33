package workflow

import (
	"context"
	"log/slog"

	"github.com/ngcore/netgraph/telemetry"
)

// The fixed step-type catalog (§4.12's table). A WorkflowStepDef.Type must
// name one of these.
const (
	StepBuildGraph              = "BuildGraph"
	StepNetworkStats            = "NetworkStats"
	StepMaxFlow                 = "MaxFlow"
	StepTrafficMatrixPlacement  = "TrafficMatrixPlacement"
	StepMaximumSupportedDemand  = "MaximumSupportedDemand"
	StepCostPower               = "CostPower"
)

// Metadata is the per-step metadata envelope (§6 "Results document").
type Metadata struct {
	DurationSec float64 `json:"duration_sec"`
	StepType    string  `json:"step_type"`
	StepName    string  `json:"step_name"`
}

// StepOutput is one step's entry in the results document (§6): uniform
// Metadata plus a step-specific Data payload, already reduced to plain
// map[string]any/[]any/scalars so an external encoder can serialize it
// directly (§1 scope: "result JSON layout" is an external collaborator's
// concern, not the core's).
type StepOutput struct {
	Metadata Metadata `json:"metadata"`
	Data     any      `json:"data"`
}

// Report is the Driver's full output: one StepOutput per successfully
// executed step, in declaration order (§4.12: "evaluates steps in order and
// stores results keyed by step name"). A step that errors aborts the
// workflow but Report still carries every step that completed before it
// (§7 "Errors detected during analysis abort that step but preserve
// earlier successful steps' results").
type Report struct {
	Steps []StepOutput
}

// ByName looks up a completed step's StepOutput by its declared name, for
// tests and for from_step resolution.
func (r *Report) ByName(name string) (*StepOutput, bool) {
	for i := range r.Steps {
		if r.Steps[i].Metadata.StepName == name {
			return &r.Steps[i], true
		}
	}
	return nil, false
}

// RunOptions configures one Driver.Run call. All fields are optional; a nil
// Logger/Metrics/Spans install no-op implementations (§5 telemetry is
// ambient, never required for correctness).
type RunOptions struct {
	Logger  *slog.Logger
	Metrics telemetry.MetricsRecorder
	Spans   telemetry.SpanManager
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = telemetry.NoopMetrics{}
	}
	if o.Spans == nil {
		o.Spans = telemetry.NoopSpanManager{}
	}
	return o
}

// stepFunc executes one compiled step against the shared run state and the
// Report accumulated by earlier steps, returning the step's Data payload.
type stepFunc func(ctx context.Context, rt *runtime, step compiledStep) (any, error)
