package workflow

import (
	"context"
	"time"

	"github.com/ngcore/netgraph/blueprint"
	"github.com/ngcore/netgraph/demand"
	"github.com/ngcore/netgraph/failure"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/topology"
)

// runtime holds everything a scenario document compiles down to before any
// step executes: the materialized Store (§4.5), every named failure policy
// (§4.10), and every declared demand grouped by traffic matrix (§4.9). It
// is built once and shared read-only across every step (§5 "The Graph Store
// is constructed once and thereafter read-only").
type runtime struct {
	store      *topology.Store
	warnings   []string
	failures   map[string]*failure.Policy
	matrices   map[string][]demand.Spec // matrix name ("" = default) -> specs
	steps      []compiledStep
	report     *Report
	seedCursor int64
	opts       RunOptions
}

// compiledStep pairs a WorkflowStepDef with the dispatch function for its
// Type.
type compiledStep struct {
	def  scenario.WorkflowStepDef
	run  stepFunc
}

// compile validates and compiles a scenario document into a runtime,
// performing every materialization step before any analysis runs (§5
// "Base-graph reads are strictly monotonic: construction completes before
// any analysis begins"). Materialization errors are fatal (§7
// "Errors detected during materialization are fatal and abort the workflow
// before any analysis runs").
func compile(doc *scenario.Document) (*runtime, error) {
	store, warnings, err := blueprint.Expand(doc)
	if err != nil {
		return nil, err
	}

	failures := make(map[string]*failure.Policy, len(doc.Failures))
	for _, fd := range doc.Failures {
		pol, err := failure.Build(fd)
		if err != nil {
			return nil, err
		}
		failures[fd.Name] = pol
	}

	allSpecs, err := demand.Build(doc.Demands)
	if err != nil {
		return nil, err
	}
	matrices := map[string][]demand.Spec{}
	for _, spec := range allSpecs {
		matrices[spec.Matrix] = append(matrices[spec.Matrix], spec)
	}

	rt := &runtime{
		store:      store,
		warnings:   warnings,
		failures:   failures,
		matrices:   matrices,
		report:     &Report{},
		seedCursor: doc.Seed,
	}

	steps := make([]compiledStep, len(doc.Workflow))
	for i, def := range doc.Workflow {
		fn, err := dispatch(def.Type)
		if err != nil {
			return nil, err
		}
		if def.Seed == 0 {
			def.Seed = deriveStepSeed(doc.Seed, i)
		}
		steps[i] = compiledStep{def: def, run: fn}
	}
	rt.steps = steps

	return rt, nil
}

// deriveStepSeed gives every step that omits its own seed a distinct,
// deterministic sub-seed derived from the scenario's master seed and its
// position in the workflow, so two runs of the same document reproduce
// identical per-step randomness (§7 Determinism) without every step having
// to declare `seed` explicitly.
func deriveStepSeed(masterSeed int64, index int) int64 {
	// A cheap, deterministic mix: splitmix64-style constant multiply.
	x := uint64(masterSeed) + uint64(index)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}

func dispatch(stepType string) (stepFunc, error) {
	switch stepType {
	case StepBuildGraph:
		return runBuildGraph, nil
	case StepNetworkStats:
		return runNetworkStats, nil
	case StepMaxFlow:
		return runMaxFlow, nil
	case StepTrafficMatrixPlacement:
		return runTrafficMatrixPlacement, nil
	case StepMaximumSupportedDemand:
		return runMaximumSupportedDemand, nil
	case StepCostPower:
		return runCostPower, nil
	default:
		return nil, &ngerr.AnalysisError{Step: stepType, Msg: "unknown workflow step type"}
	}
}

// baseView is the unmodified Network View over rt's Store (§4.4): no
// exclusions beyond the scenario-level `disabled` flags already folded
// into the Store by the Blueprint Expander.
func (rt *runtime) baseView() *topology.View {
	return topology.BaseView(rt.store)
}

// lookupFailurePolicy resolves a step's optional failure_policy reference
// by name. An empty name is not an error: a step that declares none simply
// runs with no failure policy, so every non-baseline iteration draws an
// empty failed set (§4.10: Select(nil, ...) returns no failures).
func (rt *runtime) lookupFailurePolicy(name string) (*failure.Policy, error) {
	if name == "" {
		return nil, nil
	}
	pol, ok := rt.failures[name]
	if !ok {
		return nil, &ngerr.AnalysisError{Step: "workflow", Msg: "unknown failure_policy " + name}
	}
	return pol, nil
}

// recordStep emits the step-completion metric and, if err is non-nil, logs
// a warning — the ambient telemetry a Driver.Run carries regardless of the
// step's own Data payload (SPEC_FULL §A "Tracing & metrics").
func (rt *runtime) recordStep(name, stepType string, dur time.Duration, err error) {
	rt.opts.Metrics.RecordStep(context.Background(), name, err == nil, dur)
	if err != nil {
		rt.opts.Logger.Warn("workflow step failed", "step", name, "type", stepType, "error", err)
	}
}
