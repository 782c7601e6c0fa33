package workflow

import (
	"context"
	"time"

	"github.com/ngcore/netgraph/demand"
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/montecarlo"
	"github.com/ngcore/netgraph/ngerr"
)

// runMaxFlow is the `MaxFlow` step (§4.12 table): Monte-Carlo max-flow
// between two selector sets, under a named flow policy preset.
func runMaxFlow(ctx context.Context, rt *runtime, step compiledStep) (any, error) {
	def := step.def

	view := rt.baseView()
	sources, err := resolveNodeSelector(view, def.Source, "max_flow.source")
	if err != nil {
		return nil, err
	}
	sinks, err := resolveNodeSelector(view, def.Sink, "max_flow.sink")
	if err != nil {
		return nil, err
	}

	preset, err := flowpolicy.ByName(def.FlowPolicy)
	if err != nil {
		return nil, err
	}

	policy, err := rt.lookupFailurePolicy(def.FailurePolicy)
	if err != nil {
		return nil, err
	}

	opts := montecarlo.Options{
		Iterations:  def.Iterations,
		Seed:        def.Seed,
		Parallelism: def.Parallelism,
		Policy:      policy,
	}

	start := time.Now()
	outcome, err := montecarlo.Run(ctx, rt.store, opts, montecarlo.MaxFlowAnalysis(sources, sinks, preset))
	rt.recordStep(def.Name, StepMaxFlow, time.Since(start), err)
	if err != nil {
		return nil, &ngerr.AnalysisError{Step: def.Name, Msg: err.Error()}
	}

	return outcomeToMap(outcome), nil
}

// scaleSpecs returns a copy of specs with every Volume multiplied by alpha,
// for `TrafficMatrixPlacement.from_step` (§4.12, scaling a matrix against an
// earlier MaximumSupportedDemand step's alpha_star).
func scaleSpecs(specs []demand.Spec, alpha float64) []demand.Spec {
	out := make([]demand.Spec, len(specs))
	for i, s := range specs {
		s.Volume *= alpha
		out[i] = s
	}
	return out
}

// runTrafficMatrixPlacement is the `TrafficMatrixPlacement` step (§4.12
// table): Monte-Carlo demand placement for a named traffic matrix.
func runTrafficMatrixPlacement(ctx context.Context, rt *runtime, step compiledStep) (any, error) {
	def := step.def

	specs, ok := rt.matrices[def.TrafficMatrix]
	if !ok {
		return nil, &ngerr.AnalysisError{Step: def.Name, Msg: "unknown traffic_matrix " + def.TrafficMatrix}
	}

	if def.FromStep != "" {
		alpha, err := resolveFromStep(rt, def.FromStep, paramString(step, "from_field"))
		if err != nil {
			return nil, err
		}
		specs = scaleSpecs(specs, alpha)
	}

	policy, err := rt.lookupFailurePolicy(def.FailurePolicy)
	if err != nil {
		return nil, err
	}

	opts := montecarlo.Options{
		Iterations:  def.Iterations,
		Seed:        def.Seed,
		Parallelism: def.Parallelism,
		Policy:      policy,
	}

	start := time.Now()
	outcome, err := montecarlo.Run(ctx, rt.store, opts, montecarlo.DemandPlacementAnalysis(specs))
	rt.recordStep(def.Name, StepTrafficMatrixPlacement, time.Since(start), err)
	if err != nil {
		return nil, &ngerr.AnalysisError{Step: def.Name, Msg: err.Error()}
	}

	return outcomeToMap(outcome), nil
}

