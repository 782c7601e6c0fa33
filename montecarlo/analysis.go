package montecarlo

import (
	"github.com/ngcore/netgraph/demand"
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/maxflow"
	"github.com/ngcore/netgraph/topology"
)

// MaxFlowAnalysis builds an AnalysisFunc running the Max-Flow Engine between
// a fixed source/sink set under preset, for use as a workflow step's
// per-iteration callback (§4.11 step 3, §4.12 "max_flow").
func MaxFlowAnalysis(sources, sinks []string, preset flowpolicy.Preset) AnalysisFunc {
	return func(view *topology.View) (FlowIterationResult, error) {
		res, err := maxflow.Compute(view, sources, sinks, preset.Policy, preset.Mode)
		if err != nil {
			return FlowIterationResult{}, err
		}
		return FlowIterationResult{
			TotalFlow:        res.TotalFlow,
			Placed:           res.TotalFlow,
			CostDistribution: res.CostDistribution,
			MinCutEdges:      res.MinCutEdges,
		}, nil
	}
}

// DemandPlacementAnalysis builds an AnalysisFunc that places every spec onto
// a fresh Placer for the masked view each iteration receives, for use as a
// workflow step's per-iteration callback (§4.12 "traffic_matrix_placement").
// A new Placer per call is required: a Placer's working graph is single-use
// (§4.9, §5), and each Monte Carlo iteration presents a different view.
func DemandPlacementAnalysis(specs []demand.Spec) AnalysisFunc {
	return func(view *topology.View) (FlowIterationResult, error) {
		placer := demand.NewPlacer(view)
		res, err := placer.PlaceAll(specs)
		if err != nil {
			return FlowIterationResult{}, err
		}
		flows := make(map[string]float64, len(res.Placed))
		for _, p := range res.Placed {
			flows[p.ID] = p.Result.TotalFlow
		}
		return FlowIterationResult{
			FlowResults: flows,
			Placed:      res.TotalPlaced,
			Dropped:     res.TotalRequested - res.TotalPlaced,
		}, nil
	}
}
