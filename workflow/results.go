package workflow

import "github.com/ngcore/netgraph/montecarlo"

// iterationToMap renders one montecarlo.FlowIterationResult into the §6
// "Results document" shape: `{ total_flow (or flow_results for matrix),
// summary: { placed, dropped, cost_distribution?, min_cut? },
// occurrence_count, failure_trace? }`. The core does not itself encode
// JSON (§1 scope); this only produces the structurally-ready tree an
// external encoder serializes.
func iterationToMap(r montecarlo.FlowIterationResult) map[string]any {
	summary := map[string]any{
		"placed":  r.Placed,
		"dropped": r.Dropped,
	}
	if len(r.CostDistribution) > 0 {
		summary["cost_distribution"] = r.CostDistribution
	}
	if len(r.MinCutEdges) > 0 {
		summary["min_cut"] = r.MinCutEdges
	}

	out := map[string]any{
		"summary":          summary,
		"occurrence_count": r.OccurrenceCount,
	}
	if r.FlowResults != nil {
		out["flow_results"] = r.FlowResults
	} else {
		out["total_flow"] = r.TotalFlow
	}
	if len(r.FailureTrace) > 0 {
		out["failure_trace"] = r.FailureTrace
	}
	return out
}

// outcomeToMap renders a full Monte Carlo Outcome (§4.11 step 5) into
// `{ baseline, results }`.
func outcomeToMap(o *montecarlo.Outcome) map[string]any {
	results := make([]any, len(o.Results))
	for i, r := range o.Results {
		results[i] = iterationToMap(r)
	}
	return map[string]any{
		"baseline": iterationToMap(o.Baseline),
		"results":  results,
	}
}
