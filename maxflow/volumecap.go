package maxflow

// CapToVolume scales res down to at most volume units of total flow,
// preserving the relative split across edges and paths (§4.9 step 2: the
// Demand Placer "invokes the Max-Flow Engine with the demand's volume
// cap"). If res already carries no more than volume, it is returned
// unmodified. A non-positive volume caps to zero flow.
//
// Scaling rather than re-running the engine against an artificial
// bottleneck keeps the engine's splitting decisions (which edges, which
// paths) intact: the demand simply doesn't need all of the capacity the
// engine found, so every edge and path gives up the same fraction.
func CapToVolume(res *Result, volume float64) *Result {
	if volume < 0 {
		volume = 0
	}
	if res.TotalFlow <= volume {
		return res
	}
	if res.TotalFlow <= epsilon {
		return res
	}

	ratio := volume / res.TotalFlow
	out := &Result{
		TotalFlow:           volume,
		PerEdgeFlow:         make(map[string]float64, len(res.PerEdgeFlow)),
		ResidualCapacities:  make(map[string]float64, len(res.ResidualCapacities)),
		ReachableFromSource: res.ReachableFromSource,
		MinCutEdges:         res.MinCutEdges,
		CostDistribution:    make(map[float64]float64, len(res.CostDistribution)),
		params:              res.params,
	}
	for id, flow := range res.PerEdgeFlow {
		scaled := flow * ratio
		out.PerEdgeFlow[id] = scaled
		out.ResidualCapacities[id] = res.ResidualCapacities[id] + (flow - scaled)
	}
	for id, cap := range res.ResidualCapacities {
		if _, ok := out.ResidualCapacities[id]; !ok {
			out.ResidualCapacities[id] = cap
		}
	}
	for cost, flow := range res.CostDistribution {
		out.CostDistribution[cost] = flow * ratio
	}
	return out
}
