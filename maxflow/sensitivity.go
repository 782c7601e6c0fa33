package maxflow

// Sensitivity reports, per edge in edgeIDs, the change in total max-flow
// when that edge's capacity alone is bumped by delta (§4.8 "Sensitivity").
// A negative delta is clamped so the adjusted capacity never drops below
// zero. Each edge is evaluated independently, holding all others at their
// original capacity, by re-running the engine with a single-edge capacity
// override.
func (r *Result) Sensitivity(edgeIDs []string, delta float64) map[string]float64 {
	out := make(map[string]float64, len(edgeIDs))
	for _, id := range edgeIDs {
		link, ok := r.params.view.Store().Link(id)
		if !ok {
			continue
		}
		adjustedCap := link.Capacity + delta
		if adjustedCap < 0 {
			adjustedCap = 0
		}
		adjusted, err := compute(r.params.view, r.params.sources, r.params.sinks, r.params.policy, r.params.mode, map[string]float64{id: adjustedCap})
		if err != nil {
			continue
		}
		out[id] = adjusted.TotalFlow - r.TotalFlow
	}
	return out
}
