package workflow

import "context"

// runNetworkStats computes counts, per-node degree, and per-node in/out
// capacity (§4.12 table; SPEC_FULL §C fixes this exactly as
// `topology.Store.Stats`'s computed shape).
func runNetworkStats(_ context.Context, rt *runtime, _ compiledStep) (any, error) {
	nodeCount, linkCount, perNode := rt.store.Stats()

	nodes := make(map[string]any, len(perNode))
	for name, s := range perNode {
		nodes[name] = map[string]any{
			"in_degree":    s.InDegree,
			"out_degree":   s.OutDegree,
			"in_capacity":  s.InCapacity,
			"out_capacity": s.OutCapacity,
		}
	}

	return map[string]any{
		"node_count": nodeCount,
		"link_count": linkCount,
		"nodes":      nodes,
	}, nil
}
