package flowpolicy

import "sort"

// Weight is one out-edge candidate at a branching node: its identifier (for
// deterministic ordering) and its residual capacity.
type Weight struct {
	EdgeID string
	Cap    float64
}

// Policy is a splitting rule (§4.7): given an amount of arriving flow and
// the residual-capacity-weighted set of outgoing DAG edges at a branching
// node, it returns the fraction of the arriving flow assigned to each edge,
// in the same order as the input slice. Both built-in policies spread the
// flow only over edges with positive capacity, so the fractions sum to 1,
// or are all 0 when no edge has capacity.
type Policy interface {
	// Split returns, for each of edges (already sorted by EdgeID ascending
	// by the caller), the fraction of one unit of arriving flow routed onto
	// that edge.
	Split(edges []Weight) []float64
	// Name identifies the policy for diagnostics and cost-distribution
	// labeling.
	Name() string
}

// SortWeights orders edges by EdgeID ascending, the tie-break the engine
// requires for deterministic splits (§4.8 "break by edge-id ascending").
func SortWeights(edges []Weight) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].EdgeID < edges[j].EdgeID })
}

// proportional implements WCMP: split in proportion to residual capacity.
type proportional struct{}

// Proportional is the WCMP placement policy (§4.7): "split arriving flow
// across outgoing DAG edges in proportion to residual capacity. Yields full
// max-flow on the shortest-path DAG when unrestricted."
func Proportional() Policy { return proportional{} }

func (proportional) Name() string { return "proportional" }

func (proportional) Split(edges []Weight) []float64 {
	total := 0.0
	for _, e := range edges {
		if e.Cap > 0 {
			total += e.Cap
		}
	}
	out := make([]float64, len(edges))
	if total <= 0 {
		return out
	}
	for i, e := range edges {
		if e.Cap > 0 {
			out[i] = e.Cap / total
		}
	}
	return out
}

// equalBalanced implements ECMP: split equally regardless of capacity.
type equalBalanced struct{}

// EqualBalanced is the ECMP placement policy (§4.7): "split equally across
// outgoing DAG edges regardless of residual capacity. The achievable flow
// is min(residual) x out-degree at each split point, applied end-to-end."
func EqualBalanced() Policy { return equalBalanced{} }

func (equalBalanced) Name() string { return "equal_balanced" }

func (equalBalanced) Split(edges []Weight) []float64 {
	out := make([]float64, len(edges))
	n := 0
	for _, e := range edges {
		if e.Cap > 0 {
			n++
		}
	}
	if n == 0 {
		return out
	}
	share := 1.0 / float64(n)
	for i, e := range edges {
		if e.Cap > 0 {
			out[i] = share
		}
	}
	return out
}
