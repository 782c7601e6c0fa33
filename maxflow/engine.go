package maxflow

import (
	"math"
	"sort"

	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/spf"
	"github.com/ngcore/netgraph/topology"
)

// edge is the engine's uniform representation of both real links and the
// pseudo augmentation edges of §4.8 step 1.
type edge struct {
	id       string
	from, to string
	cap      float64
	cost     float64
}

// Compute runs the Max-Flow Engine (§4.8) from sources to sinks over view,
// using policy to split flow at branching points and mode to choose which
// edges are eligible for augmentation each phase.
func Compute(view *topology.View, sources, sinks []string, policy flowpolicy.Policy, mode flowpolicy.PathMode) (*Result, error) {
	return compute(view, sources, sinks, policy, mode, nil)
}

// ComputeWithOverrides runs the engine exactly like Compute, but with every
// link's capacity taken from overrides when present (falling back to the
// Store's capacity otherwise) rather than the Store's capacity alone. The
// Demand Placer uses this to run each sub-demand against a working graph of
// accumulated residuals (§4.9: "Demands share a working graph that
// accumulates per-edge committed flow") without mutating the underlying
// Store or View.
func ComputeWithOverrides(view *topology.View, sources, sinks []string, policy flowpolicy.Policy, mode flowpolicy.PathMode, overrides map[string]float64) (*Result, error) {
	return compute(view, sources, sinks, policy, mode, overrides)
}

// compute is Compute's implementation, parameterized by per-edge capacity
// overrides so Sensitivity can re-run the engine with one edge's capacity
// bumped without mutating the Graph Store.
func compute(view *topology.View, sources, sinks []string, policy flowpolicy.Policy, mode flowpolicy.PathMode, overrides map[string]float64) (*Result, error) {
	if len(sources) == 0 || len(sinks) == 0 {
		return nil, &ngerr.AnalysisError{Step: "maxflow", Msg: "source and sink sets must both be non-empty"}
	}

	res := &Result{
		PerEdgeFlow:         map[string]float64{},
		ResidualCapacities:  map[string]float64{},
		ReachableFromSource: map[string]bool{},
		CostDistribution:    map[float64]float64{},
		params:              params{view: view, sources: sources, sinks: sinks, policy: policy, mode: mode},
	}

	realEdges, residual := buildEdges(view, overrides)
	for _, e := range realEdges {
		res.ResidualCapacities[e.id] = e.cap
	}

	srcSet, sinkSet := toSet(sources), toSet(sinks)
	overlap := false
	for s := range srcSet {
		if sinkSet[s] {
			overlap = true
			break
		}
	}
	if overlap {
		finalizeEmptyCut(res, realEdges, residual, view, sources)
		return res, nil
	}

	byID := run(view, sources, sinks, policy, mode, realEdges, residual, res)
	decomposeCostDistribution(byID, residual, res)
	finalizeReachability(res, realEdges, residual, sources)

	return res, nil
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// buildEdges assembles the uniform edge list of every unmasked link, with
// residual capacities seeded from link.Capacity, overridden per-id by
// overrides (used by Sensitivity). The pseudo-source/pseudo-sink
// augmentation edges (§4.8 step 1) are appended by run via pseudoEdges.
func buildEdges(view *topology.View, overrides map[string]float64) ([]edge, map[string]float64) {
	edges := make([]edge, 0, len(view.Links()))
	residual := map[string]float64{}
	for _, l := range view.Links() {
		cap := l.Capacity
		if v, ok := overrides[l.ID]; ok {
			cap = v
		}
		edges = append(edges, edge{id: l.ID, from: l.Source, to: l.Target, cap: cap, cost: l.Cost})
		residual[l.ID] = cap
	}
	return edges, residual
}

const infiniteCap = math.MaxFloat64 / 4

func pseudoEdges(view *topology.View, sources, sinks []string) []edge {
	var out []edge
	for _, s := range dedupeExisting(view, sources) {
		out = append(out, edge{id: "\x00src:" + s, from: pseudoSource, to: s, cap: infiniteCap})
	}
	for _, t := range dedupeExisting(view, sinks) {
		out = append(out, edge{id: "\x00sink:" + t, from: t, to: pseudoSink, cap: infiniteCap})
	}
	return out
}

func dedupeExisting(view *topology.View, names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] || view.IsNodeMasked(n) {
			continue
		}
		if _, ok := view.Store().Node(n); !ok {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// run is the phase loop: rebuild the eligible subgraph (cost-DAG or BFS
// level graph), water-fill it once, saturate, repeat until the pseudo-sink
// is unreachable or no progress is made. Returns the full (real + pseudo)
// edge set by ID, reused afterward for cost decomposition and reachability.
func run(view *topology.View, sources, sinks []string, policy flowpolicy.Policy, mode flowpolicy.PathMode, realEdges []edge, residual map[string]float64, res *Result) map[string]edge {
	pseudo := pseudoEdges(view, sources, sinks)
	allEdges := append(append([]edge{}, realEdges...), pseudo...)
	for _, e := range pseudo {
		residual[e.id] = e.cap
	}
	byID := make(map[string]edge, len(allEdges))
	for _, e := range allEdges {
		byID[e.id] = e
	}

	maxRounds := len(allEdges) + 2
	for round := 0; round < maxRounds; round++ {
		var outEdges map[string][]string
		var topoOrder []string
		var ok bool

		switch mode {
		case flowpolicy.ShortestPathsOnly:
			outEdges, topoOrder, ok = buildCostDAG(view, sources, allEdges, byID, residual)
		default:
			outEdges, topoOrder, ok = buildLevelDAG(allEdges, byID, residual)
		}
		if !ok {
			break
		}

		topoOrder = pruneToSinkReaching(outEdges, topoOrder, byID)
		scalar, perEdgeFrac, progressed := waterFill(topoOrder, outEdges, byID, residual, policy)
		if !progressed || scalar < epsilon {
			break
		}
		for id, frac := range perEdgeFrac {
			flow := frac * scalar
			residual[id] -= flow
			if !isPseudo(id) {
				res.PerEdgeFlow[id] += flow
			}
		}
		res.TotalFlow += scalar

		// Equal-balanced splits commit to one fixed, topology-determined
		// ratio "applied end-to-end" (§4.7): once this phase's bottleneck
		// saturates, capacity it left stranded on other branches is not
		// reclaimed by re-splitting, unlike proportional placement, which
		// is expected to converge to full DAG max-flow over further phases.
		if policy.Name() == flowpolicy.EqualBalanced().Name() {
			break
		}
	}

	for id, cap := range residual {
		if !isPseudo(id) {
			res.ResidualCapacities[id] = cap
		}
	}
	return byID
}

func isPseudo(id string) bool {
	return len(id) > 0 && id[0] == 0
}
