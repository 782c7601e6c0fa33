package maxflow

import (
	"sort"

	"github.com/ngcore/netgraph/topology"
)

// decomposeCostDistribution decomposes the placed flow into source-to-sink
// paths, attributing each path's flow to the sum of its real edges' costs
// (§4.8 step 4's cost_distribution: "maps the per-path cost to the flow at
// that cost"). Pseudo edges contribute zero cost. Flow that cannot be
// decomposed into a simple path (a pathological cycle in the edge-flow
// assignment) is left out of the distribution; it never affects TotalFlow
// or PerEdgeFlow, only this diagnostic breakdown.
func decomposeCostDistribution(byID map[string]edge, residual map[string]float64, res *Result) {
	remaining := map[string]float64{}
	outByNode := map[string][]string{}
	for id, e := range byID {
		var f float64
		if isPseudo(id) {
			f = e.cap - residual[id]
		} else {
			f = res.PerEdgeFlow[id]
		}
		if f > epsilon {
			remaining[id] = f
			outByNode[e.from] = append(outByNode[e.from], id)
		}
	}
	for node := range outByNode {
		sort.Strings(outByNode[node])
	}

	for {
		path, ok := findFlowPath(pseudoSource, pseudoSink, byID, outByNode, remaining)
		if !ok {
			break
		}
		bottleneck := minFlow(path, remaining)
		cost := 0.0
		for _, id := range path {
			cost += byID[id].cost
		}
		res.CostDistribution[cost] += bottleneck
		for _, id := range path {
			remaining[id] -= bottleneck
			if remaining[id] <= epsilon {
				delete(remaining, id)
			}
		}
	}
}

func minFlow(path []string, remaining map[string]float64) float64 {
	min := remaining[path[0]]
	for _, id := range path[1:] {
		if remaining[id] < min {
			min = remaining[id]
		}
	}
	return min
}

// findFlowPath performs a bounded DFS from source to sink over edges with
// remaining flow, guarding against cycles with a per-call visited set.
func findFlowPath(source, sink string, byID map[string]edge, outByNode map[string][]string, remaining map[string]float64) ([]string, bool) {
	visited := map[string]bool{}
	var walk func(node string) ([]string, bool)
	walk = func(node string) ([]string, bool) {
		if node == sink {
			return nil, true
		}
		if visited[node] {
			return nil, false
		}
		visited[node] = true
		for _, id := range outByNode[node] {
			if remaining[id] <= epsilon {
				continue
			}
			if rest, ok := walk(byID[id].to); ok {
				return append([]string{id}, rest...), true
			}
		}
		return nil, false
	}
	return walk(source)
}

// finalizeReachability computes reachable_from_source and min_cut_edges
// (§4.8 step 4) from the final residual capacities: a real node is
// reachable if some path of positive-residual edges connects it to the
// source set; a min-cut edge is a positive-original-capacity link crossing
// from the reachable side to the unreachable side.
func finalizeReachability(res *Result, realEdges []edge, residual map[string]float64, sources []string) {
	adj := map[string][]edge{}
	for _, e := range realEdges {
		if residual[e.id] > epsilon {
			adj[e.from] = append(adj[e.from], e)
		}
	}

	reached := map[string]bool{}
	queue := append([]string{}, sources...)
	for _, s := range sources {
		reached[s] = true
	}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range adj[u] {
			if !reached[e.to] {
				reached[e.to] = true
				queue = append(queue, e.to)
			}
		}
	}
	res.ReachableFromSource = reached

	var cut []string
	for _, e := range realEdges {
		if reached[e.from] && !reached[e.to] && e.cap > 0 {
			cut = append(cut, e.id)
		}
	}
	sort.Strings(cut)
	res.MinCutEdges = cut
}

// finalizeEmptyCut handles the source/sink overlap edge case (§4.8 "Source
// and sink overlap: return 0 flow, empty min-cut").
func finalizeEmptyCut(res *Result, realEdges []edge, residual map[string]float64, view *topology.View, sources []string) {
	finalizeReachability(res, realEdges, residual, sources)
	res.MinCutEdges = nil
}
