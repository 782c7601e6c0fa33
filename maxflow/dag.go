package maxflow

import (
	"sort"

	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/spf"
	"github.com/ngcore/netgraph/topology"
)

// buildCostDAG restricts augmentation to the SPF shortest-path DAG (§4.8
// step 2, shortest_path mode). The DAG is computed on the view's own link
// costs every round; edges with no residual capacity are then left out of
// outEdges, so once the shortest paths saturate no flow moves onto a
// costlier path.
func buildCostDAG(view *topology.View, sources []string, allEdges []edge, byID map[string]edge, residual map[string]float64) (map[string][]string, []string, bool) {
	dag, err := spf.ShortestPathsMulti(view, sources)
	if err != nil {
		return nil, nil, false
	}

	outEdges := map[string][]string{}
	for _, edgeIDs := range dag.IncomingEdges {
		for _, id := range edgeIDs {
			if residual[id] <= epsilon {
				continue
			}
			from := byID[id].from
			outEdges[from] = append(outEdges[from], id)
		}
	}

	topoOrder := make([]string, 0, len(dag.Cost))
	for n := range dag.Cost {
		topoOrder = append(topoOrder, n)
	}
	sort.Slice(topoOrder, func(i, j int) bool {
		ci, cj := dag.Cost[topoOrder[i]], dag.Cost[topoOrder[j]]
		if ci != cj {
			return ci < cj
		}
		return topoOrder[i] < topoOrder[j]
	})

	// pseudo-source edges are always eligible; pseudo-sink edges are
	// eligible whenever their real endpoint was reached by the DAG.
	reachedSink := false
	for _, e := range allEdges {
		if !isPseudo(e.id) || residual[e.id] <= epsilon {
			continue
		}
		switch {
		case e.from == pseudoSource:
			outEdges[pseudoSource] = append(outEdges[pseudoSource], e.id)
		case e.to == pseudoSink:
			if _, ok := dag.Cost[e.from]; ok {
				outEdges[e.from] = append(outEdges[e.from], e.id)
				reachedSink = true
			}
		}
	}

	return outEdges, topoOrder, reachedSink
}

// buildLevelDAG restricts augmentation to a BFS level graph over every edge
// with remaining residual capacity (§4.8 step 2, arbitrary-path mode) —
// the same level-graph construction as lvlath/flow's Dinic.
func buildLevelDAG(allEdges []edge, byID map[string]edge, residual map[string]float64) (map[string][]string, []string, bool) {
	adj := map[string][]edge{}
	for _, e := range allEdges {
		if residual[e.id] > epsilon {
			adj[e.from] = append(adj[e.from], e)
		}
	}

	level := map[string]int{pseudoSource: 0}
	queue := []string{pseudoSource}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range adj[u] {
			if _, seen := level[e.to]; !seen {
				level[e.to] = level[u] + 1
				queue = append(queue, e.to)
			}
		}
	}
	if _, ok := level[pseudoSink]; !ok {
		return nil, nil, false
	}

	outEdges := map[string][]string{}
	for u, edges := range adj {
		for _, e := range edges {
			if lv, ok := level[e.to]; ok && lv == level[u]+1 {
				outEdges[u] = append(outEdges[u], e.id)
			}
		}
	}

	topoOrder := make([]string, 0, len(level))
	for n := range level {
		if n == pseudoSource || n == pseudoSink {
			continue
		}
		topoOrder = append(topoOrder, n)
	}
	sort.Slice(topoOrder, func(i, j int) bool {
		li, lj := level[topoOrder[i]], level[topoOrder[j]]
		if li != lj {
			return li < lj
		}
		return topoOrder[i] < topoOrder[j]
	})

	return outEdges, topoOrder, true
}

// pruneToSinkReaching drops edges/nodes that cannot reach the pseudo-sink
// within this round's subgraph, so waterFill never strands flow mid-DAG.
func pruneToSinkReaching(outEdges map[string][]string, topoOrder []string, byID map[string]edge) []string {
	canReach := map[string]bool{pseudoSink: true}
	for i := len(topoOrder) - 1; i >= 0; i-- {
		node := topoOrder[i]
		for _, id := range outEdges[node] {
			if canReach[byID[id].to] {
				canReach[node] = true
				break
			}
		}
	}

	filtered := make([]string, 0, len(topoOrder))
	for _, node := range topoOrder {
		if !canReach[node] {
			delete(outEdges, node)
			continue
		}
		kept := outEdges[node][:0]
		for _, id := range outEdges[node] {
			if canReach[byID[id].to] {
				kept = append(kept, id)
			}
		}
		outEdges[node] = kept
		filtered = append(filtered, node)
	}

	keptSrc := outEdges[pseudoSource][:0]
	for _, id := range outEdges[pseudoSource] {
		if canReach[byID[id].to] {
			keptSrc = append(keptSrc, id)
		}
	}
	outEdges[pseudoSource] = keptSrc

	return filtered
}

// waterFill performs one blocking-flow phase: a single forward pass that
// splits flow at every branching node per policy, then scales the whole
// pass by the tightest edge (the bottleneck), guaranteeing at least one
// edge saturates.
func waterFill(topoOrder []string, outEdges map[string][]string, byID map[string]edge, residual map[string]float64, policy flowpolicy.Policy) (float64, map[string]float64, bool) {
	fractionIn := map[string]float64{pseudoSource: 1}
	fractionOut := map[string]float64{}

	order := make([]string, 0, len(topoOrder)+1)
	order = append(order, pseudoSource)
	order = append(order, topoOrder...)

	for _, node := range order {
		avail := fractionIn[node]
		if avail <= epsilon {
			continue
		}
		edgeIDs := append([]string(nil), outEdges[node]...)
		if len(edgeIDs) == 0 {
			continue
		}
		sort.Strings(edgeIDs)
		weights := make([]flowpolicy.Weight, len(edgeIDs))
		for i, id := range edgeIDs {
			weights[i] = flowpolicy.Weight{EdgeID: id, Cap: residual[id]}
		}
		shares := policy.Split(weights)
		for i, id := range edgeIDs {
			share := shares[i] * avail
			if share <= 0 {
				continue
			}
			fractionOut[id] += share
			fractionIn[byID[id].to] += share
		}
	}

	scalar := 0.0
	first := true
	for id, frac := range fractionOut {
		if frac <= epsilon {
			continue
		}
		ratio := residual[id] / frac
		if first || ratio < scalar {
			scalar = ratio
			first = false
		}
	}
	if first || fractionIn[pseudoSink] <= epsilon {
		return 0, nil, false
	}
	return scalar, fractionOut, true
}
