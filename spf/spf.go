package spf

import (
	"container/heap"
	"sort"

	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/topology"
)

// Result is the shortest-path DAG rooted at Source (§4.6): a scalar cost per
// reached node, and for each reached node the sorted set of incoming edge
// IDs that participate in some shortest path — edges (u->v) with
// Cost[u]+edge.Cost == Cost[v]. Nodes absent from Cost are unreachable.
type Result struct {
	Source        string
	Cost          map[string]float64
	IncomingEdges map[string][]string
}

// Reachable reports whether node was reached from Source.
func (r *Result) Reachable(node string) bool {
	_, ok := r.Cost[node]
	return ok
}

// ShortestPaths runs Dijkstra from source over view's unmasked nodes/links,
// using each link's Cost as the nonnegative routing metric (§4.6). It is a
// pure function of (view, source): safe to memoize by (source, view
// identity), and safe to call concurrently from multiple Monte Carlo
// workers since it never mutates view or its Store.
//
// Complexity: O((V+E) log V), as lvlath/dijkstra.
func ShortestPaths(view *topology.View, source string) (*Result, error) {
	if source == "" {
		return nil, &ngerr.AnalysisError{Step: "spf", Msg: "source must not be empty"}
	}
	if view.IsNodeMasked(source) {
		return nil, &ngerr.AnalysisError{Step: "spf", Msg: "source node " + source + " is masked or disabled"}
	}
	if _, ok := view.Store().Node(source); !ok {
		return nil, &ngerr.AnalysisError{Step: "spf", Msg: "source node " + source + " does not exist"}
	}

	return shortestPaths(view, source, map[string]float64{source: 0})
}

// ShortestPathsMulti runs Dijkstra seeded with cost 0 at every node in
// sources simultaneously — the shortest-path DAG as seen from a pseudo
// source with zero-cost edges to each member (§4.8 step 1's super-source
// construction). Result.Source is empty since no single node is "the"
// source.
func ShortestPathsMulti(view *topology.View, sources []string) (*Result, error) {
	seed := make(map[string]float64, len(sources))
	for _, s := range sources {
		if view.IsNodeMasked(s) {
			continue
		}
		if _, ok := view.Store().Node(s); !ok {
			continue
		}
		seed[s] = 0
	}
	return shortestPaths(view, "", seed)
}

func shortestPaths(view *topology.View, source string, seed map[string]float64) (*Result, error) {
	r := &runner{
		view:    view,
		dist:    map[string]float64{},
		visited: map[string]bool{},
	}
	for n, d := range seed {
		r.dist[n] = d
	}
	heap.Init(&r.pq)
	for n, d := range seed {
		heap.Push(&r.pq, &nodeItem{id: n, dist: d})
	}
	r.run()

	return &Result{Source: source, Cost: r.dist, IncomingEdges: buildDAG(view, r.dist)}, nil
}

// buildDAG performs the second pass of §4.6: for every unmasked link (u, v)
// with both endpoints reached, test the shortest-path-DAG membership
// condition directly against the finalized cost map, rather than tracking
// predecessors during relaxation. This naturally captures every tied
// shortest-path edge, not just the first one discovered.
func buildDAG(view *topology.View, cost map[string]float64) map[string][]string {
	dag := map[string][]string{}
	for _, l := range view.Links() {
		cu, uOK := cost[l.Source]
		cv, vOK := cost[l.Target]
		if !uOK || !vOK {
			continue
		}
		if cu+l.Cost == cv {
			dag[l.Target] = append(dag[l.Target], l.ID)
		}
	}
	for node := range dag {
		sort.Strings(dag[node])
	}
	return dag
}

// runner holds the mutable state of one Dijkstra execution.
type runner struct {
	view    *topology.View
	dist    map[string]float64
	visited map[string]bool
	pq      nodePQ
}

func (r *runner) run() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u, d := item.id, item.dist
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		r.relax(u, d)
	}
}

func (r *runner) relax(u string, du float64) {
	for _, adj := range r.view.Neighbors(u) {
		link, ok := r.view.Store().Link(adj.LinkID)
		if !ok {
			continue
		}
		v := adj.Neighbor
		nd := du + link.Cost
		cur, seen := r.dist[v]
		if seen && nd >= cur {
			continue
		}
		r.dist[v] = nd
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
}

type nodeItem struct {
	id   string
	dist float64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
