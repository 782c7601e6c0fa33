// Package spf implements the SPF Kernel (C6, §4.6): single-source Dijkstra
// over a Network View's nonnegative cost metric, producing a shortest-path
// DAG rather than a single predecessor tree — for every reached node, the
// full set of incoming edges that participate in some shortest path. This
// preserves equal-cost alternatives for downstream multi-path splitting
// (flowpolicy, maxflow).
//
// Grounded on lvlath/dijkstra's heap-based runner (dijkstra.go, types.go):
// the same lazy-decrease-key min-heap loop, generalized from int64 to
// float64 costs and from a single predecessor map to a predecessor-set DAG.
package spf
