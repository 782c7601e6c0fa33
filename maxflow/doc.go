// Package maxflow implements the Max-Flow Engine (C8, §4.8): pseudo-source
// and pseudo-sink composition over multi-node source/sink sets, iterative
// augmentation restricted to the SPF shortest-path DAG or to any feasible
// path, deterministic tie-break, and the sensitivity/min-cut/cost-
// distribution reporting the spec requires.
//
// Grounded on lvlath/flow's Dinic (flow/dinic.go): the phase structure
// (rebuild a restricted subgraph, saturate within it, repeat until the
// pseudo-sink is unreachable) is the same "level graph + blocking flow"
// loop, generalized two ways: the per-phase subgraph is either the SPF
// cost-DAG (shortest_path mode, via the spf package) or a BFS level graph
// exactly as in lvlath's Dinic (arbitrary-path mode), and "blocking flow"
// is computed by a single flowpolicy water-filling pass instead of
// per-path DFS pushes, so the chosen placement policy governs every split.
package maxflow
