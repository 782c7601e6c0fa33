// Package topology implements the Graph Store (C3, §4.3) and Network View
// (C4, §4.4): an immutable-after-build, strict directed multigraph with
// stable unique edge identifiers and O(1) adjacency, plus a zero-copy
// overlay that masks a set of nodes and links for concurrent readers.
//
// Grounded on lvlath/core (types.go, api.go, methods*.go: RWMutex-guarded
// maps, adjacency list keyed by (from, to, edgeID), sentinel errors wrapped
// with fmt.Errorf) and lvlath/core/view.go (UnweightedView/InducedSubgraph
// non-mutating view constructors), generalized from copy-on-view to
// mask-on-view per §4.4: "Views perform no mutation; they do not own the
// graph" and are "cheaply copyable" — an exclusion-set overlay rather than a
// cloned graph achieves that more directly than the teacher's copy-based
// views, while keeping the teacher's read-lock-only, no-mutation contract.
package topology
