package topology

import "github.com/ngcore/netgraph/attrval"

// Node is a materialized node (§3): a hierarchical dotted-slash name, an
// open-ended attribute bag, a disabled flag, and the risk groups it directly
// belongs to.
type Node struct {
	Name       string
	Attrs      attrval.Value
	Disabled   bool
	RiskGroups []string // declaration order
}

// Link is a materialized, directed link (§3): source/target node names,
// non-negative capacity and cost, a disabled flag, risk-group membership,
// and a free-form attribute bag. Link.ID is stable and unique — every
// operation elsewhere in the system addresses a link by ID, never by
// endpoint pair, because parallel links are first-class (§4.3).
type Link struct {
	ID         string
	Source     string
	Target     string
	Capacity   float64
	Cost       float64
	Disabled   bool
	RiskGroups []string
	Attrs      attrval.Value
}

// AdjEntry is one entry of a per-node adjacency index: the link connecting
// to Neighbor, addressed by LinkID (§4.3: "neighbors(node) -> iterator of
// (link-id, other-endpoint)").
type AdjEntry struct {
	LinkID   string
	Neighbor string
}
