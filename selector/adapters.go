package selector

import (
	"sort"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/topology"
)

// NodeEntities adapts a Store's nodes into the selector's entity universe,
// in deterministic (store-declared) order. A node is Active when it is not
// Disabled.
func NodeEntities(nodes []*topology.Node) []Entity {
	out := make([]Entity, len(nodes))
	for i, n := range nodes {
		out[i] = Entity{Name: n.Name, Attrs: n.Attrs, Active: !n.Disabled}
	}
	return out
}

// LinkEntities adapts a Store's links into the selector's entity universe.
// A link's Name is its ID: links have no hierarchical path, so path-based
// selectors over links match against the link ID (adjacency/post-build rule
// contexts address links by endpoint selectors instead, never by path).
func LinkEntities(links []*topology.Link) []Entity {
	out := make([]Entity, len(links))
	for i, l := range links {
		out[i] = Entity{Name: l.ID, Attrs: l.Attrs, Active: !l.Disabled}
	}
	return out
}

// GroupEntities adapts a risk-group tree's declared group names into the
// selector's entity universe, sorted for determinism. Groups carry no
// attribute bag of their own (membership-rule selectors over risk groups
// match on the member entity, not the group), so Attrs is always null and
// groups are always considered active.
func GroupEntities(names []string) []Entity {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	out := make([]Entity, len(sorted))
	for i, n := range sorted {
		out[i] = Entity{Name: n, Attrs: attrval.Null(), Active: true}
	}
	return out
}
