package topology

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/riskgroup"
)

// Store is the immutable-after-build Graph Store (§3, §4.3). It is built
// once by a Builder (driven by the Blueprint Expander) and thereafter
// shared read-only across every analysis and every Monte Carlo worker —
// "Base-graph reads are strictly monotonic" (§5): no reader ever observes a
// partially constructed Store, because Store values only come into
// existence fully formed via Builder.Build.
type Store struct {
	nodeOrder []string
	nodes     map[string]*Node

	linkOrder []string
	links     map[string]*Link

	outAdj map[string][]AdjEntry
	inAdj  map[string][]AdjEntry

	riskTree *riskgroup.Tree
}

// Builder accumulates nodes and links before a single Build call freezes
// them into a Store. Builder is used by a single goroutine during
// materialization (§4.5); it is not safe for concurrent use, matching the
// Blueprint Expander's strictly-ordered, sequential processing contract.
type Builder struct {
	nodeOrder []string
	nodes     map[string]*Node

	linkOrder []string
	links     map[string]*Link
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: map[string]*Node{},
		links: map[string]*Link{},
	}
}

// AddNode declares a node. Re-declaring an existing name is a
// ValidationError (node names are unique, §3 invariant).
func (b *Builder) AddNode(name string, attrs attrval.Value, disabled bool) error {
	if _, exists := b.nodes[name]; exists {
		return &ngerr.ValidationError{Entity: name, Msg: "duplicate node name"}
	}
	if attrs.IsNull() {
		attrs = attrval.Map(nil)
	}
	b.nodes[name] = &Node{Name: name, Attrs: attrs, Disabled: disabled}
	b.nodeOrder = append(b.nodeOrder, name)
	return nil
}

// HasNode reports whether name has already been declared.
func (b *Builder) HasNode(name string) bool {
	_, ok := b.nodes[name]
	return ok
}

// Node returns the builder's in-progress record for name, or nil.
func (b *Builder) Node(name string) *Node { return b.nodes[name] }

// Nodes returns every declared node in declaration order, as live pointers
// into the builder's in-progress records — the expander's post-build node
// rules (§4.5 step 3) mutate these directly rather than re-inserting.
func (b *Builder) Nodes() []*Node {
	out := make([]*Node, len(b.nodeOrder))
	for i, name := range b.nodeOrder {
		out[i] = b.nodes[name]
	}
	return out
}

// SetNodeRiskGroups overwrites a node's directly-assigned risk-group names.
// Used by the risk-group resolution pass (§4.5 step 6) once the risk-group
// tree is finalized.
func (b *Builder) SetNodeRiskGroups(name string, groups []string) {
	if n, ok := b.nodes[name]; ok {
		n.RiskGroups = groups
	}
}

// NextLinkID generates a fallback stable link identifier when the
// declarative document does not supply one explicitly (e.g. for adjacency
// rule-generated links, §4.5 "Each resulting edge materializes..."),
// grounded on flowgraph's use of google/uuid for stable run identifiers.
func (b *Builder) NextLinkID() string { return uuid.NewString() }

// AddLink declares a link with an explicit, caller-supplied ID. Both
// endpoints must already be declared nodes (an "Unknown node name in a
// direct link" is fatal per §4.5); re-using an existing link ID is a
// ValidationError (link identifiers are unique and stable, §3 invariant).
// Capacity and cost must be non-negative (§3 invariant).
func (b *Builder) AddLink(id, source, target string, capacity, cost float64, attrs attrval.Value, disabled bool) error {
	if _, exists := b.links[id]; exists {
		return &ngerr.ValidationError{Entity: id, Msg: "duplicate link ID"}
	}
	if !b.HasNode(source) {
		return &ngerr.ValidationError{Entity: source, Msg: "link references unknown source node"}
	}
	if !b.HasNode(target) {
		return &ngerr.ValidationError{Entity: target, Msg: "link references unknown target node"}
	}
	if capacity < 0 {
		return &ngerr.ValidationError{Entity: id, Msg: "negative capacity"}
	}
	if cost < 0 {
		return &ngerr.ValidationError{Entity: id, Msg: "negative cost"}
	}
	if attrs.IsNull() {
		attrs = attrval.Map(nil)
	}
	b.links[id] = &Link{
		ID: id, Source: source, Target: target,
		Capacity: capacity, Cost: cost, Disabled: disabled, Attrs: attrs,
	}
	b.linkOrder = append(b.linkOrder, id)
	return nil
}

// SetLinkRiskGroups overwrites a link's directly-assigned risk-group names.
func (b *Builder) SetLinkRiskGroups(id string, groups []string) {
	if l, ok := b.links[id]; ok {
		l.RiskGroups = groups
	}
}

// Link returns the builder's in-progress record for id, or nil.
func (b *Builder) Link(id string) *Link { return b.links[id] }

// Links returns every declared link in declaration order, as live pointers
// into the builder's in-progress records — the expander's post-build link
// rules (§4.5 step 5) mutate these directly.
func (b *Builder) Links() []*Link {
	out := make([]*Link, len(b.linkOrder))
	for i, id := range b.linkOrder {
		out[i] = b.links[id]
	}
	return out
}

// HasLink reports whether id has already been declared.
func (b *Builder) HasLink(id string) bool {
	_, ok := b.links[id]
	return ok
}

// NodeNames returns every declared node name in declaration order; used by
// selectors and adjacency expansion that need a stable universe to iterate.
func (b *Builder) NodeNames() []string { return b.nodeOrder }

// Build freezes the accumulated nodes and links into an immutable Store,
// attaching the (already-validated) risk-group tree and computing the
// per-node adjacency index.
//
// Complexity: O(V + E log d) — neighbor lists are sorted by link ID for
// determinism.
func (b *Builder) Build(tree *riskgroup.Tree) (*Store, error) {
	if tree == nil {
		tree = riskgroup.NewTree()
	}

	s := &Store{
		nodeOrder: append([]string(nil), b.nodeOrder...),
		nodes:     make(map[string]*Node, len(b.nodes)),
		linkOrder: append([]string(nil), b.linkOrder...),
		links:     make(map[string]*Link, len(b.links)),
		outAdj:    make(map[string][]AdjEntry, len(b.nodes)),
		inAdj:     make(map[string][]AdjEntry, len(b.nodes)),
		riskTree:  tree,
	}

	for name, n := range b.nodes {
		cp := *n
		s.nodes[name] = &cp
		s.outAdj[name] = nil
		s.inAdj[name] = nil
	}

	for id, l := range b.links {
		if !s.hasNode(l.Source) {
			return nil, &ngerr.ValidationError{Entity: id, Msg: "link references unknown source node"}
		}
		if !s.hasNode(l.Target) {
			return nil, &ngerr.ValidationError{Entity: id, Msg: "link references unknown target node"}
		}
		cp := *l
		s.links[id] = &cp
	}

	for _, id := range s.linkOrder {
		l := s.links[id]
		s.outAdj[l.Source] = append(s.outAdj[l.Source], AdjEntry{LinkID: id, Neighbor: l.Target})
		s.inAdj[l.Target] = append(s.inAdj[l.Target], AdjEntry{LinkID: id, Neighbor: l.Source})
	}
	for _, entries := range s.outAdj {
		sortAdjEntries(entries)
	}
	for _, entries := range s.inAdj {
		sortAdjEntries(entries)
	}

	return s, nil
}

func (s *Store) hasNode(name string) bool {
	_, ok := s.nodes[name]
	return ok
}

func sortAdjEntries(entries []AdjEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].LinkID < entries[j].LinkID })
}

// Nodes returns every node in declaration order (§4.3 "nodes()").
func (s *Store) Nodes() []*Node {
	out := make([]*Node, len(s.nodeOrder))
	for i, name := range s.nodeOrder {
		out[i] = s.nodes[name]
	}
	return out
}

// Links returns every link in declaration order (§4.3 "links()").
func (s *Store) Links() []*Link {
	out := make([]*Link, len(s.linkOrder))
	for i, id := range s.linkOrder {
		out[i] = s.links[id]
	}
	return out
}

// NodeNames returns every node name in declaration order.
func (s *Store) NodeNames() []string { return append([]string(nil), s.nodeOrder...) }

// LinkIDs returns every link ID in declaration order.
func (s *Store) LinkIDs() []string { return append([]string(nil), s.linkOrder...) }

// Node looks up a node by name, returning (nil, false) if absent.
func (s *Store) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Link looks up a link by ID, returning (nil, false) if absent.
func (s *Store) Link(id string) (*Link, bool) {
	l, ok := s.links[id]
	return l, ok
}

// RiskGroupTree exposes the finalized risk-group tree (§3).
func (s *Store) RiskGroupTree() *riskgroup.Tree { return s.riskTree }

// Neighbors returns the (link-id, other-endpoint) pairs reachable directly
// from node, in stable link-ID order (§4.3 "neighbors(node)").
//
// Complexity: O(degree(node)).
func (s *Store) Neighbors(node string) []AdjEntry { return s.outAdj[node] }

// InNeighbors returns the (link-id, other-endpoint) pairs with node as
// their target.
func (s *Store) InNeighbors(node string) []AdjEntry { return s.inAdj[node] }
