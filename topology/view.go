package topology

// View is a read-only, zero-copy overlay on a Store that masks a set of
// node names and a set of link IDs (§4.4). A link is implicitly masked if
// either endpoint is masked. Views hold no reference-counted state and
// perform no mutation of the underlying Store, so arbitrarily many may
// coexist across concurrent Monte Carlo workers (§5: "Network Views are
// lightweight readers; they hold additional exclusion sets. Many views may
// coexist.").
type View struct {
	store        *Store
	maskedNodes  map[string]bool
	maskedLinks  map[string]bool
}

// NewView constructs a View over store, masking exactly the given node
// names and link IDs. Either set may be nil. The union of scenario-level
// `disabled` flags and analysis-time failure masks is the caller's
// responsibility to pre-compute into maskedNodes/maskedLinks (§4.4).
func NewView(store *Store, maskedNodes, maskedLinks map[string]bool) *View {
	if maskedNodes == nil {
		maskedNodes = map[string]bool{}
	}
	if maskedLinks == nil {
		maskedLinks = map[string]bool{}
	}
	return &View{store: store, maskedNodes: maskedNodes, maskedLinks: maskedLinks}
}

// BaseView constructs a View that masks every node/link whose Disabled flag
// is set (the scenario-level portion of §4.4's exclusion union), and
// nothing else.
func BaseView(store *Store) *View {
	maskedNodes := map[string]bool{}
	for _, n := range store.Nodes() {
		if n.Disabled {
			maskedNodes[n.Name] = true
		}
	}
	maskedLinks := map[string]bool{}
	for _, l := range store.Links() {
		if l.Disabled {
			maskedLinks[l.ID] = true
		}
	}
	return NewView(store, maskedNodes, maskedLinks)
}

// Store returns the underlying Graph Store.
func (v *View) Store() *Store { return v.store }

// WithAdditionalMask returns a new View over the same Store with
// extraNodes/extraLinks unioned into the existing exclusion sets — the
// mechanism by which the Monte Carlo Orchestrator layers a failure pattern
// on top of the scenario-level disabled set, without ever mutating the base
// View or Store.
//
// Complexity: O(|extraNodes| + |extraLinks|) plus the size of the existing
// exclusion sets (a fresh copy is taken so the result is independent of the
// receiver).
func (v *View) WithAdditionalMask(extraNodes, extraLinks map[string]bool) *View {
	nodes := make(map[string]bool, len(v.maskedNodes)+len(extraNodes))
	for n := range v.maskedNodes {
		nodes[n] = true
	}
	for n := range extraNodes {
		nodes[n] = true
	}
	links := make(map[string]bool, len(v.maskedLinks)+len(extraLinks))
	for l := range v.maskedLinks {
		links[l] = true
	}
	for l := range extraLinks {
		links[l] = true
	}
	return NewView(v.store, nodes, links)
}

// IsNodeMasked reports whether name is excluded from this view.
func (v *View) IsNodeMasked(name string) bool { return v.maskedNodes[name] }

// IsLinkMasked reports whether id is excluded from this view, either
// directly or because either of its endpoints is masked.
func (v *View) IsLinkMasked(id string) bool {
	if v.maskedLinks[id] {
		return true
	}
	l, ok := v.store.Link(id)
	if !ok {
		return true
	}
	return v.maskedNodes[l.Source] || v.maskedNodes[l.Target]
}

// Nodes returns every unmasked node, in the Store's declaration order.
func (v *View) Nodes() []*Node {
	all := v.store.Nodes()
	out := make([]*Node, 0, len(all))
	for _, n := range all {
		if !v.IsNodeMasked(n.Name) {
			out = append(out, n)
		}
	}
	return out
}

// Links returns every unmasked link, in the Store's declaration order.
func (v *View) Links() []*Link {
	all := v.store.Links()
	out := make([]*Link, 0, len(all))
	for _, l := range all {
		if !v.IsLinkMasked(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

// Neighbors returns the unmasked (link-id, other-endpoint) pairs reachable
// directly from node. Returns nil if node itself is masked.
//
// Complexity: O(degree(node)).
func (v *View) Neighbors(node string) []AdjEntry {
	if v.IsNodeMasked(node) {
		return nil
	}
	all := v.store.Neighbors(node)
	out := make([]AdjEntry, 0, len(all))
	for _, e := range all {
		if !v.IsLinkMasked(e.LinkID) {
			out = append(out, e)
		}
	}
	return out
}

// InNeighbors returns the unmasked (link-id, other-endpoint) pairs with
// node as their target. Returns nil if node itself is masked.
func (v *View) InNeighbors(node string) []AdjEntry {
	if v.IsNodeMasked(node) {
		return nil
	}
	all := v.store.InNeighbors(node)
	out := make([]AdjEntry, 0, len(all))
	for _, e := range all {
		if !v.IsLinkMasked(e.LinkID) {
			out = append(out, e)
		}
	}
	return out
}
