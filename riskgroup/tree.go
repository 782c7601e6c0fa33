package riskgroup

import (
	"sort"

	"github.com/ngcore/netgraph/ngerr"
)

// Tree is a named, hierarchical risk-group index: group name -> parent name
// (empty for a root group), group name -> children, group name -> direct
// member entities. It is mutated during blueprint expansion (§4.5 step 6)
// and, like topology.Store, treated as read-only once materialization
// completes.
type Tree struct {
	parent   map[string]string // child group -> parent group ("" = root)
	children map[string][]string
	members  map[string][]EntityRef   // group -> direct members, insertion order
	groupsOf map[EntityRef][]string   // entity -> groups it directly belongs to
	declared map[string]bool          // every group name ever declared
}

// NewTree constructs an empty risk-group tree.
func NewTree() *Tree {
	return &Tree{
		parent:   map[string]string{},
		children: map[string][]string{},
		members:  map[string][]EntityRef{},
		groupsOf: map[EntityRef][]string{},
		declared: map[string]bool{},
	}
}

// AddGroup declares a group with the given parent ("" for a root group).
// Declaring the same group name twice is an error (risk-group names are
// unique across the tree, §3 invariant).
func (t *Tree) AddGroup(name, parentName string) error {
	if t.declared[name] {
		return &ngerr.ValidationError{Entity: name, Msg: "duplicate risk-group name"}
	}
	t.declared[name] = true
	t.parent[name] = parentName
	if parentName != "" {
		t.children[parentName] = append(t.children[parentName], name)
	}
	return nil
}

// AddMember records entity as a direct member of group. group must already
// be declared via AddGroup; membership in an undeclared group is a
// ValidationError (every entity reference must name a declared group,
// §4.5 step 6).
func (t *Tree) AddMember(group string, entity EntityRef) error {
	if !t.declared[group] {
		return &ngerr.ValidationError{Entity: group, Msg: "reference to undeclared risk group"}
	}
	t.members[group] = append(t.members[group], entity)
	t.groupsOf[entity] = append(t.groupsOf[entity], group)
	return nil
}

// Declared reports whether name has been declared via AddGroup.
func (t *Tree) Declared(name string) bool { return t.declared[name] }

// Names returns every declared group name in lexicographic order.
func (t *Tree) Names() []string {
	out := make([]string, 0, len(t.declared))
	for name := range t.declared {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Children returns the direct child group names of name, in declaration
// order.
func (t *Tree) Children(name string) []string { return t.children[name] }

// Parent returns the parent group name of name, or "" if name is a root.
func (t *Tree) Parent(name string) string { return t.parent[name] }

// Members returns the direct member entities of group, in declaration
// order.
func (t *Tree) Members(group string) []EntityRef { return t.members[group] }

// GroupsOf returns the groups entity directly belongs to.
func (t *Tree) GroupsOf(entity EntityRef) []string { return t.groupsOf[entity] }

// Descendants returns every group reachable from name by following child
// edges (not including name itself), via a breadth-first frontier walk in
// the manner of lvlath/bfs's level-order traversal.
func (t *Tree) Descendants(name string) []string {
	var out []string
	frontier := []string{name}
	visited := map[string]bool{name: true}
	for len(frontier) > 0 {
		var next []string
		for _, cur := range frontier {
			for _, child := range t.children[cur] {
				if visited[child] {
					continue
				}
				visited[child] = true
				out = append(out, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	return out
}

// Validate checks that every declared parent reference names a declared
// group and that the tree is acyclic, using the same three-color
// (white/gray/black) DFS lvlath/dfs.DetectCycles uses for general graphs,
// specialized to the parent/child tree shape.
func (t *Tree) Validate() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[string]int, len(t.declared))

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = gray
		for _, child := range t.children[name] {
			switch state[child] {
			case white:
				if err := visit(child); err != nil {
					return err
				}
			case gray:
				return &ngerr.ValidationError{Entity: name, Msg: "risk-group cycle detected (via " + child + ")"}
			}
		}
		state[name] = black
		return nil
	}

	for _, name := range t.Names() {
		if parent := t.parent[name]; parent != "" && !t.declared[parent] {
			return &ngerr.ValidationError{Entity: name, Msg: "parent risk group " + parent + " is not declared"}
		}
	}
	for _, name := range t.Names() {
		if state[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}
