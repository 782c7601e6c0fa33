package blueprint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/blueprint"
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/maxflow"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/topology"
)

func decodeDoc(t *testing.T, yamlDoc string) *scenario.Document {
	t.Helper()
	doc, err := scenario.Decode([]byte(yamlDoc))
	require.NoError(t, err)
	return doc
}

func namesWithPrefix(store *topology.Store, prefix string) []string {
	var out []string
	for _, n := range store.Nodes() {
		if strings.HasPrefix(n.Name, prefix) {
			out = append(out, n.Name)
		}
	}
	return out
}

// TestExpand_TwoTierClosPodsNotInterconnected mirrors S3's first half: two
// instances of a leaf/spine Clos pod with no inter-pod link yield zero
// max-flow between their leaves.
func TestExpand_TwoTierClosPodsNotInterconnected(t *testing.T) {
	doc := decodeDoc(t, `
blueprints:
  pod:
    groups:
      leaf:
        node_count: 4
      spine:
        node_count: 2
    adjacency:
      - source: {path: "leaf/.*"}
        target: {path: "spine/.*"}
        pattern: mesh
        capacity: 100
        cost: 1
network:
  groups:
    pod1:
      blueprint: pod
    pod2:
      blueprint: pod
`)

	store, warnings, err := blueprint.Expand(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Len(t, store.Nodes(), 12) // 2 pods * (4 leaf + 2 spine)
	assert.Len(t, store.Links(), 32) // 2 pods * (4 leaf * 2 spine mesh) * 2 directions per circuit

	view := topology.BaseView(store)
	pod1Leaves := namesWithPrefix(store, "pod1/leaf/")
	pod2Leaves := namesWithPrefix(store, "pod2/leaf/")
	require.Len(t, pod1Leaves, 4)
	require.Len(t, pod2Leaves, 4)

	res, err := maxflow.Compute(view, pod1Leaves, pod2Leaves, flowpolicy.Proportional(), flowpolicy.AnyPath)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalFlow)
}

// TestExpand_TwoTierClosWithInterSpineLink covers S3's second half: a
// one_to_one inter-spine adjacency at cap 400 connects the two pods,
// raising max-flow to 2*400 = 800.
func TestExpand_TwoTierClosWithInterSpineLink(t *testing.T) {
	doc := decodeDoc(t, `
blueprints:
  pod:
    groups:
      leaf:
        node_count: 4
      spine:
        node_count: 2
    adjacency:
      - source: {path: "leaf/.*"}
        target: {path: "spine/.*"}
        pattern: mesh
        capacity: 100
        cost: 1
network:
  groups:
    pod1:
      blueprint: pod
    pod2:
      blueprint: pod
  adjacency:
    - source: {path: "pod1/spine/.*"}
      target: {path: "pod2/spine/.*"}
      pattern: one_to_one
      capacity: 400
      cost: 1
`)

	store, _, err := blueprint.Expand(doc)
	require.NoError(t, err)

	view := topology.BaseView(store)
	pod1Leaves := namesWithPrefix(store, "pod1/leaf/")
	pod2Leaves := namesWithPrefix(store, "pod2/leaf/")

	res, err := maxflow.Compute(view, pod1Leaves, pod2Leaves, flowpolicy.Proportional(), flowpolicy.AnyPath)
	require.NoError(t, err)
	assert.InDelta(t, 800.0, res.TotalFlow, 1e-6)
}

// TestExpand_SquareMeshMaxFlow is S1: a 4-node square mesh where every
// one_to_one adjacency materializes as a pair of directed links (§3), so
// N1->N3 can route both directly and via N2 or N4. Unrestricted max-flow
// from N1 to N3 is 5 (direct=1, via N2=2, via N4=2) — unreachable under the
// old forward-only materialization, where N4 and N2 were dead ends for
// traffic returning toward N3.
func TestExpand_SquareMeshMaxFlow(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    N1: {}
    N2: {}
    N3: {}
    N4: {}
  adjacency:
    - source: {path: "N1"}
      target: {path: "N2"}
      pattern: one_to_one
      capacity: 2
      cost: 1
    - source: {path: "N1"}
      target: {path: "N3"}
      pattern: one_to_one
      capacity: 1
      cost: 1
    - source: {path: "N1"}
      target: {path: "N4"}
      pattern: one_to_one
      capacity: 2
      cost: 1
    - source: {path: "N2"}
      target: {path: "N3"}
      pattern: one_to_one
      capacity: 2
      cost: 1
    - source: {path: "N2"}
      target: {path: "N4"}
      pattern: one_to_one
      capacity: 1
      cost: 1
    - source: {path: "N3"}
      target: {path: "N4"}
      pattern: one_to_one
      capacity: 2
      cost: 1
`)

	store, _, err := blueprint.Expand(doc)
	require.NoError(t, err)

	view := topology.BaseView(store)

	any, err := maxflow.Compute(view, []string{"N1"}, []string{"N3"}, flowpolicy.Proportional(), flowpolicy.AnyPath)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, any.TotalFlow, 1e-6)

	// The direct N1->N3 edge (cost 1) is strictly cheaper than either
	// two-hop alternative (cost 2), so it alone forms the shortest-path DAG
	// into N3; restricted to shortest paths, flow is capped at its cap=1.
	ecmp, err := maxflow.Compute(view, []string{"N1"}, []string{"N3"}, flowpolicy.EqualBalanced(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ecmp.TotalFlow, 1e-6)
}

// TestExpand_BlueprintParamOverride is S4: a blueprint param override
// applies as a dot-path edit before the blueprint recurses, so the
// instantiated node sees the overridden value rather than the blueprint's
// own default.
func TestExpand_BlueprintParamOverride(t *testing.T) {
	doc := decodeDoc(t, `
blueprints:
  bp1:
    groups:
      leaf:
        node_count: 1
        attrs:
          x:
            y: 111
network:
  groups:
    Main:
      blueprint: bp1
      params:
        leaf.attrs.x.y: 999
`)

	store, _, err := blueprint.Expand(doc)
	require.NoError(t, err)

	n, ok := store.Node("Main/leaf/leaf-1")
	require.True(t, ok)
	y, ok := n.Attrs.Get("x.y")
	require.True(t, ok)
	assert.Equal(t, "999", y.String())
}

// TestExpand_BracketDeclarationKeysExpandToDistinctNodes confirms step 1's
// bracket expansion of declaration keys (§4.5) runs before materialization.
func TestExpand_BracketDeclarationKeysExpandToDistinctNodes(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    "N[1-3]": {}
`)

	store, _, err := blueprint.Expand(doc)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, n := range store.Nodes() {
		names[n.Name] = true
	}
	assert.True(t, names["N1"])
	assert.True(t, names["N2"])
	assert.True(t, names["N3"])
	assert.Len(t, store.Nodes(), 3)
}

// TestExpand_VarDeclarationKeysExpandAcrossVarsBindings confirms
// declaration keys referencing a vars anchor expand per the document's
// bound values.
func TestExpand_VarDeclarationKeysExpandAcrossVarsBindings(t *testing.T) {
	doc := decodeDoc(t, `
vars:
  idx: ["1", "2"]
network:
  groups:
    "N$idx": {}
`)

	store, _, err := blueprint.Expand(doc)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, n := range store.Nodes() {
		names[n.Name] = true
	}
	assert.True(t, names["N1"])
	assert.True(t, names["N2"])
	assert.Len(t, store.Nodes(), 2)
}

// TestExpand_OneToOneSizeMismatchIsFatal covers the "3-to-2 error" case of
// the adjacency contract (§4.5): neither group size divides the other.
func TestExpand_OneToOneSizeMismatchIsFatal(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    A:
      node_count: 3
    B:
      node_count: 2
  adjacency:
    - source: {path: "A/.*"}
      target: {path: "B/.*"}
      pattern: one_to_one
      capacity: 10
      cost: 1
`)

	_, _, err := blueprint.Expand(doc)
	require.Error(t, err)
}

// TestExpand_UnmatchedSelectorIsWarningNotError covers "Unmatched selectors
// -> warning; produce no edges" (§4.5).
func TestExpand_UnmatchedSelectorIsWarningNotError(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    A:
      node_count: 2
  adjacency:
    - source: {path: "A/.*"}
      target: {path: "nonexistent/.*"}
      pattern: mesh
      capacity: 10
      cost: 1
`)

	store, warnings, err := blueprint.Expand(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Empty(t, store.Links())
}
