package maxflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/maxflow"
	"github.com/ngcore/netgraph/riskgroup"
	"github.com/ngcore/netgraph/topology"
)

// buildDiamond mirrors spf's diamond fixture: N1 -> {N2,N3} -> N4 at cost 1
// per edge (E12 and E13 capacity 5, E24 capacity 3, E34 capacity 2), with a
// long direct N1->N4 edge of capacity 5 and cost 10.
func buildDiamond(t *testing.T) *topology.Store {
	t.Helper()
	b := topology.NewBuilder()
	for _, n := range []string{"N1", "N2", "N3", "N4"} {
		require.NoError(t, b.AddNode(n, attrval.Map(nil), false))
	}
	require.NoError(t, b.AddLink("E12", "N1", "N2", 5, 1, attrval.Map(nil), false))
	require.NoError(t, b.AddLink("E13", "N1", "N3", 5, 1, attrval.Map(nil), false))
	require.NoError(t, b.AddLink("E24", "N2", "N4", 3, 1, attrval.Map(nil), false))
	require.NoError(t, b.AddLink("E34", "N3", "N4", 2, 1, attrval.Map(nil), false))
	require.NoError(t, b.AddLink("E14long", "N1", "N4", 5, 10, attrval.Map(nil), false))
	store, err := b.Build(riskgroup.NewTree())
	require.NoError(t, err)
	return store
}

func TestCompute_ShortestPathsWCMPSaturatesBothBranches(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1"}, []string{"N4"}, flowpolicy.Proportional(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, res.TotalFlow, 1e-6) // N1->N2->N4 (3) + N1->N3->N4 (2), long edge excluded
	assert.InDelta(t, 0, res.ResidualCapacities["E24"], 1e-6)
	assert.InDelta(t, 0, res.ResidualCapacities["E34"], 1e-6)
	assert.InDelta(t, 5, res.ResidualCapacities["E14long"], 1e-6) // never eligible: not on the cost-DAG
}

func TestCompute_AnyPathUsesLongEdgeTooWhenShortPathSaturates(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1"}, []string{"N4"}, flowpolicy.Proportional(), flowpolicy.AnyPath)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, res.TotalFlow, 1e-6) // 5 via short DAG + 5 via the long edge, which saturates
	assert.InDelta(t, 0, res.ResidualCapacities["E14long"], 1e-6)
}

func TestCompute_SourceSinkOverlapReturnsZeroFlow(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1", "N4"}, []string{"N4"}, flowpolicy.Proportional(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalFlow)
	assert.Empty(t, res.MinCutEdges)
}

func TestCompute_DisconnectedSourceSinkReturnsZero(t *testing.T) {
	b := topology.NewBuilder()
	require.NoError(t, b.AddNode("A", attrval.Map(nil), false))
	require.NoError(t, b.AddNode("B", attrval.Map(nil), false))
	store, err := b.Build(riskgroup.NewTree())
	require.NoError(t, err)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"A"}, []string{"B"}, flowpolicy.Proportional(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalFlow)
	assert.True(t, res.ReachableFromSource["A"])
	assert.False(t, res.ReachableFromSource["B"])
}

func TestCompute_EqualBalancedSplitsEvenlyAndIsBottlenecked(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1"}, []string{"N4"}, flowpolicy.EqualBalanced(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)
	// ECMP splits 50/50 at N1; the N3->N4 branch (capacity 2) bottlenecks
	// both branches to 2 each once N1's split is equalized end to end.
	assert.InDelta(t, 4.0, res.TotalFlow, 1e-6)
}

func TestCompute_CostDistributionSumsToTotalFlow(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1"}, []string{"N4"}, flowpolicy.Proportional(), flowpolicy.AnyPath)
	require.NoError(t, err)

	sum := 0.0
	for _, f := range res.CostDistribution {
		sum += f
	}
	assert.InDelta(t, res.TotalFlow, sum, 1e-6)
}

func TestResult_SensitivityReflectsCapacityBump(t *testing.T) {
	store := buildDiamond(t)
	view := topology.BaseView(store)

	res, err := maxflow.Compute(view, []string{"N1"}, []string{"N4"}, flowpolicy.Proportional(), flowpolicy.ShortestPathsOnly)
	require.NoError(t, err)

	delta := res.Sensitivity([]string{"E34"}, 10)
	assert.Greater(t, delta["E34"], 0.0)
}
