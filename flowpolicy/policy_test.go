package flowpolicy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/flowpolicy"
)

func TestProportional_SplitsByCapacity(t *testing.T) {
	edges := []flowpolicy.Weight{{EdgeID: "e1", Cap: 1}, {EdgeID: "e2", Cap: 3}}
	shares := flowpolicy.Proportional().Split(edges)
	assert.InDelta(t, 0.25, shares[0], 1e-9)
	assert.InDelta(t, 0.75, shares[1], 1e-9)
}

func TestProportional_ZeroTotalCapacityYieldsZeroShares(t *testing.T) {
	edges := []flowpolicy.Weight{{EdgeID: "e1", Cap: 0}, {EdgeID: "e2", Cap: 0}}
	shares := flowpolicy.Proportional().Split(edges)
	assert.Equal(t, []float64{0, 0}, shares)
}

func TestEqualBalanced_SplitsEvenlyAmongPositiveCapacityEdges(t *testing.T) {
	edges := []flowpolicy.Weight{{EdgeID: "e1", Cap: 1}, {EdgeID: "e2", Cap: 100}, {EdgeID: "e3", Cap: 0}}
	shares := flowpolicy.EqualBalanced().Split(edges)
	assert.InDelta(t, 0.5, shares[0], 1e-9)
	assert.InDelta(t, 0.5, shares[1], 1e-9)
	assert.Equal(t, 0.0, shares[2])
}

func TestSortWeights_OrdersByEdgeIDAscending(t *testing.T) {
	edges := []flowpolicy.Weight{{EdgeID: "e2"}, {EdgeID: "e1"}, {EdgeID: "e10"}}
	flowpolicy.SortWeights(edges)
	assert.Equal(t, []string{"e1", "e10", "e2"}, []string{edges[0].EdgeID, edges[1].EdgeID, edges[2].EdgeID})
}

func TestByName_ResolvesAllPresetsAndRejectsUnknown(t *testing.T) {
	p, err := flowpolicy.ByName("SHORTEST_PATHS_ECMP")
	require.NoError(t, err)
	assert.Equal(t, flowpolicy.ShortestPathsOnly, p.Mode)
	assert.True(t, p.Cacheable())

	p, err = flowpolicy.ByName("TE_ECMP_16_LSP")
	require.NoError(t, err)
	assert.Equal(t, 16, p.BundleLimit)
	assert.False(t, p.Cacheable())

	p, err = flowpolicy.ByName("TE_WCMP_UNLIM")
	require.NoError(t, err)
	assert.Equal(t, flowpolicy.AnyPath, p.Mode)
	assert.True(t, p.Cacheable(), "TE_WCMP_UNLIM does not truncate by bundle size, so it is cacheable like the IGP presets")

	_, err = flowpolicy.ByName("NOT_A_PRESET")
	assert.Error(t, err)
}
