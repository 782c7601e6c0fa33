package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/riskgroup"
	"github.com/ngcore/netgraph/topology"
)

func buildSquare(t *testing.T) *topology.Store {
	t.Helper()
	b := topology.NewBuilder()
	for _, n := range []string{"N1", "N2", "N3", "N4"} {
		require.NoError(t, b.AddNode(n, attrval.Map(nil), false))
	}
	type edge struct {
		id, src, dst string
		cap, cost    float64
	}
	edges := []edge{
		{"E12", "N1", "N2", 2, 1},
		{"E13", "N1", "N3", 1, 1},
		{"E14", "N1", "N4", 2, 1},
		{"E23", "N2", "N3", 2, 1},
		{"E24", "N2", "N4", 1, 1},
		{"E34", "N3", "N4", 2, 1},
	}
	for _, e := range edges {
		require.NoError(t, b.AddLink(e.id, e.src, e.dst, e.cap, e.cost, attrval.Map(nil), false))
	}
	store, err := b.Build(riskgroup.NewTree())
	require.NoError(t, err)
	return store
}

func TestStore_GraphIntegrity(t *testing.T) {
	store := buildSquare(t)
	assert.Len(t, store.Nodes(), 4)
	assert.Len(t, store.Links(), 6)

	for _, l := range store.Links() {
		_, srcOK := store.Node(l.Source)
		_, dstOK := store.Node(l.Target)
		assert.True(t, srcOK)
		assert.True(t, dstOK)
	}
}

func TestStore_AddLinkUnknownNodeFails(t *testing.T) {
	b := topology.NewBuilder()
	require.NoError(t, b.AddNode("N1", attrval.Map(nil), false))
	err := b.AddLink("E1", "N1", "ghost", 1, 1, attrval.Map(nil), false)
	assert.Error(t, err)
}

func TestStore_DuplicateNodeFails(t *testing.T) {
	b := topology.NewBuilder()
	require.NoError(t, b.AddNode("N1", attrval.Map(nil), false))
	err := b.AddNode("N1", attrval.Map(nil), false)
	assert.Error(t, err)
}

func TestStore_Neighbors(t *testing.T) {
	store := buildSquare(t)
	neighbors := store.Neighbors("N1")
	assert.Len(t, neighbors, 3)
}

func TestStore_Stats(t *testing.T) {
	store := buildSquare(t)
	nodeCount, linkCount, perNode := store.Stats()
	assert.Equal(t, 4, nodeCount)
	assert.Equal(t, 6, linkCount)
	assert.Equal(t, 3, perNode["N1"].OutDegree)
	assert.Equal(t, float64(5), perNode["N1"].OutCapacity)
}
