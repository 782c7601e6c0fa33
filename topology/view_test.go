package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngcore/netgraph/topology"
)

func TestView_MasksNodeAndIncidentLinks(t *testing.T) {
	store := buildSquare(t)
	view := topology.NewView(store, map[string]bool{"N2": true}, nil)

	assert.True(t, view.IsNodeMasked("N2"))
	// E12, E23, E24 all touch N2 and must be implicitly masked.
	assert.True(t, view.IsLinkMasked("E12"))
	assert.True(t, view.IsLinkMasked("E23"))
	assert.True(t, view.IsLinkMasked("E24"))
	assert.False(t, view.IsLinkMasked("E13"))
	assert.False(t, view.IsLinkMasked("E34"))

	assert.Empty(t, view.Neighbors("N2"))
	assert.Len(t, view.Nodes(), 3)
}

func TestView_WithAdditionalMaskIsIndependent(t *testing.T) {
	store := buildSquare(t)
	base := topology.NewView(store, map[string]bool{"N2": true}, nil)
	extended := base.WithAdditionalMask(map[string]bool{"N3": true}, nil)

	assert.False(t, base.IsNodeMasked("N3"))
	assert.True(t, extended.IsNodeMasked("N2"))
	assert.True(t, extended.IsNodeMasked("N3"))
}

func TestBaseView_MasksDisabledEntities(t *testing.T) {
	store := buildSquare(t)
	view := topology.BaseView(store)
	assert.False(t, view.IsNodeMasked("N1"))
}
