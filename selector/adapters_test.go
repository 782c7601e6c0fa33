package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

func TestNodeEntities_DisabledIsInactive(t *testing.T) {
	nodes := []*topology.Node{
		{Name: "n1", Attrs: attrval.Null(), Disabled: false},
		{Name: "n2", Attrs: attrval.Null(), Disabled: true},
	}
	entities := selector.NodeEntities(nodes)
	assert.True(t, entities[0].Active)
	assert.False(t, entities[1].Active)
}

func TestLinkEntities_NameIsID(t *testing.T) {
	links := []*topology.Link{
		{ID: "E1", Source: "n1", Target: "n2", Attrs: attrval.Null()},
	}
	entities := selector.LinkEntities(links)
	assert.Equal(t, "E1", entities[0].Name)
}

func TestGroupEntities_SortedAndActive(t *testing.T) {
	entities := selector.GroupEntities([]string{"b", "a"})
	assert.Equal(t, "a", entities[0].Name)
	assert.Equal(t, "b", entities[1].Name)
	assert.True(t, entities[0].Active)
}
