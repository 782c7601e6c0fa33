package riskgroup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/riskgroup"
)

func TestTree_CycleDetection(t *testing.T) {
	tr := riskgroup.NewTree()
	require.NoError(t, tr.AddGroup("A", ""))
	require.NoError(t, tr.AddGroup("B", "A"))

	// An acyclic chain validates; a dangling parent does not.
	assert.NoError(t, tr.Validate())

	tr2 := riskgroup.NewTree()
	require.NoError(t, tr2.AddGroup("A", "ghost"))
	err := tr2.Validate()
	assert.Error(t, err)

	// AddGroup accepts a parent that is not yet declared, so two groups
	// naming each other as parent form a cycle that Validate rejects.
	tr3 := riskgroup.NewTree()
	require.NoError(t, tr3.AddGroup("A", "B"))
	require.NoError(t, tr3.AddGroup("B", "A"))
	assert.Error(t, tr3.Validate())
}

func TestTree_DuplicateGroupRejected(t *testing.T) {
	tr := riskgroup.NewTree()
	require.NoError(t, tr.AddGroup("A", ""))
	err := tr.AddGroup("A", "")
	assert.Error(t, err)
}

func TestTree_MemberOfUndeclaredGroupRejected(t *testing.T) {
	tr := riskgroup.NewTree()
	err := tr.AddMember("ghost", riskgroup.Node("n1"))
	assert.Error(t, err)
}

func TestTree_Descendants(t *testing.T) {
	tr := riskgroup.NewTree()
	require.NoError(t, tr.AddGroup("root", ""))
	require.NoError(t, tr.AddGroup("child1", "root"))
	require.NoError(t, tr.AddGroup("child2", "root"))
	require.NoError(t, tr.AddGroup("grandchild", "child1"))

	desc := tr.Descendants("root")
	assert.ElementsMatch(t, []string{"child1", "child2", "grandchild"}, desc)
}

func TestExpandSharedGroups(t *testing.T) {
	tr := riskgroup.NewTree()
	require.NoError(t, tr.AddGroup("G", ""))
	l1 := riskgroup.Link("L1")
	l2 := riskgroup.Link("L2")
	l3 := riskgroup.Link("L3")
	require.NoError(t, tr.AddMember("G", l1))
	require.NoError(t, tr.AddMember("G", l2))
	require.NoError(t, tr.AddMember("G", l3))

	seed := map[riskgroup.EntityRef]bool{l1: true}
	closed := riskgroup.ExpandSharedGroups(tr, seed)

	assert.True(t, closed[l1])
	assert.True(t, closed[l2])
	assert.True(t, closed[l3])
}

func TestExpandChildGroups(t *testing.T) {
	tr := riskgroup.NewTree()
	require.NoError(t, tr.AddGroup("root", ""))
	require.NoError(t, tr.AddGroup("child", "root"))
	require.NoError(t, tr.AddGroup("grandchild", "child"))

	seed := map[string]bool{"root": true}
	closed := riskgroup.ExpandChildGroups(tr, seed)
	assert.True(t, closed["root"])
	assert.True(t, closed["child"])
	assert.True(t, closed["grandchild"])
}
