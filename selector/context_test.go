package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/selector"
)

func TestBuild_RequiresAtLeastOneField(t *testing.T) {
	_, err := selector.Build(selector.ContextAdjacency, selector.Raw{})
	assert.Error(t, err)
}

func TestBuild_PathIsAnchoredAndLeadingSlashStripped(t *testing.T) {
	sel, err := selector.Build(selector.ContextAdjacency, selector.Raw{Path: "/dc1/.*"})
	require.NoError(t, err)
	assert.True(t, sel.Path.MatchString("dc1/leaf1"))
	assert.False(t, sel.Path.MatchString("xdc1/leaf1"))
}

func TestBuild_DefaultLogicAndActiveOnlyVaryByContext(t *testing.T) {
	memberSel, err := selector.Build(selector.ContextMembershipRule, selector.Raw{
		Match: &selector.RawMatch{Conditions: []selector.Condition{{Attr: "x", Op: selector.OpExists}}},
	})
	require.NoError(t, err)
	assert.Equal(t, selector.LogicAnd, memberSel.Match.Logic)
	assert.False(t, memberSel.ActiveOnly)

	demandSel, err := selector.Build(selector.ContextDemand, selector.Raw{Path: "/.*"})
	require.NoError(t, err)
	assert.True(t, demandSel.ActiveOnly)
	assert.True(t, demandSel.CaptureGrouping)

	failureSel, err := selector.Build(selector.ContextFailureRule, selector.Raw{
		Match: &selector.RawMatch{Conditions: []selector.Condition{{Attr: "x", Op: selector.OpExists}}},
	})
	require.NoError(t, err)
	assert.Equal(t, selector.LogicOr, failureSel.Match.Logic)
	assert.False(t, failureSel.CaptureGrouping)
}

func TestBuild_ExplicitActiveOnlyOverridesDefault(t *testing.T) {
	no := false
	sel, err := selector.Build(selector.ContextDemand, selector.Raw{Path: "/.*", ActiveOnly: &no})
	require.NoError(t, err)
	assert.False(t, sel.ActiveOnly)
}
