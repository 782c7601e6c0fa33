package failure_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/failure"
	"github.com/ngcore/netgraph/riskgroup"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/topology"
)

func buildStore(t *testing.T, tree *riskgroup.Tree) *topology.Store {
	t.Helper()
	b := topology.NewBuilder()
	require.NoError(t, b.AddNode("A", attrval.Map(nil), false))
	require.NoError(t, b.AddNode("B", attrval.Map(nil), false))
	require.NoError(t, b.AddNode("C", attrval.Map(nil), false))
	require.NoError(t, b.AddLink("l1", "A", "B", 10, 1, attrval.Map(map[string]attrval.Value{"weight": attrval.Number(5)}), false))
	require.NoError(t, b.AddLink("l2", "B", "C", 10, 1, attrval.Map(map[string]attrval.Value{"weight": attrval.Number(1)}), false))
	require.NoError(t, b.AddLink("l3", "A", "C", 10, 1, attrval.Map(nil), false))
	store, err := b.Build(tree)
	require.NoError(t, err)
	return store
}

func TestBuild_RejectsUnknownScopeAndMode(t *testing.T) {
	_, err := failure.Build(scenario.FailurePolicyDef{
		Name:  "bad",
		Modes: []scenario.FailureModeDef{{Weight: 1, Rules: []scenario.FailureRuleDef{{Scope: "planet", Mode: "all"}}}},
	})
	assert.Error(t, err)

	_, err = failure.Build(scenario.FailurePolicyDef{
		Name:  "bad",
		Modes: []scenario.FailureModeDef{{Weight: 1, Rules: []scenario.FailureRuleDef{{Scope: "link", Mode: "explode"}}}},
	})
	assert.Error(t, err)
}

func TestBuild_RejectsWeightByOnNonChoiceRule(t *testing.T) {
	_, err := failure.Build(scenario.FailurePolicyDef{
		Name: "bad",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "all", WeightBy: "weight"}},
		}},
	})
	assert.Error(t, err)
}

func TestBuild_RejectsMissingCountOrProbability(t *testing.T) {
	_, err := failure.Build(scenario.FailurePolicyDef{
		Name: "bad",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "choice"}},
		}},
	})
	assert.Error(t, err)

	_, err = failure.Build(scenario.FailurePolicyDef{
		Name: "bad",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "random"}},
		}},
	})
	assert.Error(t, err)
}

func TestSelect_AllModeFailsEveryMatch(t *testing.T) {
	store := buildStore(t, nil)
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name: "all-links",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "all"}},
		}},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(1)))
	assert.Len(t, res.FailedLinks, 3)
	assert.Empty(t, res.FailedNodes)
}

func TestSelect_ChoiceModeRespectsCount(t *testing.T) {
	store := buildStore(t, nil)
	count := 2
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name: "choice-links",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "choice", Count: &count}},
		}},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(42)))
	assert.Len(t, res.FailedLinks, 2)
}

func TestSelect_ChoiceModePrefersPositiveWeight(t *testing.T) {
	store := buildStore(t, nil)
	count := 1
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name: "weighted-choice",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "choice", Count: &count, WeightBy: "weight"}},
		}},
	})
	require.NoError(t, err)

	hitL3 := false // l3 has no weight attribute and should be picked last, if ever
	for seed := int64(0); seed < 50; seed++ {
		res := failure.Select(policy, store, rand.New(rand.NewSource(seed)))
		if res.FailedLinks["l3"] {
			hitL3 = true
		}
	}
	assert.False(t, hitL3, "l3 carries no weight attribute and should never win a single-pick choice rule against weighted peers")
}

func TestSelect_RandomModeIsPerEntityBernoulli(t *testing.T) {
	store := buildStore(t, nil)
	prob := 1.0
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name: "random-links",
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "random", Probability: &prob}},
		}},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(7)))
	assert.Len(t, res.FailedLinks, 3, "probability 1.0 must fail every matched link")
}

func TestSelect_ModeChoiceSkipsNonPositiveWeights(t *testing.T) {
	store := buildStore(t, nil)
	count := 3
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name: "two-modes",
		Modes: []scenario.FailureModeDef{
			{Weight: 0, Rules: []scenario.FailureRuleDef{{Scope: "node", Mode: "all"}}},
			{Weight: 1, Rules: []scenario.FailureRuleDef{{Scope: "link", Mode: "choice", Count: &count}}},
		},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(3)))
	assert.Equal(t, 1, res.ModeIndex, "the zero-weight mode must never be chosen")
	assert.Empty(t, res.FailedNodes)
	assert.Len(t, res.FailedLinks, 3)
}

func TestSelect_RiskGroupScopeExpandsMembersAndChildren(t *testing.T) {
	tree := riskgroup.NewTree()
	require.NoError(t, tree.AddGroup("site", ""))
	require.NoError(t, tree.AddGroup("site/power", "site"))
	require.NoError(t, tree.AddMember("site/power", riskgroup.Link("l1")))
	require.NoError(t, tree.AddMember("site/power", riskgroup.Link("l2")))
	require.NoError(t, tree.Validate())
	store := buildStore(t, tree)

	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name:           "site-outage",
		ExpandChildren: true,
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "risk_group", Mode: "all", PathRegex: "^site$"}},
		}},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(9)))
	assert.True(t, res.FailedLinks["l1"])
	assert.True(t, res.FailedLinks["l2"])
}

func TestSelect_ExpandGroupsClosesSharedRiskGroup(t *testing.T) {
	tree := riskgroup.NewTree()
	require.NoError(t, tree.AddGroup("conduit", ""))
	require.NoError(t, tree.AddMember("conduit", riskgroup.Link("l1")))
	require.NoError(t, tree.AddMember("conduit", riskgroup.Link("l3")))
	require.NoError(t, tree.Validate())
	store := buildStore(t, tree)

	count := 1
	policy, err := failure.Build(scenario.FailurePolicyDef{
		Name:         "shared-conduit",
		ExpandGroups: true,
		Modes: []scenario.FailureModeDef{{
			Weight: 1,
			Rules:  []scenario.FailureRuleDef{{Scope: "link", Mode: "choice", Count: &count, PathRegex: "^l1$"}},
		}},
	})
	require.NoError(t, err)

	res := failure.Select(policy, store, rand.New(rand.NewSource(1)))
	assert.True(t, res.FailedLinks["l1"])
	assert.True(t, res.FailedLinks["l3"], "l3 shares the conduit risk group with l1 and must be pulled in by expand_groups")
}

func TestResult_PatternKeyIsOrderIndependent(t *testing.T) {
	a := &failure.Result{FailedNodes: map[string]bool{"x": true, "y": true}, FailedLinks: map[string]bool{}}
	b := &failure.Result{FailedNodes: map[string]bool{"y": true, "x": true}, FailedLinks: map[string]bool{}}
	assert.Equal(t, a.PatternKey(), b.PatternKey())

	empty := &failure.Result{FailedNodes: map[string]bool{}, FailedLinks: map[string]bool{}}
	assert.Equal(t, "baseline", empty.PatternKey())
}
