package failure

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ngcore/netgraph/riskgroup"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// Select runs one iteration of the Failure Policy Engine (§4.10) against
// store, drawing every random decision from rng. Selection is a pure
// function of (policy, graph, PRNG state); seeding is the caller's
// responsibility (the Monte Carlo Orchestrator derives one rng per
// iteration, §4.11 step 1).
func Select(policy *Policy, store *topology.Store, rng *rand.Rand) *Result {
	res := &Result{FailedNodes: map[string]bool{}, FailedLinks: map[string]bool{}}
	if policy == nil || len(policy.Modes) == 0 {
		return res
	}

	modeIdx := chooseMode(policy.Modes, rng)
	res.ModeIndex = modeIdx
	mode := policy.Modes[modeIdx]

	nodeUniverse := selector.NodeEntities(store.Nodes())
	linkUniverse := selector.LinkEntities(store.Links())
	failedGroups := map[string]bool{}
	var groupUniverse []selector.Entity
	if tree := store.RiskGroupTree(); tree != nil {
		groupUniverse = selector.GroupEntities(tree.Names())
	}

	trace := policy.Trace()
	var traceLines []string

	for _, r := range mode.Rules {
		var universe []selector.Entity
		switch r.Scope {
		case ScopeNode:
			universe = nodeUniverse
		case ScopeLink:
			universe = linkUniverse
		case ScopeRiskGroup:
			universe = groupUniverse
		}

		var matched []selector.Entity
		for _, g := range selector.Resolve(universe, r.Sel) {
			matched = append(matched, g.Entities...)
		}

		for _, e := range applyRuleMode(r, matched, rng) {
			switch r.Scope {
			case ScopeNode:
				res.FailedNodes[e.Name] = true
			case ScopeLink:
				res.FailedLinks[e.Name] = true
			case ScopeRiskGroup:
				failedGroups[e.Name] = true
			}
			if trace {
				traceLines = append(traceLines, string(r.Scope)+":"+e.Name)
			}
		}
	}

	if tree := store.RiskGroupTree(); tree != nil && len(failedGroups) > 0 {
		if policy.ExpandChildren {
			failedGroups = riskgroup.ExpandChildGroups(tree, failedGroups)
		}
		for ref := range riskgroup.MembersOfGroups(tree, failedGroups) {
			applyRef(res, ref)
		}
	}

	if policy.ExpandGroups {
		if tree := store.RiskGroupTree(); tree != nil {
			seed := map[riskgroup.EntityRef]bool{}
			for n := range res.FailedNodes {
				seed[riskgroup.Node(n)] = true
			}
			for l := range res.FailedLinks {
				seed[riskgroup.Link(l)] = true
			}
			for ref := range riskgroup.ExpandSharedGroups(tree, seed) {
				applyRef(res, ref)
			}
		}
	}

	if trace {
		sort.Strings(traceLines)
		res.Trace = traceLines
	}
	return res
}

func applyRef(res *Result, ref riskgroup.EntityRef) {
	switch ref.Kind {
	case riskgroup.NodeEntity:
		res.FailedNodes[ref.ID] = true
	case riskgroup.LinkEntity:
		res.FailedLinks[ref.ID] = true
	}
}

// chooseMode picks one mode index by weighted choice (§4.10 step 1): modes
// with non-positive weight are never chosen, and if all weights are
// non-positive the first mode is used unconditionally.
func chooseMode(modes []Mode, rng *rand.Rand) int {
	total := 0.0
	for _, m := range modes {
		if m.Weight > 0 {
			total += m.Weight
		}
	}
	if total <= 0 {
		return 0
	}
	draw := rng.Float64() * total
	cum := 0.0
	for i, m := range modes {
		if m.Weight <= 0 {
			continue
		}
		cum += m.Weight
		if draw < cum {
			return i
		}
	}
	for i := len(modes) - 1; i >= 0; i-- {
		if modes[i].Weight > 0 {
			return i
		}
	}
	return 0
}

func applyRuleMode(r Rule, matched []selector.Entity, rng *rand.Rand) []selector.Entity {
	switch r.Mode {
	case RuleAll:
		return matched
	case RuleChoice:
		return chooseN(matched, r.Count, r.WeightBy, rng)
	case RuleRandom:
		var out []selector.Entity
		for _, e := range matched {
			if rng.Float64() < r.Probability {
				out = append(out, e)
			}
		}
		return out
	default:
		return nil
	}
}

// chooseN samples count entities without replacement (§4.10 step 2,
// "choice"). With weightBy it uses Efraimidis-Spirakis weighted sampling:
// each positive-weight entity draws a key = u^(1/w) for u ~ Uniform(0,1),
// and the count entities with the largest keys are kept; entities with a
// non-positive or missing weight are never given a key and are instead
// drawn uniformly to fill any remaining slots once every positive-weight
// entity has been used.
func chooseN(matched []selector.Entity, count int, weightBy string, rng *rand.Rand) []selector.Entity {
	if count <= 0 || len(matched) == 0 {
		return nil
	}
	if count >= len(matched) {
		return matched
	}
	if weightBy == "" {
		return sampleUniform(matched, count, rng)
	}

	type keyed struct {
		e   selector.Entity
		key float64
	}
	var positive []keyed
	var zero []selector.Entity
	for _, e := range matched {
		w := 0.0
		if v, ok := e.Attrs.Get(weightBy); ok {
			if n, ok2 := v.AsNumber(); ok2 {
				w = n
			}
		}
		if w > 0 {
			key := math.Pow(rng.Float64(), 1/w)
			positive = append(positive, keyed{e: e, key: key})
		} else {
			zero = append(zero, e)
		}
	}
	sort.Slice(positive, func(i, j int) bool { return positive[i].key > positive[j].key })

	out := make([]selector.Entity, 0, count)
	for _, k := range positive {
		if len(out) >= count {
			break
		}
		out = append(out, k.e)
	}
	if len(out) < count {
		out = append(out, sampleUniform(zero, count-len(out), rng)...)
	}
	return out
}

func sampleUniform(matched []selector.Entity, count int, rng *rand.Rand) []selector.Entity {
	if count >= len(matched) {
		return matched
	}
	perm := rng.Perm(len(matched))
	out := make([]selector.Entity, count)
	for i := 0; i < count; i++ {
		out[i] = matched[perm[i]]
	}
	return out
}
