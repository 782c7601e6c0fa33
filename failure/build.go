package failure

import (
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
)

// Build compiles a declared failure policy (§3 "Failure Policy") into a
// Policy, validating each rule's mode/scope contract (e.g. weight_by only on
// a choice rule, §7 ConfigurationError).
func Build(def scenario.FailurePolicyDef) (*Policy, error) {
	if len(def.Modes) == 0 {
		return nil, &ngerr.ConfigurationError{Subject: def.Name, Msg: "failure policy must declare at least one mode"}
	}

	modes := make([]Mode, len(def.Modes))
	for i, md := range def.Modes {
		rules := make([]Rule, len(md.Rules))
		for j, rd := range md.Rules {
			r, err := buildRule(def.Name, rd)
			if err != nil {
				return nil, err
			}
			rules[j] = r
		}
		modes[i] = Mode{Weight: md.Weight, Attrs: md.Attrs.Value, Rules: rules}
	}

	return &Policy{
		Name:           def.Name,
		Attrs:          def.Attrs.Value,
		ExpandGroups:   def.ExpandGroups,
		ExpandChildren: def.ExpandChildren,
		Modes:          modes,
	}, nil
}

func buildRule(policyName string, rd scenario.FailureRuleDef) (Rule, error) {
	scope := Scope(rd.Scope)
	switch scope {
	case ScopeNode, ScopeLink, ScopeRiskGroup:
	default:
		return Rule{}, &ngerr.ConfigurationError{Subject: policyName, Msg: "unknown rule scope " + rd.Scope}
	}

	mode := RuleMode(rd.Mode)
	switch mode {
	case RuleAll, RuleChoice, RuleRandom:
	default:
		return Rule{}, &ngerr.ConfigurationError{Subject: policyName, Msg: "unknown rule mode " + rd.Mode}
	}

	if mode != RuleChoice && rd.WeightBy != "" {
		return Rule{}, &ngerr.ConfigurationError{Subject: policyName, Msg: "weight_by is only valid on a choice rule"}
	}
	if mode == RuleChoice && rd.Count == nil {
		return Rule{}, &ngerr.ConfigurationError{Subject: policyName, Msg: "a choice rule requires count"}
	}
	if mode == RuleRandom && rd.Probability == nil {
		return Rule{}, &ngerr.ConfigurationError{Subject: policyName, Msg: "a random rule requires probability"}
	}

	raw := selector.Raw{
		Path:  rd.PathRegex,
		Match: convertMatch(rd.Match),
	}
	sel, err := selector.Build(selector.ContextFailureRule, raw)
	if err != nil {
		return Rule{}, err
	}

	r := Rule{Scope: scope, Sel: sel, Mode: mode, WeightBy: rd.WeightBy}
	if rd.Count != nil {
		r.Count = *rd.Count
	}
	if rd.Probability != nil {
		r.Probability = *rd.Probability
	}
	return r, nil
}

func convertMatch(m *scenario.MatchDef) *selector.RawMatch {
	if m == nil {
		return nil
	}
	conds := make([]selector.Condition, len(m.Conditions))
	for i, c := range m.Conditions {
		conds[i] = selector.Condition{Attr: c.Attr, Op: selector.Op(c.Op), Value: c.Value.Value}
	}
	var logic *selector.Logic
	if m.Logic != nil {
		l := selector.Logic(*m.Logic)
		logic = &l
	}
	return &selector.RawMatch{Conditions: conds, Logic: logic}
}
