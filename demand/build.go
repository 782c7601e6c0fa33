package demand

import (
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
)

// Build compiles a document's declared demands (§3 "Demand") into Specs,
// resolving each demand's flow_policy preset and selector contexts. Specs
// retain their declaration index as a stable tie-break for equal-priority
// placement order (§5: "ties broken by insertion order").
func Build(defs []scenario.DemandDef) ([]Spec, error) {
	specs := make([]Spec, len(defs))
	for i, d := range defs {
		srcSel, err := buildSelector(selector.ContextDemand, d.Source, "")
		if err != nil {
			return nil, err
		}
		sinkSel, err := buildSelector(selector.ContextDemand, d.Sink, "")
		if err != nil {
			return nil, err
		}
		preset, err := flowpolicy.ByName(d.FlowPolicy)
		if err != nil {
			return nil, err
		}

		mode := Mode(d.Mode)
		switch mode {
		case ModePairwise:
		case ModeCombine, "":
			mode = ModeCombine
		default:
			return nil, &ngerr.ConfigurationError{Subject: "demand.mode", Msg: "unknown mode " + d.Mode}
		}

		groupMode := GroupMode(d.GroupMode)
		switch groupMode {
		case GroupPerGroup, GroupPairwise:
		case GroupFlatten, "":
			groupMode = GroupFlatten
		default:
			return nil, &ngerr.ConfigurationError{Subject: "demand.group_mode", Msg: "unknown group_mode " + d.GroupMode}
		}

		if d.Volume < 0 {
			return nil, &ngerr.ValidationError{Entity: "demand", Msg: "negative volume"}
		}

		specs[i] = Spec{
			Matrix:    d.Matrix,
			SourceSel: srcSel,
			SinkSel:   sinkSel,
			Volume:    d.Volume,
			Priority:  d.Priority,
			Preset:    preset,
			Mode:      mode,
			GroupMode: groupMode,
			Attrs:     d.Attrs.Value,
			seq:       i,
		}
	}
	return specs, nil
}

func buildSelector(ctx selector.Context, def scenario.SelectorDef, pathPrefix string) (selector.Selector, error) {
	raw := selector.Raw{
		Path:       prefixPath(pathPrefix, def.Path),
		GroupBy:    def.GroupBy,
		ActiveOnly: def.ActiveOnly,
		Match:      convertMatch(def.Match),
	}
	return selector.Build(ctx, raw)
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

func prefixPath(prefix, pattern string) string {
	if prefix == "" || pattern == "" {
		return pattern
	}
	p := pattern
	if len(p) > 0 && p[0] == '^' {
		p = p[1:]
	}
	return prefix + "/" + p
}
