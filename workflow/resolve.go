package workflow

import (
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// resolveNodeSelector compiles and resolves a workflow step's source/sink
// SelectorDef against view's node universe, flattening every resolved
// group into one node-name set (§4.12 "MaxFlow... between two selector
// sets"). An empty match is a warning, not an error (§4.2); the caller gets
// an empty slice and decides how to report it.
func resolveNodeSelector(view *topology.View, def *scenario.SelectorDef, label string) ([]string, error) {
	if def == nil {
		return nil, &ngerr.SelectorError{Context: label, Msg: "selector is required"}
	}
	raw := selector.Raw{
		Path:       def.Path,
		GroupBy:    def.GroupBy,
		ActiveOnly: def.ActiveOnly,
		Match:      convertMatch(def.Match),
	}
	sel, err := selector.Build(selector.ContextWorkflow, raw)
	if err != nil {
		return nil, err
	}
	universe := selector.NodeEntities(view.Store().Nodes())
	groups := selector.Resolve(universe, sel)

	var names []string
	for _, g := range groups {
		for _, e := range g.Entities {
			if !view.IsNodeMasked(e.Name) {
				names = append(names, e.Name)
			}
		}
	}
	return names, nil
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
