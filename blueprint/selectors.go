package blueprint

import (
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
)

// buildSelector converts a scenario.SelectorDef into a selector.Selector
// under ctx's context-aware defaults, after prefixing its path pattern (if
// any) with pathPrefix — the instantiation path of the blueprint a
// blueprint-level adjacency rule or post-build rule was declared inside, so
// the rule's relative path matches the fully-qualified node/link names it
// was written against (§4.5 steps 3-5). pathPrefix is "" for declarations at
// the top level of the document.
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

// prefixPath joins prefix onto pattern's path, for relative selector paths
// declared inside a blueprint (§4.5: blueprint-level adjacency is resolved
// against the instantiated sub-tree). A leading "^" on pattern is stripped
// before joining since selector.Build re-anchors the result.
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
