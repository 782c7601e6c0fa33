package workflow

import (
	"context"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/riskgroup"
)

// runBuildGraph serializes the materialized graph for external export
// (§4.12 table, SPEC_FULL §C): a plain map[string]any tree of nodes, links,
// and the risk-group tree, ready for the external result-JSON encoder. The
// core performs no JSON encoding itself (§1 scope).
func runBuildGraph(_ context.Context, rt *runtime, _ compiledStep) (any, error) {
	store := rt.store

	nodes := make([]any, 0, len(store.NodeNames()))
	for _, n := range store.Nodes() {
		nodes = append(nodes, map[string]any{
			"name":        n.Name,
			"disabled":    n.Disabled,
			"risk_groups": n.RiskGroups,
			"attrs":       attrval.ToAny(n.Attrs),
		})
	}

	links := make([]any, 0, len(store.LinkIDs()))
	for _, l := range store.Links() {
		links = append(links, map[string]any{
			"id":          l.ID,
			"source":      l.Source,
			"target":      l.Target,
			"capacity":    l.Capacity,
			"cost":        l.Cost,
			"disabled":    l.Disabled,
			"risk_groups": l.RiskGroups,
			"attrs":       attrval.ToAny(l.Attrs),
		})
	}

	return map[string]any{
		"nodes":       nodes,
		"links":       links,
		"risk_groups": buildRiskGroupTree(store.RiskGroupTree()),
		"warnings":    rt.warnings,
	}, nil
}

// buildRiskGroupTree renders every root risk group (and its descendants)
// into a nested map tree, for BuildGraph's export payload.
func buildRiskGroupTree(tree *riskgroup.Tree) []any {
	if tree == nil {
		return nil
	}
	var roots []any
	for _, name := range tree.Names() {
		if tree.Parent(name) == "" {
			roots = append(roots, riskGroupNode(tree, name))
		}
	}
	return roots
}

func riskGroupNode(tree *riskgroup.Tree, name string) map[string]any {
	members := make([]string, 0, len(tree.Members(name)))
	for _, m := range tree.Members(name) {
		members = append(members, m.String())
	}
	children := make([]any, 0, len(tree.Children(name)))
	for _, c := range tree.Children(name) {
		children = append(children, riskGroupNode(tree, c))
	}
	return map[string]any{
		"name":     name,
		"members":  members,
		"children": children,
	}
}
