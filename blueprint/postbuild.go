package blueprint

import (
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// applyNodeRules applies node post-build rules in declaration order (§4.5
// step 3): every node matched by a rule's selector has its attribute
// overrides, disabled flip, and added risk groups applied directly to the
// builder's live record.
func applyNodeRules(b *topology.Builder, rules []scenario.PostBuildRuleDef) error {
	for _, rule := range rules {
		sel, err := buildSelector(selector.ContextPostBuildRule, rule.Selector, "")
		if err != nil {
			return err
		}
		groups := selector.Resolve(selector.NodeEntities(b.Nodes()), sel)
		for _, g := range groups {
			for _, e := range g.Entities {
				n := b.Node(e.Name)
				if n == nil {
					continue
				}
				for path, val := range rule.SetAttrs {
					n.Attrs = n.Attrs.WithPath(path, val.Value)
				}
				if rule.Disabled != nil {
					n.Disabled = *rule.Disabled
				}
				if len(rule.AddRiskGroups) > 0 {
					n.RiskGroups = append(n.RiskGroups, rule.AddRiskGroups...)
				}
			}
		}
	}
	return nil
}

// applyLinkRules applies link post-build rules in declaration order (§4.5
// step 5), mirroring applyNodeRules over the builder's links.
func applyLinkRules(b *topology.Builder, rules []scenario.PostBuildRuleDef) error {
	for _, rule := range rules {
		sel, err := buildSelector(selector.ContextPostBuildRule, rule.Selector, "")
		if err != nil {
			return err
		}
		groups := selector.Resolve(selector.LinkEntities(b.Links()), sel)
		for _, g := range groups {
			for _, e := range g.Entities {
				l := b.Link(e.Name)
				if l == nil {
					continue
				}
				for path, val := range rule.SetAttrs {
					l.Attrs = l.Attrs.WithPath(path, val.Value)
				}
				if rule.Disabled != nil {
					l.Disabled = *rule.Disabled
				}
				if len(rule.AddRiskGroups) > 0 {
					l.RiskGroups = append(l.RiskGroups, rule.AddRiskGroups...)
				}
			}
		}
	}
	return nil
}
