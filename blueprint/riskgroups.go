package blueprint

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/pattern"
	"github.com/ngcore/netgraph/riskgroup"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// riskGroupBuilder resolves the declared risk-group tree and membership
// (§4.5 step 6): direct definitions, membership rules, generate blocks,
// then a consistency pass confirming every entity's assigned risk-group
// names resolve to a declared group, followed by cycle validation.
type riskGroupBuilder struct {
	builder *topology.Builder
	tree    *riskgroup.Tree
	added   map[string]map[riskgroup.EntityRef]bool
}

func resolveRiskGroups(b *topology.Builder, defs []scenario.RiskGroupDef) (*riskgroup.Tree, []string, error) {
	rb := &riskGroupBuilder{
		builder: b,
		tree:    riskgroup.NewTree(),
		added:   map[string]map[riskgroup.EntityRef]bool{},
	}

	var warnings []string
	for _, d := range defs {
		w, err := rb.declare(d, "")
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}

	for _, n := range b.Nodes() {
		for _, g := range n.RiskGroups {
			if !rb.tree.Declared(g) {
				return nil, nil, &ngerr.ValidationError{Entity: g, Msg: "node " + n.Name + " references undeclared risk group"}
			}
			if err := rb.addMemberOnce(g, riskgroup.Node(n.Name)); err != nil {
				return nil, nil, err
			}
		}
	}
	for _, l := range b.Links() {
		for _, g := range l.RiskGroups {
			if !rb.tree.Declared(g) {
				return nil, nil, &ngerr.ValidationError{Entity: g, Msg: "link " + l.ID + " references undeclared risk group"}
			}
			if err := rb.addMemberOnce(g, riskgroup.Link(l.ID)); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := rb.tree.Validate(); err != nil {
		return nil, nil, err
	}
	return rb.tree, warnings, nil
}

// declare recursively declares d and its children under parent, bracket-
// expanding d.Name, then applies d's membership_rule/generate against the
// already-materialized node/link universe.
func (rb *riskGroupBuilder) declare(d scenario.RiskGroupDef, parent string) ([]string, error) {
	names, err := pattern.ExpandBrackets(d.Name)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, name := range names {
		if err := rb.tree.AddGroup(name, parent); err != nil {
			return nil, err
		}

		for _, m := range d.Members {
			ref, ok := rb.entityRefFor(m)
			if !ok {
				warnings = append(warnings, "risk group "+name+": unknown member "+m)
				continue
			}
			if err := rb.addMemberOnce(name, ref); err != nil {
				return nil, err
			}
		}

		if d.MembershipRule != nil {
			w, err := rb.applyMembershipRule(name, *d.MembershipRule)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, w...)
		}

		if d.Generate != nil {
			if err := rb.applyGenerate(name, *d.Generate); err != nil {
				return nil, err
			}
		}

		for _, child := range d.Children {
			w, err := rb.declare(child, name)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, w...)
		}
	}
	return warnings, nil
}

func (rb *riskGroupBuilder) applyMembershipRule(group string, def scenario.SelectorDef) ([]string, error) {
	sel, err := buildSelector(selector.ContextMembershipRule, def, "")
	if err != nil {
		return nil, err
	}
	universe := combinedUniverse(rb.builder)
	groups := selector.Resolve(universe, sel)
	if len(groups) == 0 {
		return []string{"risk group " + group + ": membership_rule matched no entities"}, nil
	}
	for _, g := range groups {
		for _, e := range g.Entities {
			ref, ok := rb.entityRefFor(e.Name)
			if !ok {
				continue
			}
			if err := rb.addMemberOnce(group, ref); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// applyGenerate auto-generates one child group per unique value of
// def.Attr among entities matching def.PathFilter (§4.5 step 6), nested
// under group for a deterministic, non-colliding name.
func (rb *riskGroupBuilder) applyGenerate(group string, def scenario.GenerateDef) error {
	var filter *regexp.Regexp
	if def.PathFilter != "" {
		p := def.PathFilter
		if !strings.HasPrefix(p, "^") {
			p = "^" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return &ngerr.ValidationError{Entity: group, Msg: "invalid generate path_filter: " + err.Error()}
		}
		filter = re
	}

	byValue := map[string][]selector.Entity{}
	for _, e := range combinedUniverse(rb.builder) {
		if filter != nil && !filter.MatchString(e.Name) {
			continue
		}
		v, ok := e.Attrs.Get(def.Attr)
		if !ok {
			continue
		}
		key := v.String()
		byValue[key] = append(byValue[key], e)
	}

	keys := make([]string, 0, len(byValue))
	for k := range byValue {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		childName := group + "/" + key
		if err := rb.tree.AddGroup(childName, group); err != nil {
			return err
		}
		for _, e := range byValue[key] {
			ref, ok := rb.entityRefFor(e.Name)
			if !ok {
				continue
			}
			if err := rb.addMemberOnce(childName, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rb *riskGroupBuilder) entityRefFor(name string) (riskgroup.EntityRef, bool) {
	if rb.builder.HasNode(name) {
		return riskgroup.Node(name), true
	}
	if rb.builder.HasLink(name) {
		return riskgroup.Link(name), true
	}
	return riskgroup.EntityRef{}, false
}

func (rb *riskGroupBuilder) addMemberOnce(group string, ref riskgroup.EntityRef) error {
	if rb.added[group] == nil {
		rb.added[group] = map[riskgroup.EntityRef]bool{}
	}
	if rb.added[group][ref] {
		return nil
	}
	rb.added[group][ref] = true
	return rb.tree.AddMember(group, ref)
}

func combinedUniverse(b *topology.Builder) []selector.Entity {
	nodes := selector.NodeEntities(b.Nodes())
	links := selector.LinkEntities(b.Links())
	out := make([]selector.Entity, 0, len(nodes)+len(links))
	out = append(out, nodes...)
	out = append(out, links...)
	return out
}
