package blueprint

import (
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/pattern"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// expandAdjacency expands one adjacency rule into links on b, prefixing its
// selectors' path patterns with pathPrefix (blueprint-level rules resolve
// relative to their instantiation path, §4.5 step 4). It returns any
// unmatched-selector warnings ("Unmatched selectors -> warning; produce no
// edges", §4.5).
func expandAdjacency(b *topology.Builder, def scenario.AdjacencyDef, pathPrefix string) ([]string, error) {
	if def.Expand == nil {
		return expandOneAdjacency(b, def, pathPrefix)
	}

	bindings, err := pattern.ExpandBindings(def.Expand.Vars, expandModeOf(def.Expand.Mode))
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, binding := range bindings {
		bound := def
		bound.Source.Path = pattern.Substitute(def.Source.Path, binding)
		bound.Target.Path = pattern.Substitute(def.Target.Path, binding)
		bound.Expand = nil
		w, err := expandOneAdjacency(b, bound, pathPrefix)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}
	return warnings, nil
}

func expandModeOf(mode string) pattern.Mode {
	if mode == "zip" {
		return pattern.Zip
	}
	return pattern.Cartesian
}

func expandOneAdjacency(b *topology.Builder, def scenario.AdjacencyDef, pathPrefix string) ([]string, error) {
	srcSel, err := buildSelector(selector.ContextAdjacency, def.Source, pathPrefix)
	if err != nil {
		return nil, err
	}
	tgtSel, err := buildSelector(selector.ContextAdjacency, def.Target, pathPrefix)
	if err != nil {
		return nil, err
	}

	universe := selector.NodeEntities(b.Nodes())
	srcGroups := selector.Resolve(universe, srcSel)
	tgtGroups := selector.Resolve(universe, tgtSel)
	if len(srcGroups) == 0 || len(tgtGroups) == 0 {
		return []string{"adjacency rule matched no source/target entities; no edges created"}, nil
	}

	for _, sg := range srcGroups {
		for _, tg := range tgtGroups {
			if err := connectGroups(b, sg.Entities, tg.Entities, def); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

func connectGroups(b *topology.Builder, src, tgt []selector.Entity, def scenario.AdjacencyDef) error {
	switch def.Pattern {
	case "mesh":
		for _, s := range src {
			for _, t := range tgt {
				if err := createLinks(b, s.Name, t.Name, def); err != nil {
					return err
				}
			}
		}
		return nil
	case "one_to_one":
		ls, lt := len(src), len(tgt)
		small, big := ls, lt
		if lt < small {
			small = lt
		}
		if ls > big {
			big = ls
		}
		if small == 0 || big%small != 0 {
			return &ngerr.ValidationError{Entity: "adjacency", Msg: "one_to_one requires one group size to divide the other"}
		}
		for i := 0; i < big; i++ {
			s := src[i%ls]
			t := tgt[i%lt]
			if err := createLinks(b, s.Name, t.Name, def); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ngerr.ValidationError{Entity: def.Pattern, Msg: "unknown adjacency pattern"}
	}
}

// createLinks materializes def.Count (default 1) parallel circuits between
// source and target, each carrying def's capacity, cost, risk groups, and
// attrs (§4.5: "Each resulting edge materializes with the stated capacity,
// cost, risk_groups, and attrs. An optional count creates parallel
// copies."). Every circuit is undirected (§3: "NetGraph's links are
// conceptually undirected physical circuits but are stored as a directed
// multigraph with explicit reverse edges when required by analysis"), so
// each one materializes as a pair of directed Link entries — source->target
// and target->source — each with its own stable ID, independently
// addressable like any other parallel edge.
func createLinks(b *topology.Builder, source, target string, def scenario.AdjacencyDef) error {
	count := def.Count
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := addCircuit(b, source, target, def); err != nil {
			return err
		}
	}
	return nil
}

// addCircuit materializes one physical circuit between source and target as
// two directed links of equal capacity and cost, one per direction.
func addCircuit(b *topology.Builder, source, target string, def scenario.AdjacencyDef) error {
	for _, ends := range [2][2]string{{source, target}, {target, source}} {
		id := b.NextLinkID()
		if err := b.AddLink(id, ends[0], ends[1], def.Capacity, def.Cost, def.Attrs.Value, false); err != nil {
			return err
		}
		if len(def.RiskGroups) > 0 {
			b.SetLinkRiskGroups(id, def.RiskGroups)
		}
	}
	return nil
}
