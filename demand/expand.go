package demand

import (
	"github.com/google/uuid"

	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/selector"
	"github.com/ngcore/netgraph/topology"
)

// groupPair is one resolved (source-node-set, sink-node-set) pair, after
// GroupMode has combined the selector's resolved groups.
type groupPair struct {
	sources []string
	sinks   []string
}

// Expand resolves spec's source/sink selectors against view and produces
// its concrete sub-demands (§4.9), applying GroupMode to pair selector
// groups and then Mode to turn each pair into one or more sub-demands.
func Expand(view *topology.View, spec Spec) ([]SubDemand, error) {
	universe := selector.NodeEntities(view.Store().Nodes())
	srcGroups := selector.Resolve(universe, spec.SourceSel)
	sinkGroups := selector.Resolve(universe, spec.SinkSel)

	pairs, err := pairGroups(spec.GroupMode, srcGroups, sinkGroups)
	if err != nil {
		return nil, err
	}

	var out []SubDemand
	for _, pr := range pairs {
		subs, err := expandPair(spec, pr.sources, pr.sinks)
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
	}
	return out, nil
}

func pairGroups(gm GroupMode, srcGroups, sinkGroups []selector.Group) ([]groupPair, error) {
	switch gm {
	case GroupFlatten:
		return []groupPair{{sources: flattenGroups(srcGroups), sinks: flattenGroups(sinkGroups)}}, nil
	case GroupPerGroup:
		bySinkKey := make(map[string][]string, len(sinkGroups))
		for _, g := range sinkGroups {
			bySinkKey[g.Key] = entityNames(g.Entities)
		}
		var out []groupPair
		for _, g := range srcGroups {
			sinks, ok := bySinkKey[g.Key]
			if !ok {
				continue // no matching sink group: an empty match is not an error (§4.2)
			}
			out = append(out, groupPair{sources: entityNames(g.Entities), sinks: sinks})
		}
		return out, nil
	case GroupPairwise:
		var out []groupPair
		for _, sg := range srcGroups {
			for _, tg := range sinkGroups {
				out = append(out, groupPair{sources: entityNames(sg.Entities), sinks: entityNames(tg.Entities)})
			}
		}
		return out, nil
	default:
		return nil, &ngerr.ConfigurationError{Subject: "demand.group_mode", Msg: "unknown group_mode " + string(gm)}
	}
}

func flattenGroups(groups []selector.Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, entityNames(g.Entities)...)
	}
	return out
}

func entityNames(entities []selector.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}
	return out
}

func expandPair(spec Spec, sources, sinks []string) ([]SubDemand, error) {
	switch spec.Mode {
	case ModeCombine:
		if len(sources) == 0 || len(sinks) == 0 {
			return nil, nil
		}
		return []SubDemand{{
			ID: uuid.NewString(), Matrix: spec.Matrix,
			Sources: sources, Sinks: sinks,
			Volume: spec.Volume, Priority: spec.Priority, Preset: spec.Preset, seq: spec.seq,
		}}, nil
	case ModePairwise:
		var pairs [][2]string
		for _, s := range sources {
			for _, t := range sinks {
				if s == t {
					continue
				}
				pairs = append(pairs, [2]string{s, t})
			}
		}
		if len(pairs) == 0 {
			return nil, nil
		}
		per := spec.Volume / float64(len(pairs))
		out := make([]SubDemand, len(pairs))
		for i, p := range pairs {
			out[i] = SubDemand{
				ID: uuid.NewString(), Matrix: spec.Matrix,
				Sources: []string{p[0]}, Sinks: []string{p[1]},
				Volume: per, Priority: spec.Priority, Preset: spec.Preset, seq: spec.seq,
			}
		}
		return out, nil
	default:
		return nil, &ngerr.ConfigurationError{Subject: "demand.mode", Msg: "unknown mode " + string(spec.Mode)}
	}
}
