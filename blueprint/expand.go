package blueprint

import (
	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/topology"
)

// Expand turns a scenario.Document into a materialized, immutable
// topology.Store, following the Blueprint Expander's strict processing
// order (§4.5):
//
//  1. (done inline by materializeGroups/expandDeclarationKey) expand vars
//     anchors and bracket patterns in declaration keys.
//  2. materialize groups, recursively instantiating blueprints.
//  3. apply node post-build rules.
//  4. expand blueprint-level adjacency, then top-level adjacency.
//  5. apply link post-build rules.
//  6. resolve and validate risk groups.
//
// It returns the Store, any non-fatal warnings accumulated along the way
// (unmatched selectors, empty membership rules), and the first fatal error
// encountered — materialization errors abort before any analysis runs.
func Expand(doc *scenario.Document) (*topology.Store, []string, error) {
	b := topology.NewBuilder()
	ec := &expandCtx{doc: doc, builder: b}

	if err := ec.materializeGroups("", doc.Network.Groups, attrval.Map(nil), false, nil); err != nil {
		return nil, nil, err
	}

	if err := applyNodeRules(b, doc.Network.NodeRules); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, aq := range ec.adjQueue {
		w, err := expandAdjacency(b, aq.def, aq.pathPrefix)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}
	for _, def := range doc.Network.Adjacency {
		w, err := expandAdjacency(b, def, "")
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}

	if err := applyLinkRules(b, doc.Network.LinkRules); err != nil {
		return nil, nil, err
	}

	tree, rgWarnings, err := resolveRiskGroups(b, doc.RiskGroups)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, rgWarnings...)

	store, err := b.Build(tree)
	if err != nil {
		return nil, nil, err
	}
	return store, warnings, nil
}
