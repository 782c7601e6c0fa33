package blueprint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/pattern"
	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/topology"
)

// queuedAdjacency is a blueprint-level adjacency rule discovered during
// materialization, deferred until every group has been materialized
// (§4.5 step 4: "Expand blueprint-level adjacency, then top-level
// adjacency"). pathPrefix is the instantiation path of the blueprint the
// rule was declared inside.
type queuedAdjacency struct {
	def        scenario.AdjacencyDef
	pathPrefix string
}

// expandCtx carries the state threaded through one Expand call: the
// document being materialized, the builder accumulating nodes and links,
// and the blueprint-level adjacency rules queued for later expansion.
type expandCtx struct {
	doc     *scenario.Document
	builder *topology.Builder
	adjQueue []queuedAdjacency
}

// materializeGroups recursively instantiates groups (§4.5 step 1-2) at path
// (empty for the document's top-level network.groups), threading parent
// attrs/disabled/risk-groups down to children per "Parent-level attrs,
// disabled, and risk_groups flow to children; child-specific values
// override."
//
// Grounded on lvlath/builder's functional generators: gather configuration,
// validate references, then walk a deterministic index space (declaration
// keys, sorted and bracket-expanded, then 1..node_count) to emit entities.
func (ctx *expandCtx) materializeGroups(
	path string,
	groups map[string]scenario.GroupDef,
	parentAttrs attrval.Value,
	parentDisabled bool,
	parentRiskGroups []string,
) error {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		gd := groups[key]
		names, err := expandDeclarationKey(ctx.doc, key)
		if err != nil {
			return err
		}
		sort.Strings(names)

		for _, name := range names {
			childPath := joinPath(path, name)

			effAttrs := mergeAttrs(parentAttrs, gd.Attrs.Value)
			effDisabled := parentDisabled || gd.Disabled
			effRiskGroups := mergeRiskGroups(parentRiskGroups, gd.RiskGroups)

			switch {
			case gd.Blueprint != "":
				if err := ctx.materializeBlueprintRef(childPath, gd, effAttrs, effDisabled, effRiskGroups); err != nil {
					return err
				}
			case len(gd.Groups) > 0:
				if err := ctx.materializeGroups(childPath, gd.Groups, effAttrs, effDisabled, effRiskGroups); err != nil {
					return err
				}
			default:
				if err := materializeLeaf(ctx.builder, childPath, gd, effAttrs, effDisabled, effRiskGroups); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// materializeBlueprintRef instantiates a blueprint reference: applies the
// group's parameter overrides to the referenced blueprint's configuration,
// recurses into its groups at childPath, and queues its adjacency for later
// expansion (§4.5 step 2, step 4).
func (ctx *expandCtx) materializeBlueprintRef(
	childPath string,
	gd scenario.GroupDef,
	effAttrs attrval.Value,
	effDisabled bool,
	effRiskGroups []string,
) error {
	bp, ok := ctx.doc.Blueprints[gd.Blueprint]
	if !ok {
		return &ngerr.ValidationError{Entity: gd.Blueprint, Msg: "undefined blueprint"}
	}

	params := convertParams(gd.Params)
	instance, err := applyParams(bp, params)
	if err != nil {
		return err
	}

	if err := ctx.materializeGroups(childPath, instance.Groups, effAttrs, effDisabled, effRiskGroups); err != nil {
		return err
	}
	for _, adj := range instance.Adjacency {
		ctx.adjQueue = append(ctx.adjQueue, queuedAdjacency{def: adj, pathPrefix: childPath})
	}
	return nil
}

// materializeLeaf creates the leaf nodes a non-blueprint, non-container
// group declares. An explicit node_count (even 1) produces node_count nodes
// named by name_template (defaulting to the path's last segment + "-{n}",
// per S4's `Main/leaf/leaf-1`); an omitted node_count (the struct's zero
// value) produces exactly one node named path itself, with no suffix — the
// shape used for a scenario's directly-named nodes (e.g. "N1").
func materializeLeaf(
	b *topology.Builder,
	path string,
	gd scenario.GroupDef,
	effAttrs attrval.Value,
	effDisabled bool,
	effRiskGroups []string,
) error {
	if gd.NodeCount == 0 {
		if err := b.AddNode(path, effAttrs, effDisabled); err != nil {
			return err
		}
		b.SetNodeRiskGroups(path, effRiskGroups)
		return nil
	}

	template := gd.NameTemplate
	if template == "" {
		template = lastSegment(path) + "-{n}"
	}
	for n := 1; n <= gd.NodeCount; n++ {
		leafName := strings.ReplaceAll(template, "{n}", strconv.Itoa(n))
		full := path + "/" + leafName
		if err := b.AddNode(full, effAttrs, effDisabled); err != nil {
			return err
		}
		b.SetNodeRiskGroups(full, effRiskGroups)
	}
	return nil
}

// expandDeclarationKey expands vars anchors then bracket patterns in a
// group declaration key (§4.5 step 1).
func expandDeclarationKey(doc *scenario.Document, key string) ([]string, error) {
	keys := []string{key}
	if pattern.HasVarRefs(key) {
		expanded, err := pattern.ExpandVars(key, doc.Vars, pattern.Cartesian)
		if err != nil {
			return nil, err
		}
		keys = expanded
	}

	var out []string
	for _, k := range keys {
		bracketed, err := pattern.ExpandBrackets(k)
		if err != nil {
			return nil, err
		}
		out = append(out, bracketed...)
	}
	return out, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// mergeAttrs overrides parent's attribute bag with child's, key by key at
// the top level (§4.5 step 2, "child-specific values override"). A
// non-map child replaces parent outright.
func mergeAttrs(parent, child attrval.Value) attrval.Value {
	if child.IsNull() {
		return parent
	}
	pm, pok := parent.AsMap()
	cm, cok := child.AsMap()
	if !pok || !cok {
		return child
	}
	merged := make(map[string]attrval.Value, len(pm)+len(cm))
	for k, v := range pm {
		merged[k] = v
	}
	for k, v := range cm {
		merged[k] = v
	}
	return attrval.Map(merged)
}

// mergeRiskGroups concatenates parent's and child's risk-group names,
// de-duplicating while preserving first-seen order.
func mergeRiskGroups(parent, child []string) []string {
	if len(parent) == 0 {
		return append([]string(nil), child...)
	}
	if len(child) == 0 {
		return append([]string(nil), parent...)
	}
	seen := make(map[string]bool, len(parent)+len(child))
	out := make([]string, 0, len(parent)+len(child))
	for _, g := range parent {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, g := range child {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func convertParams(params map[string]scenario.AttrValue) map[string]attrval.Value {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]attrval.Value, len(params))
	for k, v := range params {
		out[k] = v.Value
	}
	return out
}
