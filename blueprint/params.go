package blueprint

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/scenario"
)

// applyParams applies a group's parameter overrides as dot-path edits of
// the referenced blueprint's configuration, before recursion (§4.5 step 2:
// "parameter overrides applied as dot-path edits of the blueprint's
// configuration before recursion"). The edit is performed generically (the
// blueprint is round-tripped through YAML into a map[string]any, edited,
// and decoded back) rather than by hand-writing a setter per GroupDef
// field, so any nested field — including "leaf.attrs.x.y" deep inside a
// nested group — is addressable by one dot path.
func applyParams(bp scenario.BlueprintDef, params map[string]attrval.Value) (scenario.BlueprintDef, error) {
	if len(params) == 0 {
		return bp, nil
	}

	raw, err := yaml.Marshal(bp)
	if err != nil {
		return bp, &ngerr.ExpansionError{Template: "blueprint params", Msg: "marshal blueprint: " + err.Error()}
	}
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return bp, &ngerr.ExpansionError{Template: "blueprint params", Msg: "unmarshal blueprint: " + err.Error()}
	}
	if generic == nil {
		generic = map[string]any{}
	}
	groups, ok := generic["groups"].(map[string]any)
	if !ok {
		groups = map[string]any{}
	}

	// Param dot-paths are rooted at the blueprint's group keys directly
	// ("leaf.attrs.x.y", not "groups.leaf.attrs.x.y") per §4.5 step 2 / S4.
	for path, val := range params {
		setDotPath(groups, strings.Split(path, "."), attrval.ToAny(val))
	}
	generic["groups"] = groups

	edited, err := yaml.Marshal(generic)
	if err != nil {
		return bp, &ngerr.ExpansionError{Template: "blueprint params", Msg: "remarshal blueprint: " + err.Error()}
	}
	var result scenario.BlueprintDef
	if err := yaml.Unmarshal(edited, &result); err != nil {
		return bp, &ngerr.ExpansionError{Template: "blueprint params", Msg: "redecode blueprint: " + err.Error()}
	}
	return result, nil
}

// setDotPath sets val at the nested path (split on ".") within tree,
// descending into "groups.<key>" maps and creating intermediate
// map[string]any nodes as needed. tree is mutated in place.
func setDotPath(tree map[string]any, segs []string, val any) {
	if len(segs) == 0 {
		return
	}
	head, rest := segs[0], segs[1:]
	if len(rest) == 0 {
		tree[head] = val
		return
	}
	child, ok := tree[head].(map[string]any)
	if !ok {
		child = map[string]any{}
	}
	setDotPath(child, rest, val)
	tree[head] = child
}
