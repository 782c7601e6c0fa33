package scenario

import (
	"gopkg.in/yaml.v3"

	"github.com/ngcore/netgraph/attrval"
)

// AttrValue adapts attrval.Value to yaml.v3 decoding: it decodes its node
// into a plain `any` tree first (exactly the shape attrval.FromAny expects)
// rather than implementing its own per-Kind YAML grammar.
type AttrValue struct {
	attrval.Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AttrValue) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	a.Value = attrval.FromAny(raw)
	return nil
}

// MarshalYAML implements yaml.Marshaler, the inverse of UnmarshalYAML: it
// hands back the plain Go tree attrval.ToAny produces rather than letting
// yaml.v3 reflect over Value's unexported fields (which would marshal to an
// empty mapping). Used by the Blueprint Expander's parameter-override
// round trip (§4.5 step 2), which marshals a BlueprintDef back to YAML to
// apply a dot-path edit generically.
func (a AttrValue) MarshalYAML() (any, error) {
	return attrval.ToAny(a.Value), nil
}

// Document is the scenario document's typed tree (§6): "network, blueprints,
// components, risk_groups, vars, demands, failures, workflow, seed". Field
// names below use the `demands`/`failures` canonical terms per SPEC_FULL's
// Open Question (a) resolution; `traffic_matrix_set`/`failure_policy_set`
// are accepted as yaml aliases of the same fields (see Decode).
type Document struct {
	Seed       int64                   `yaml:"seed,omitempty"`
	Vars       map[string][]string     `yaml:"vars,omitempty"`
	Network    NetworkDef              `yaml:"network"`
	Blueprints map[string]BlueprintDef `yaml:"blueprints,omitempty"`
	Components AttrValue               `yaml:"components,omitempty"`
	RiskGroups []RiskGroupDef          `yaml:"risk_groups,omitempty"`
	Demands    []DemandDef             `yaml:"demands,omitempty"`
	Failures   []FailurePolicyDef      `yaml:"failures,omitempty"`
	Workflow   []WorkflowStepDef       `yaml:"workflow,omitempty"`
}

// NetworkDef is the document's topology root: a set of named top-level
// groups plus top-level adjacency rules connecting them (§4.5 step 4,
// "top-level adjacency").
type NetworkDef struct {
	Groups         map[string]GroupDef    `yaml:"groups,omitempty"`
	Adjacency      []AdjacencyDef         `yaml:"adjacency,omitempty"`
	NodeRules      []PostBuildRuleDef     `yaml:"node_rules,omitempty"`
	LinkRules      []PostBuildRuleDef     `yaml:"link_rules,omitempty"`
}

// BlueprintDef is a reusable topology template (§4.5 step 2): its own
// nested groups and blueprint-level adjacency, instantiated by reference
// from a GroupDef.
type BlueprintDef struct {
	Groups    map[string]GroupDef `yaml:"groups"`
	Adjacency []AdjacencyDef      `yaml:"adjacency,omitempty"`
}

// GroupDef is one declaration-key entry under network.groups or a
// blueprint's groups (§4.5 step 1-2). Exactly one of (Blueprint) or
// (NodeCount+NameTemplate) is meaningful for a leaf/blueprint instance;
// nested Groups makes this entry itself a container with no direct nodes
// of its own. Declaration keys (the map key this GroupDef is stored under)
// are bracket-expanded by the caller before iteration, so GroupDef itself
// carries no name.
type GroupDef struct {
	Blueprint    string                `yaml:"blueprint,omitempty"`
	Params       map[string]AttrValue  `yaml:"params,omitempty"` // dot-path -> override value
	NodeCount    int                   `yaml:"node_count,omitempty"`
	NameTemplate string                `yaml:"name_template,omitempty"`
	Attrs        AttrValue             `yaml:"attrs,omitempty"`
	Disabled     bool                  `yaml:"disabled,omitempty"`
	RiskGroups   []string              `yaml:"risk_groups,omitempty"`
	Groups       map[string]GroupDef   `yaml:"groups,omitempty"`
}

// SelectorDef is the as-declared selector shape (§4.2), decoded before
// selector.Build applies context-aware defaults.
type SelectorDef struct {
	Path       string     `yaml:"path,omitempty"`
	Match      *MatchDef  `yaml:"match,omitempty"`
	GroupBy    string     `yaml:"group_by,omitempty"`
	ActiveOnly *bool      `yaml:"active_only,omitempty"`
}

// MatchDef is the as-declared match predicate (§4.2 "match").
type MatchDef struct {
	Conditions []ConditionDef `yaml:"conditions,omitempty"`
	Logic      *string        `yaml:"logic,omitempty"`
}

// ConditionDef is one match.conditions entry.
type ConditionDef struct {
	Attr  string    `yaml:"attr"`
	Op    string    `yaml:"op"`
	Value AttrValue `yaml:"value,omitempty"`
}

// ExpandDef multiplies an AdjacencyDef over variable bindings before
// selection (§4.5 "may also carry an expand block").
type ExpandDef struct {
	Vars map[string][]string `yaml:"vars"`
	Mode string               `yaml:"mode,omitempty"` // "cartesian" (default) | "zip"
}

// AdjacencyDef declares a batch of links between two selected node sets
// (§4.5 "Adjacency contract").
type AdjacencyDef struct {
	Source     SelectorDef `yaml:"source"`
	Target     SelectorDef `yaml:"target"`
	Pattern    string      `yaml:"pattern"` // "mesh" | "one_to_one"
	Capacity   float64     `yaml:"capacity"`
	Cost       float64     `yaml:"cost"`
	Count      int         `yaml:"count,omitempty"`
	RiskGroups []string    `yaml:"risk_groups,omitempty"`
	Attrs      AttrValue   `yaml:"attrs,omitempty"`
	Expand     *ExpandDef  `yaml:"expand,omitempty"`
}

// PostBuildRuleDef is a node or link post-build rule (§4.5 steps 3, 5):
// entities matched by Selector have SetAttrs applied (dot-path overrides),
// Disabled flipped if set, and AddRiskGroups appended.
type PostBuildRuleDef struct {
	Selector      SelectorDef          `yaml:"selector"`
	SetAttrs      map[string]AttrValue `yaml:"set_attrs,omitempty"`
	Disabled      *bool                `yaml:"disabled,omitempty"`
	AddRiskGroups []string             `yaml:"add_risk_groups,omitempty"`
}

// GenerateDef auto-generates one risk group per unique value of Attr among
// entities matching an optional PathFilter (§4.5 step 6, "generate blocks").
type GenerateDef struct {
	Attr       string `yaml:"attr"`
	PathFilter string `yaml:"path_filter,omitempty"`
}

// RiskGroupDef is a declared risk group, recursively nested via Children
// (§3 "Risk Group").
type RiskGroupDef struct {
	Name           string         `yaml:"name"`
	Children       []RiskGroupDef `yaml:"children,omitempty"`
	Members        []string       `yaml:"members,omitempty"`
	MembershipRule *SelectorDef   `yaml:"membership_rule,omitempty"`
	Generate       *GenerateDef   `yaml:"generate,omitempty"`
}

// DemandDef is one demand declaration (§3 "Demand"). Matrix names the
// traffic matrix this demand belongs to: a scenario may declare several
// independent matrices in one flat `demands` list, and
// TrafficMatrixPlacement (§4.12) selects one by name. An empty Matrix is
// the implicit default matrix.
type DemandDef struct {
	Matrix     string      `yaml:"matrix,omitempty"`
	Source     SelectorDef `yaml:"source"`
	Sink       SelectorDef `yaml:"sink"`
	Volume     float64     `yaml:"volume"`
	Priority   int         `yaml:"priority,omitempty"`
	FlowPolicy string      `yaml:"flow_policy"`
	Mode       string      `yaml:"mode"` // "pairwise" | "combine"
	GroupMode  string      `yaml:"group_mode,omitempty"`
	Attrs      AttrValue   `yaml:"attrs,omitempty"`
}

// FailurePolicyDef is a named failure policy (§3 "Failure Policy").
type FailurePolicyDef struct {
	Name           string           `yaml:"name"`
	Attrs          AttrValue        `yaml:"attrs,omitempty"`
	ExpandGroups   bool             `yaml:"expand_groups,omitempty"`
	ExpandChildren bool             `yaml:"expand_children,omitempty"`
	Modes          []FailureModeDef `yaml:"modes"`
}

// FailureModeDef is one weighted failure mode.
type FailureModeDef struct {
	Weight float64          `yaml:"weight"`
	Attrs  AttrValue        `yaml:"attrs,omitempty"`
	Rules  []FailureRuleDef `yaml:"rules"`
}

// FailureRuleDef is one failure rule (§3 "Failure Rule").
type FailureRuleDef struct {
	Scope       string    `yaml:"scope"` // "node" | "link" | "risk_group"
	PathRegex   string    `yaml:"path_regex,omitempty"`
	Match       *MatchDef `yaml:"match,omitempty"`
	Mode        string    `yaml:"mode"` // "all" | "choice" | "random"
	Probability *float64  `yaml:"probability,omitempty"`
	Count       *int      `yaml:"count,omitempty"`
	WeightBy    string    `yaml:"weight_by,omitempty"`
}

// WorkflowStepDef is one entry in the workflow's linear step list (§4.12,
// "a fixed catalog"). Not every field applies to every Type; the workflow
// package validates per-type requirements at run time.
type WorkflowStepDef struct {
	Type          string      `yaml:"type"`
	Name          string      `yaml:"name,omitempty"`
	Source        *SelectorDef `yaml:"source,omitempty"`
	Sink          *SelectorDef `yaml:"sink,omitempty"`
	FlowPolicy    string      `yaml:"flow_policy,omitempty"`
	FailurePolicy string      `yaml:"failure_policy,omitempty"`
	Iterations    int         `yaml:"iterations,omitempty"`
	Seed          int64       `yaml:"seed,omitempty"`
	Parallelism   int         `yaml:"parallelism,omitempty"`
	TrafficMatrix string      `yaml:"traffic_matrix,omitempty"`
	FromStep      string      `yaml:"from_step,omitempty"`
	Params        AttrValue   `yaml:"params,omitempty"`
}
