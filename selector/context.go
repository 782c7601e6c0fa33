package selector

import (
	"strings"

	"github.com/ngcore/netgraph/ngerr"
)

// Context names the calling site of a selector, for applying the
// context-aware defaults of §4.2.
type Context int

const (
	// ContextAdjacency is a path-based selector inside an adjacency rule.
	ContextAdjacency Context = iota
	// ContextDemand is a path-based selector inside a demand's
	// source/sink selector.
	ContextDemand
	// ContextPostBuildRule is a path-based selector inside a node/link
	// post-build rule.
	ContextPostBuildRule
	// ContextFailureRule is a condition-based selector inside a failure
	// rule.
	ContextFailureRule
	// ContextMembershipRule is a condition-based selector inside a
	// risk-group membership rule.
	ContextMembershipRule
	// ContextWorkflow is a path-based selector inside a workflow step
	// (e.g. MaxFlow's source/sink selectors).
	ContextWorkflow
)

// pathBased reports whether ctx uses the path-based selection model
// (capture-group grouping is meaningful) as opposed to the condition-based
// model (path, if present, is only a pre-filter).
func (c Context) pathBased() bool {
	switch c {
	case ContextAdjacency, ContextDemand, ContextPostBuildRule, ContextWorkflow:
		return true
	default:
		return false
	}
}

func (c Context) defaultLogic() Logic {
	if c == ContextMembershipRule {
		return LogicAnd
	}
	return LogicOr
}

func (c Context) defaultActiveOnly() bool {
	switch c {
	case ContextDemand, ContextWorkflow:
		return true
	default:
		return false
	}
}

// Raw is the as-declared selector shape before context defaults are
// applied: pointers distinguish "not specified" from an explicit false/"".
type Raw struct {
	Path       string
	Match      *RawMatch
	GroupBy    string
	ActiveOnly *bool
}

// RawMatch is the as-declared match predicate before the logic default is
// applied.
type RawMatch struct {
	Conditions []Condition
	Logic      *Logic
}

// Build compiles a Raw selector declaration into a Selector, applying
// ctx's context-aware defaults (§4.2) and validating the selector's
// contract: "requires at least one of path, group_by, match" (a
// SelectorError otherwise).
func Build(ctx Context, raw Raw) (Selector, error) {
	if raw.Path == "" && raw.GroupBy == "" && raw.Match == nil {
		return Selector{}, &ngerr.SelectorError{Context: contextLabel(ctx), Msg: "requires at least one of path, group_by, match"}
	}

	sel := Selector{
		GroupBy:         raw.GroupBy,
		CaptureGrouping: ctx.pathBased(),
	}

	if raw.ActiveOnly != nil {
		sel.ActiveOnly = *raw.ActiveOnly
	} else {
		sel.ActiveOnly = ctx.defaultActiveOnly()
	}

	if raw.Path != "" {
		pattern := strings.TrimPrefix(raw.Path, "/")
		re, err := compileAnchored(pattern)
		if err != nil {
			return Selector{}, &ngerr.SelectorError{Context: contextLabel(ctx), Msg: err.Error()}
		}
		sel.PathPattern = pattern
		sel.Path = re
	}

	if raw.Match != nil {
		logic := ctx.defaultLogic()
		if raw.Match.Logic != nil {
			logic = *raw.Match.Logic
		}
		sel.Match = &Match{Conditions: raw.Match.Conditions, Logic: logic}
	}

	return sel, nil
}

func contextLabel(ctx Context) string {
	switch ctx {
	case ContextAdjacency:
		return "adjacency"
	case ContextDemand:
		return "demand"
	case ContextPostBuildRule:
		return "post_build_rule"
	case ContextFailureRule:
		return "failure_rule"
	case ContextMembershipRule:
		return "membership_rule"
	case ContextWorkflow:
		return "workflow"
	default:
		return "selector"
	}
}
