// Package failure implements the Failure Policy Engine (§4.10): compiling a
// declared failure policy into weighted modes of selector-driven rules, and
// selecting one concrete failed-entity set per Monte Carlo iteration.
package failure

import (
	"sort"
	"strings"

	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/selector"
)

// Scope names what kind of entity a Rule selects over.
type Scope string

// The three rule scopes (§3 "Failure Rule").
const (
	ScopeNode      Scope = "node"
	ScopeLink      Scope = "link"
	ScopeRiskGroup Scope = "risk_group"
)

// RuleMode names how a Rule turns its matched entities into a failed subset.
type RuleMode string

// The three rule modes (§4.10 step 2).
const (
	RuleAll    RuleMode = "all"
	RuleChoice RuleMode = "choice"
	RuleRandom RuleMode = "random"
)

// Rule is one compiled failure rule: a selector narrowing the universe of
// Scope to candidates, plus a Mode deciding how many of those candidates
// actually fail.
type Rule struct {
	Scope       Scope
	Sel         selector.Selector
	Mode        RuleMode
	Probability float64 // Mode == RuleRandom
	Count       int     // Mode == RuleChoice
	WeightBy    string  // Mode == RuleChoice, optional
}

// Mode is one weighted failure mode: exactly one is chosen per iteration
// (§4.10 step 1), then every one of its rules is applied.
type Mode struct {
	Weight float64
	Attrs  attrval.Value
	Rules  []Rule
}

// Policy is a compiled failure policy (§3 "Failure Policy").
type Policy struct {
	Name           string
	Attrs          attrval.Value
	ExpandGroups   bool
	ExpandChildren bool
	Modes          []Mode
}

// Trace reports whether this policy asked for failure_trace capture (§4.11
// step 4), via an optional `trace: true` entry in its attrs.
func (p *Policy) Trace() bool {
	if p == nil {
		return false
	}
	v, ok := p.Attrs.Get("trace")
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

// Result is the output of one Select call: the union of failed node names
// and link identifiers (§4.10 step 4), plus which mode was chosen and an
// optional human-readable trace of what fired.
type Result struct {
	FailedNodes map[string]bool
	FailedLinks map[string]bool
	ModeIndex   int
	Trace       []string // "scope:name" entries, sorted, populated only when the policy asks for it
}

// Empty reports whether nothing failed.
func (r *Result) Empty() bool {
	return r == nil || (len(r.FailedNodes) == 0 && len(r.FailedLinks) == 0)
}

// PatternKey renders a canonical, order-independent representation of the
// failed set (sorted node names, then sorted link IDs), used by the Monte
// Carlo Orchestrator to deduplicate iterations that land on the same
// failure pattern (§4.11 step 3-4) and to order its final results list
// (§4.11 "Ordering guarantees").
func (r *Result) PatternKey() string {
	if r.Empty() {
		return "baseline"
	}
	nodes := make([]string, 0, len(r.FailedNodes))
	for n := range r.FailedNodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	links := make([]string, 0, len(r.FailedLinks))
	for l := range r.FailedLinks {
		links = append(links, l)
	}
	sort.Strings(links)

	var b strings.Builder
	b.WriteString("N:")
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(n)
	}
	b.WriteString("|L:")
	for i, l := range links {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l)
	}
	return b.String()
}
