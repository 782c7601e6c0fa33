// Package ngerr implements the NetGraph error taxonomy (§7): SchemaError,
// ValidationError, ExpansionError, SelectorError, AnalysisError, and
// ConfigurationError. Each is a typed struct carrying enough context to
// locate the offending entity, and each struct's Unwrap returns its
// category sentinel below, so callers can errors.Is against the category
// (or errors.As against the struct) while reading a precise message.
package ngerr

import "fmt"

// Category sentinels: use errors.Is(err, ngerr.Validation) etc. to classify
// an error without type-asserting its concrete struct.
var (
	Schema        = fmt.Errorf("schema error")
	Validation    = fmt.Errorf("validation error")
	Expansion     = fmt.Errorf("expansion error")
	Selector      = fmt.Errorf("selector error")
	Analysis      = fmt.Errorf("analysis error")
	Configuration = fmt.Errorf("configuration error")
)

// SchemaError reports that the declarative document violates a structural
// contract (unknown key, wrong type).
type SchemaError struct {
	Path string // dot/slash path to the offending key within the document
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at %q: %s", e.Path, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Schema).
func (e *SchemaError) Unwrap() error { return Schema }

// ValidationError reports that a declared entity violates an invariant:
// undefined blueprint, duplicate node, undefined risk-group reference,
// risk-group cycle, one_to_one size mismatch.
type ValidationError struct {
	Entity string // the node/link/group/blueprint name implicated
	Msg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %q: %s", e.Entity, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Validation).
func (e *ValidationError) Unwrap() error { return Validation }

// ExpansionError reports that a template cannot be expanded: expansion cap
// exceeded, unresolved ${var}, unequal-length zip lists.
type ExpansionError struct {
	Template string
	Msg      string
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("expansion error in %q: %s", e.Template, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Expansion).
func (e *ExpansionError) Unwrap() error { return Expansion }

// SelectorError reports a malformed selector: it must declare at least one
// of path, group_by, match.
type SelectorError struct {
	Context string // e.g. "demand[0].source_selector"
	Msg     string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector error in %s: %s", e.Context, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Selector).
func (e *SelectorError) Unwrap() error { return Selector }

// AnalysisError reports an algorithmic precondition failing at run time,
// e.g. an unknown from_step reference for alpha_from_step.
type AnalysisError struct {
	Step string
	Msg  string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error in step %q: %s", e.Step, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Analysis).
func (e *AnalysisError) Unwrap() error { return Analysis }

// ConfigurationError reports a contradictory policy, e.g. weight_by set on
// a rule_type: random rule.
type ConfigurationError struct {
	Subject string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error on %q: %s", e.Subject, e.Msg)
}

// Unwrap allows errors.Is(err, ngerr.Configuration).
func (e *ConfigurationError) Unwrap() error { return Configuration }
