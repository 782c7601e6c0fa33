package selector

import (
	"regexp"

	"github.com/ngcore/netgraph/attrval"
)

// Entity is the minimal shape a selector resolves against: a full
// hierarchical name (for path matching and grouping fallback), an
// attribute bag (for match conditions), and an active/disabled flag.
// topology.Node, topology.Link, and risk-group names are adapted to this
// shape by the NodeEntities/LinkEntities/GroupEntities helpers in
// adapters.go so this package does not need to import topology's mutation
// API.
type Entity struct {
	Name   string
	Attrs  attrval.Value
	Active bool
}

// Op is a condition operator (§4.2).
type Op string

// The condition operators recognized by match.conditions.
const (
	OpEQ          Op = "=="
	OpNE          Op = "!="
	OpLT          Op = "<"
	OpLE          Op = "<="
	OpGT          Op = ">"
	OpGE          Op = ">="
	OpContains    Op = "contains"
	OpNotContains Op = "not_contains"
	OpIn          Op = "in"
	OpNotIn       Op = "not_in"
	OpExists      Op = "exists"
	OpNotExists   Op = "not_exists"
)

// Logic combines multiple conditions.
type Logic string

// The two supported condition-combination logics.
const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Condition is one match.conditions entry: an attribute dot-path, an
// operator, and (for all but *_exists) a comparison value.
type Condition struct {
	Attr  string
	Op    Op
	Value attrval.Value
}

// Match is the optional attribute predicate (§4.2 "match").
type Match struct {
	Conditions []Condition
	Logic      Logic
}

// Selector resolves to an ordered set of entities (§4.2). Path is the
// compiled, start-anchored regex matched against an entity's full name (a
// leading '/' is cosmetically stripped before compilation). GroupBy, if
// non-empty, partitions matches by the distinct value of that attribute
// dot-path; otherwise, for path-based selectors, matches are partitioned by
// the path regex's capture groups (joined with "|" if multiple); condition-
// based selectors never group by capture (CaptureGrouping is false).
type Selector struct {
	PathPattern     string
	Path            *regexp.Regexp
	Match           *Match
	GroupBy         string
	ActiveOnly      bool
	CaptureGrouping bool // true only for path-based selector contexts
}

// Group is one resolved partition: a deterministic key and its member
// entities, ordered by entity name.
type Group struct {
	Key      string
	Entities []Entity
}
