// Package selector implements the Selector Engine (C2, §4.2): resolution of
// path-regex + attribute-condition selectors against the node/link/risk-group
// universe, with the two selection models (path-based and condition-based)
// and their context-aware defaults.
//
// Resolution is a pure function of (entity universe, Selector) — no teacher
// package resolves declarative selectors (lvlath is a graph algorithms
// library, not a topology compiler), so this package is new. Its predicate
// evaluation is grounded on lvlath/builder's validate-then-apply option
// style (builder/validators.go) and reuses topology.Node/topology.Link and
// attrval.Value as its entity/attribute model rather than introducing a
// parallel representation.
package selector
