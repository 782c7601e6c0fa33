// Package blueprint implements the Blueprint Expander (C5, §4.5): it turns
// a scenario.Document into a topology.Store by materializing groups
// (recursively instantiating blueprints with parameter overrides),
// expanding adjacency rules into links, applying post-build rules, and
// resolving the risk-group tree.
//
// No teacher package is a declarative-topology compiler (lvlath builds
// graphs imperatively via AddVertex/AddEdge), so this package is new. Its
// validate-then-generate shape is grounded on lvlath/builder's
// functional-option-configured generators (builder/options.go,
// builder/impl_*.go): gather and validate a configuration up front, then
// walk a deterministic index space to emit graph entities. Parameter
// overrides are applied by marshaling the blueprint's configuration
// through gopkg.in/yaml.v3 into a generic tree, editing it by dot path, and
// unmarshaling it back — the same generic-tree idiom attrval/scenario use
// for attribute bags, reused here for structural configuration instead.
package blueprint
