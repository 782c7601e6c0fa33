// Package scenario defines the declarative document's typed tree (§6
// "Scenario document") and the yaml.v3-based decode path that turns raw
// YAML into it. "Exact syntactic layout... is supplied by the external
// parser; the core consumes an already-parsed tree of plain values" — this
// package is that boundary: everything downstream (blueprint, demand,
// failure, workflow) consumes Document and never touches yaml.v3 directly.
//
// Grounded on NavarchProject's pkg/simulator/scenario.go: a single
// yaml-tagged root struct, a LoadScenario(path) convenience, and a
// Validate() pass distinct from decode.
package scenario
