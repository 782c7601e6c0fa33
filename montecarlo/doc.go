// Package montecarlo implements the Monte Carlo Failure Orchestrator
// (§4.11): repeatedly drawing a failure pattern from a compiled policy,
// masking it onto a Network View, running a caller-supplied analysis over
// that view, and reducing the resulting iterations by canonical failure
// pattern.
package montecarlo
