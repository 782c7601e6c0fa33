// Package flowpolicy implements the Flow Placement Policies (C7, §4.7): the
// two splitting rules — proportional-to-residual-capacity (WCMP) and
// equal-balanced (ECMP) — plus the five preset routing modes that compose a
// path-algorithm choice with a placement rule.
//
// Grounded on lvlath/flow's FlowOptions configuration-struct idiom
// (flow/types.go): a small, composable options value rather than an
// interface hierarchy, matching how the rest of the teacher's flow package
// threads behavior through a config struct instead of strategy objects.
package flowpolicy
