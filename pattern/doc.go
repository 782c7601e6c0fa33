// Package pattern implements the three orthogonal expansion mechanisms of
// §4.1: bracket expansion over name strings ("dc[1-3]/rack[a,b]"), variable
// substitution ("$name"/"${name}" against a vars mapping, cartesian or zip
// mode), and "{n}"-style format placeholders for templated node numbering.
//
// None of these has a direct analog in the teacher repo (lvlath is a graph
// library, not a topology compiler), so the package is new. It keeps the
// teacher's validate-then-generate shape from builder/impl_*.go: a
// constructor parses and validates a template up front, then a generation
// step walks a deterministic index space in left-to-right order.
package pattern
