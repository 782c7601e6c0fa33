// Package failure compiles and evaluates scenario failure policies (§4.10):
// a named set of weighted failure modes, each a list of selector-driven
// rules over nodes, links, or risk groups, producing one concrete
// failed-entity set per Monte Carlo iteration.
package failure
