// Package demand implements the Demand Placement & Policy Layer (§4.9):
// compiling declared demands into Specs, expanding each into concrete
// sub-demands, and placing them in priority order onto a shared working
// graph of accumulated per-edge committed flow.
package demand
