// Package demand implements the Demand Placement & Policy Layer (§4.9):
// expanding a declared demand into concrete sub-demands and placing them,
// in priority order, onto a shared working graph of accumulated residuals.
package demand

import (
	"github.com/ngcore/netgraph/attrval"
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/selector"
)

// Mode governs how a demand's resolved source/sink node sets turn into
// sub-demands (§4.9).
type Mode string

// The two expansion modes.
const (
	// ModePairwise places one sub-demand per (source-node, sink-node) pair,
	// dividing the declared volume evenly across pairs.
	ModePairwise Mode = "pairwise"
	// ModeCombine places a single aggregate sub-demand spanning every
	// resolved source and sink, via the pseudo-source/pseudo-sink
	// mechanism (§4.8 step 1).
	ModeCombine Mode = "combine"
)

// GroupMode governs how a demand's source/sink selector *groups* (the
// capture-group or group_by partitions a Selector resolves to) combine
// before Mode is applied within each resulting pair (§4.9).
type GroupMode string

// The three group-combination modes.
const (
	// GroupFlatten merges every source group into one set and every sink
	// group into one set, ignoring group boundaries.
	GroupFlatten GroupMode = "flatten"
	// GroupPerGroup pairs each source group with the sink group sharing
	// the same group key; a source group with no matching sink group
	// contributes no sub-demand (an empty match is not an error, §4.2).
	GroupPerGroup GroupMode = "per_group"
	// GroupPairwise pairs every source group with every sink group (the
	// cartesian product of groups, not to be confused with Mode's
	// node-level pairwise).
	GroupPairwise GroupMode = "group_pairwise"
)

// Spec is one compiled demand declaration (§3 "Demand"), prior to
// expansion against a concrete Network View.
type Spec struct {
	Matrix    string // "" is the implicit default matrix
	SourceSel selector.Selector
	SinkSel   selector.Selector
	Volume    float64
	Priority  int
	Preset    flowpolicy.Preset
	Mode      Mode
	GroupMode GroupMode
	Attrs     attrval.Value
	seq       int // declaration order, for stable priority-tie insertion order (§5)
}

// SubDemand is one concrete sub-demand produced by expanding a Spec (§4.9):
// a stable identifier, a concrete source/sink node set, and the share of
// the parent Spec's volume it is responsible for.
type SubDemand struct {
	ID       string
	Matrix   string
	Sources  []string
	Sinks    []string
	Volume   float64
	Priority int
	Preset   flowpolicy.Preset
	seq      int
}
