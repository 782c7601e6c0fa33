package maxflow

import (
	"github.com/ngcore/netgraph/flowpolicy"
	"github.com/ngcore/netgraph/topology"
)

const (
	pseudoSource = "\x00pseudo-source"
	pseudoSink   = "\x00pseudo-sink"
	epsilon      = 1e-9
)

// Result is the outcome of one Max-Flow Engine run (§4.8 step 4).
type Result struct {
	TotalFlow           float64
	PerEdgeFlow         map[string]float64
	ResidualCapacities  map[string]float64
	ReachableFromSource map[string]bool
	MinCutEdges         []string
	CostDistribution    map[float64]float64

	params params
}

type params struct {
	view    *topology.View
	sources []string
	sinks   []string
	policy  flowpolicy.Policy
	mode    flowpolicy.PathMode
}
