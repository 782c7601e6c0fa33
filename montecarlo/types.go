package montecarlo

import (
	"github.com/ngcore/netgraph/failure"
	"github.com/ngcore/netgraph/topology"
)

// FlowIterationResult is the uniform per-iteration output record (§6
// "Results document"): whatever analysisFn computed against one Network
// View, plus the bookkeeping the orchestrator layers on afterward.
type FlowIterationResult struct {
	TotalFlow        float64
	FlowResults      map[string]float64 // per-sub-demand identifier -> placed flow, for matrix placement
	Placed           float64
	Dropped          float64
	CostDistribution map[float64]float64
	MinCutEdges      []string
	OccurrenceCount  int      // number of iterations that produced this pattern (§4.11 step 4)
	FailureTrace     []string // present only when the failure policy asks for trace capture
}

// AnalysisFunc runs one iteration's analysis (max-flow or demand placement)
// against a masked Network View (§4.11 step 3). It must not mutate view or
// its underlying Store.
type AnalysisFunc func(view *topology.View) (FlowIterationResult, error)

// Outcome is the orchestrator's final output (§4.11 step 5).
type Outcome struct {
	Baseline FlowIterationResult
	Results  []FlowIterationResult
}

// Options configures one Monte Carlo run.
type Options struct {
	Iterations  int
	Seed        int64
	Parallelism int // 0 selects runtime.GOMAXPROCS(0), matching "default = number of hardware threads" (§4.11 step 2)
	Policy      *failure.Policy
}
