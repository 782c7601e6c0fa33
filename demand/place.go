package demand

import (
	"sort"
	"strings"

	"github.com/ngcore/netgraph/maxflow"
	"github.com/ngcore/netgraph/spf"
	"github.com/ngcore/netgraph/topology"
)

// PlacedSubDemand pairs a SubDemand with the Max-Flow Engine result placed
// for it (§4.9 step 3: "placed, unplaced, and the per-edge flow
// contribution indexed by a stable demand identifier").
type PlacedSubDemand struct {
	SubDemand
	Result *maxflow.Result
}

// Unplaced is the portion of SubDemand.Volume that could not be placed.
func (p PlacedSubDemand) Unplaced() float64 {
	u := p.Volume - p.Result.TotalFlow
	if u < 0 {
		return 0
	}
	return u
}

// PlacementResult is the outcome of placing an entire set of Specs (one
// traffic matrix's worth of demands) onto a shared working graph.
type PlacementResult struct {
	Placed         []PlacedSubDemand
	TotalRequested float64
	TotalPlaced    float64
}

// Placer places demands sequentially onto a working graph of accumulated
// committed flow (§4.9: "Demands share a working graph that accumulates
// per-edge committed flow"). A Placer is single-use per Monte Carlo
// iteration: its working graph and SPF reachability cache must not escape
// the worker that owns it (§5).
type Placer struct {
	view  *topology.View
	cache map[string]*spf.Result // joined source-node-set key -> SPF result, cacheable presets only
}

// NewPlacer constructs a Placer over view.
func NewPlacer(view *topology.View) *Placer {
	return &Placer{view: view, cache: map[string]*spf.Result{}}
}

// PlaceAll expands every spec into its sub-demands and places them in
// priority order (ascending numeric priority = more important; ties broken
// by declaration order, §5), each against the residuals left by every
// higher-priority sub-demand placed before it.
func (p *Placer) PlaceAll(specs []Spec) (*PlacementResult, error) {
	var subs []SubDemand
	for _, spec := range specs {
		expanded, err := Expand(p.view, spec)
		if err != nil {
			return nil, err
		}
		subs = append(subs, expanded...)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Priority != subs[j].Priority {
			return subs[i].Priority < subs[j].Priority
		}
		return subs[i].seq < subs[j].seq
	})

	committed := map[string]float64{}
	res := &PlacementResult{}
	for _, sd := range subs {
		res.TotalRequested += sd.Volume
		placed, err := p.placeOne(sd, committed)
		if err != nil {
			return nil, err
		}
		res.Placed = append(res.Placed, PlacedSubDemand{SubDemand: sd, Result: placed})
		res.TotalPlaced += placed.TotalFlow
		for id, flow := range placed.PerEdgeFlow {
			committed[id] += flow
		}
	}
	return res, nil
}

func (p *Placer) placeOne(sd SubDemand, committed map[string]float64) (*maxflow.Result, error) {
	if sd.Preset.Cacheable() && !p.reachable(sd) {
		return &maxflow.Result{
			PerEdgeFlow:         map[string]float64{},
			ResidualCapacities:  map[string]float64{},
			ReachableFromSource: map[string]bool{},
			CostDistribution:    map[float64]float64{},
		}, nil
	}

	overrides := p.overridesFor(committed)
	full, err := maxflow.ComputeWithOverrides(p.view, sd.Sources, sd.Sinks, sd.Preset.Policy, sd.Preset.Mode, overrides)
	if err != nil {
		return nil, err
	}
	return maxflow.CapToVolume(full, sd.Volume), nil
}

// overridesFor computes each link's residual capacity under the working
// graph's accumulated commitments (§4.9: "residuals decrease monotonically
// as demands are placed in priority order").
func (p *Placer) overridesFor(committed map[string]float64) map[string]float64 {
	links := p.view.Links()
	out := make(map[string]float64, len(links))
	for _, l := range links {
		out[l.ID] = l.Capacity - committed[l.ID]
	}
	return out
}

// reachable answers the SPF-cache reachability pre-check of §4.9 step 1:
// "Fetches or computes an SPF cache keyed by (source-node, preset) — valid
// only for presets that do not depend on residual capacity." The cache
// holds pure topological reachability (Dijkstra never consults capacity),
// so it only ever proves a sub-demand is unplaceable outright — it never
// substitutes for the Max-Flow Engine's own residual-aware computation, so
// no per-preset key is needed: the same reachability fact holds for every
// cacheable preset sharing a source set. Callers for a non-cacheable (TE
// bundle-limited) preset skip this cache entirely and always invoke the
// engine, matching "TE presets must recompute when residuals change."
func (p *Placer) reachable(sd SubDemand) bool {
	key := cacheKey(sd.Sources)
	res, ok := p.cache[key]
	if !ok {
		r, err := spf.ShortestPathsMulti(p.view, sd.Sources)
		if err != nil {
			return true // fail open; let the Max-Flow Engine report the definitive answer
		}
		p.cache[key] = r
		res = r
	}
	for _, sink := range sd.Sinks {
		if res.Reachable(sink) {
			return true
		}
	}
	return false
}

func cacheKey(sources []string) string {
	sorted := append([]string(nil), sources...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
