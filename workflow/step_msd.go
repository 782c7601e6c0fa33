package workflow

import (
	"context"

	"github.com/ngcore/netgraph/demand"
	"github.com/ngcore/netgraph/failure"
	"github.com/ngcore/netgraph/montecarlo"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/topology"
)

// msdProbe is one bracket or bisect sample (§6 "data ... For
// MaximumSupportedDemand: { alpha_star, iterations, history }").
type msdProbe struct {
	Alpha    float64
	Accepted bool
	Fraction float64
}

// runMaximumSupportedDemand bisects the scale factor alpha at which a
// traffic matrix places at (or just above) an acceptance threshold derived
// from `resolution` (§4.12 "MaximumSupportedDemand": "Bisect on a scale
// factor alpha such that the full matrix places at exactly the acceptance
// threshold; return alpha_star").
//
// accepts(alpha) is evaluated by majority vote across seeds_per_alpha
// independent probes (strict majority: ties reject, per the spec's Open
// Question (b) resolution). Each probe places the matrix, scaled by alpha,
// through one Monte Carlo iteration at a distinct derived seed; with no
// failure_policy configured every probe is deterministic and agrees, so
// seeds_per_alpha only matters once a failure policy introduces variance.
func runMaximumSupportedDemand(ctx context.Context, rt *runtime, step compiledStep) (any, error) {
	def := step.def

	specs, ok := rt.matrices[def.TrafficMatrix]
	if !ok {
		return nil, &ngerr.AnalysisError{Step: def.Name, Msg: "unknown traffic_matrix " + def.TrafficMatrix}
	}
	policy, err := rt.lookupFailurePolicy(def.FailurePolicy)
	if err != nil {
		return nil, err
	}

	alphaStart := paramNumber(step, "alpha_start", 1.0)
	growthFactor := paramNumber(step, "growth_factor", 2.0)
	alphaMax := paramNumber(step, "alpha_max", 1<<20)
	resolution := paramNumber(step, "resolution", 0.01)
	seedsPerAlpha := paramInt(step, "seeds_per_alpha", 1)
	maxBracketIters := paramInt(step, "max_bracket_iters", 30)
	maxBisectIters := paramInt(step, "max_bisect_iters", 40)
	// The acceptance threshold is "within resolution of full placement"
	// (§4.12): a matrix scaled by alpha accepts if its placed fraction is
	// at least 1-resolution of its (scaled) requested volume.
	acceptanceThreshold := paramNumber(step, "acceptance_threshold", 1.0-resolution)

	var history []msdProbe
	probeSeed := def.Seed

	accepts := func(alpha float64) (bool, float64) {
		votes, fracSum := 0, 0.0
		for i := 0; i < seedsPerAlpha; i++ {
			probeSeed++
			frac, err := placedFraction(ctx, rt.store, scaleSpecs(specs, alpha), policy, probeSeed)
			if err != nil {
				frac = 0
			}
			fracSum += frac
			if frac >= acceptanceThreshold {
				votes++
			}
		}
		accepted := votes*2 > seedsPerAlpha
		avgFrac := fracSum / float64(seedsPerAlpha)
		history = append(history, msdProbe{Alpha: alpha, Accepted: accepted, Fraction: avgFrac})
		return accepted, avgFrac
	}

	lo := 0.0
	hi := alphaStart
	loAccepted, _ := accepts(alphaStart)
	if !loAccepted {
		// Already over capacity at alpha_start: the bracket is [0, alpha_start].
		hi = alphaStart
	} else {
		lo = alphaStart
		hi = alphaStart * growthFactor
		iters := 0
		for iters < maxBracketIters && hi <= alphaMax {
			accepted, _ := accepts(hi)
			if !accepted {
				break
			}
			lo = hi
			hi *= growthFactor
			iters++
		}
		if hi > alphaMax {
			hi = alphaMax
		}
	}

	for i := 0; i < maxBisectIters && hi-lo > resolution; i++ {
		mid := lo + (hi-lo)/2
		accepted, _ := accepts(mid)
		if accepted {
			lo = mid
		} else {
			hi = mid
		}
	}

	historyOut := make([]any, len(history))
	for i, p := range history {
		historyOut[i] = map[string]any{
			"alpha": p.Alpha, "accepted": p.Accepted, "placed_fraction": p.Fraction,
		}
	}

	rt.recordStep(def.Name, StepMaximumSupportedDemand, 0, nil)
	return map[string]any{
		"alpha_star": lo,
		"iterations": len(history),
		"history":    historyOut,
	}, nil
}

// placedFraction places specs (already alpha-scaled) once, deterministically
// at seed, and returns placed volume over requested volume. A zero-volume
// matrix is vacuously fully placed.
func placedFraction(ctx context.Context, store *topology.Store, specs []demand.Spec, policy *failure.Policy, seed int64) (float64, error) {
	outcome, err := montecarlo.Run(ctx, store, montecarlo.Options{
		Iterations: 1, Seed: seed, Policy: policy,
	}, montecarlo.DemandPlacementAnalysis(specs))
	if err != nil {
		return 0, err
	}
	requested := 0.0
	for _, s := range specs {
		requested += s.Volume
	}
	if requested == 0 {
		return 1, nil
	}
	if len(outcome.Results) == 0 {
		return 0, nil
	}
	return outcome.Results[0].Placed / requested, nil
}
