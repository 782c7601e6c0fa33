package montecarlo

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/ngcore/netgraph/failure"
	"github.com/ngcore/netgraph/ngerr"
	"github.com/ngcore/netgraph/topology"
)

type iterationOutcome struct {
	index   int
	result  FlowIterationResult
	pattern string
	trace   []string
	err     error
}

type aggregate struct {
	result FlowIterationResult
	trace  []string
	count  int
}

// Run executes the Monte Carlo Orchestrator (§4.11): a baseline iteration
// (index 0, no injected failures) plus opts.Iterations failure-injected
// iterations, dispatched to a bounded worker pool and reduced by canonical
// failure-pattern key.
//
// Grounded on flowgraph's executeForkJoin: a semaphore-bounded goroutine per
// unit of work, a buffered results channel, a separate goroutine that closes
// it once a WaitGroup drains, and a plain range-collect loop. As in that
// pattern, a goroutine that is still waiting on the semaphore when ctx is
// canceled returns without doing any work rather than completing it; a
// goroutine that has already acquired a slot always runs to completion
// (§4.11 "cancellation is cooperative: iterations already dispatched to a
// worker run to completion").
func Run(ctx context.Context, store *topology.Store, opts Options, analysisFn AnalysisFunc) (*Outcome, error) {
	if opts.Iterations < 0 {
		return nil, &ngerr.AnalysisError{Step: "montecarlo", Msg: "iterations must be non-negative"}
	}
	if analysisFn == nil {
		return nil, &ngerr.AnalysisError{Step: "montecarlo", Msg: "analysisFn must not be nil"}
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	seeds := deriveSeeds(opts.Seed, opts.Iterations+1)

	sem := make(chan struct{}, parallelism)
	outcomes := make(chan iterationOutcome, opts.Iterations+1)
	var wg sync.WaitGroup

dispatch:
	for i := 0; i <= opts.Iterations; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		default:
		}

		wg.Add(1)
		go func(idx int, subseed int64) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			outcomes <- runOne(store, opts.Policy, analysisFn, idx, subseed)
		}(i, seeds[i])
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var baseline FlowIterationResult
	haveBaseline := false
	byPattern := map[string]*aggregate{}
	var firstErr error

	for oc := range outcomes {
		if oc.err != nil {
			if firstErr == nil {
				firstErr = oc.err
			}
			continue
		}
		if oc.index == 0 {
			baseline = oc.result
			haveBaseline = true
			continue
		}
		agg, ok := byPattern[oc.pattern]
		if !ok {
			agg = &aggregate{result: oc.result, trace: oc.trace}
			byPattern[oc.pattern] = agg
		}
		agg.count++
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if !haveBaseline {
		// Only possible if ctx was canceled before the baseline iteration
		// (index 0) ever acquired a worker slot.
		return nil, ctx.Err()
	}

	keys := make([]string, 0, len(byPattern))
	for k := range byPattern {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]FlowIterationResult, 0, len(keys))
	for _, k := range keys {
		agg := byPattern[k]
		r := agg.result
		r.OccurrenceCount = agg.count
		r.FailureTrace = agg.trace
		results = append(results, r)
	}

	return &Outcome{Baseline: baseline, Results: results}, nil
}

// runOne executes a single iteration: the baseline (index 0) runs analysisFn
// against the unmodified scenario view; every other iteration draws a
// failure pattern from policy and layers it onto the view before analysis
// (§4.11 step 3).
func runOne(store *topology.Store, policy *failure.Policy, analysisFn AnalysisFunc, index int, subseed int64) iterationOutcome {
	rng := rand.New(rand.NewSource(subseed))
	if index == 0 {
		res, err := analysisFn(topology.BaseView(store))
		return iterationOutcome{index: index, result: res, err: err}
	}

	fr := failure.Select(policy, store, rng)
	view := topology.BaseView(store).WithAdditionalMask(fr.FailedNodes, fr.FailedLinks)
	res, err := analysisFn(view)
	if err != nil {
		return iterationOutcome{index: index, err: err}
	}
	return iterationOutcome{index: index, result: res, pattern: fr.PatternKey(), trace: fr.Trace}
}

// deriveSeeds draws n independent sub-seeds from a master PRNG seeded with
// seed (§4.11 step 1): "derive a seed sequence of length iterations + 1 from
// the scenario seed; index 0 is reserved for the baseline iteration, which
// injects no failures."
func deriveSeeds(seed int64, n int) []int64 {
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	return seeds
}
