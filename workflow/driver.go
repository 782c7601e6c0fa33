package workflow

import (
	"context"
	"time"

	"github.com/ngcore/netgraph/scenario"
)

// Run compiles and executes a scenario document's workflow (§4.12): it
// materializes the graph (fatal on error, §7), then evaluates each step in
// order, storing results keyed by step name so later steps can reference
// earlier ones via `from_step`/`from_field`. An error raised by a step
// aborts the workflow but preserves every step that completed before it
// (§7 "Errors detected during analysis abort that step but preserve
// earlier successful steps' results").
func Run(ctx context.Context, doc *scenario.Document, opts RunOptions) (*Report, error) {
	opts = opts.withDefaults()

	rt, err := compile(doc)
	if err != nil {
		return nil, err
	}
	rt.opts = opts

	for _, step := range rt.steps {
		ctx, span := opts.Spans.StartStepSpan(ctx, step.def.Name, step.def.Type)
		start := time.Now()

		data, err := step.run(ctx, rt, step)

		opts.Spans.EndSpanWithError(span, err)
		if err != nil {
			return rt.report, err
		}

		rt.report.Steps = append(rt.report.Steps, StepOutput{
			Metadata: Metadata{
				DurationSec: time.Since(start).Seconds(),
				StepType:    step.def.Type,
				StepName:    step.def.Name,
			},
			Data: data,
		})
	}

	return rt.report, nil
}
