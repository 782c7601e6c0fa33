package workflow

import (
	"context"

	"github.com/ngcore/netgraph/ngerr"
)

// runCostPower exists only to give `CostPower` a dispatch entry: §1's
// Non-goals explicitly place "cost/power aggregation" out of scope, so a
// scenario that names this step in its workflow gets a clear configuration
// error rather than a silent "unknown workflow step type".
func runCostPower(_ context.Context, _ *runtime, step compiledStep) (any, error) {
	return nil, &ngerr.ConfigurationError{
		Subject: "workflow[" + step.def.Name + "].type",
		Msg:     "CostPower is out of scope (cost/power aggregation); see Non-goals",
	}
}
