package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/workflow"
)

// msdDoc is a two-link chain: A->B capacity 100, B->C capacity 200, so the
// A->C matrix (declared at volume 100) places fully up to alpha=1.0 and only
// partially beyond it — the monotonic predicate the bisection assumes.
const msdDoc = `
seed: 7
network:
  groups:
    A: {node_count: 1}
    B: {node_count: 1}
    C: {node_count: 1}
  adjacency:
    - source: {path: "A/.*"}
      target: {path: "B/.*"}
      pattern: mesh
      capacity: 100
      cost: 1
    - source: {path: "B/.*"}
      target: {path: "C/.*"}
      pattern: mesh
      capacity: 200
      cost: 1
demands:
  - source: {path: "A/.*"}
    sink: {path: "C/.*"}
    volume: 100
    flow_policy: SHORTEST_PATHS_ECMP
    mode: combine
workflow:
  - type: MaximumSupportedDemand
    name: msd
    traffic_matrix: ""
    params:
      alpha_start: 1.0
      growth_factor: 2.0
      resolution: 0.05
      max_bracket_iters: 10
      max_bisect_iters: 20
`

func TestRun_MaximumSupportedDemandBisectsToBottleneck(t *testing.T) {
	doc := decodeDoc(t, msdDoc)

	report, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	require.NoError(t, err)

	out, ok := report.ByName("msd")
	require.True(t, ok)
	data := out.Data.(map[string]any)

	// The first link caps the chain at 100 total flow against a 100-volume
	// matrix: alpha=1.0 fully places, alpha=2.0 (volume 200) does not, so
	// alpha_star should converge to 1.0 within the configured resolution.
	alphaStar := data["alpha_star"].(float64)
	assert.InDelta(t, 1.0, alphaStar, 0.1)
	assert.Greater(t, data["iterations"], 0)
	assert.NotEmpty(t, data["history"])
}

func TestRun_TrafficMatrixPlacementScalesFromMSDStep(t *testing.T) {
	doc := decodeDoc(t, msdDoc)
	doc.Workflow = append(doc.Workflow, doc.Workflow[0])
	doc.Workflow[1].Type = workflow.StepTrafficMatrixPlacement
	doc.Workflow[1].Name = "placement"
	doc.Workflow[1].FromStep = "msd"
	doc.Workflow[1].Iterations = 1

	report, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	require.NoError(t, err)

	placementOut, ok := report.ByName("placement")
	require.True(t, ok)
	data := placementOut.Data.(map[string]any)
	baseline := data["baseline"].(map[string]any)
	summary := baseline["summary"].(map[string]any)
	// Scaled by alpha_star (~1.0), the matrix should still place close to
	// fully against the 100-capacity bottleneck.
	assert.InDelta(t, 100.0, summary["placed"], 15.0)
}
