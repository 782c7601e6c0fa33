package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/scenario"
	"github.com/ngcore/netgraph/workflow"
)

func decodeDoc(t *testing.T, yamlDoc string) *scenario.Document {
	t.Helper()
	doc, err := scenario.Decode([]byte(yamlDoc))
	require.NoError(t, err)
	return doc
}

// linearDoc is a three-node chain A->B->C, capacity 10 on each link, with
// one demand A->C at volume 6 and a three-step workflow.
const linearDoc = `
seed: 42
network:
  groups:
    A:
      node_count: 1
    B:
      node_count: 1
    C:
      node_count: 1
  adjacency:
    - source: {path: "A/.*"}
      target: {path: "B/.*"}
      pattern: mesh
      capacity: 10
      cost: 1
    - source: {path: "B/.*"}
      target: {path: "C/.*"}
      pattern: mesh
      capacity: 10
      cost: 1
demands:
  - source: {path: "A/.*"}
    sink: {path: "C/.*"}
    volume: 6
    flow_policy: SHORTEST_PATHS_ECMP
    mode: combine
workflow:
  - type: BuildGraph
    name: graph
  - type: NetworkStats
    name: stats
  - type: MaxFlow
    name: flow
    source: {path: "A/.*"}
    sink: {path: "C/.*"}
    flow_policy: SHORTEST_PATHS_ECMP
    iterations: 1
  - type: TrafficMatrixPlacement
    name: placement
    traffic_matrix: ""
    iterations: 1
`

func TestRun_LinearScenarioAllStepsSucceed(t *testing.T) {
	doc := decodeDoc(t, linearDoc)

	report, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	require.NoError(t, err)
	require.Len(t, report.Steps, 4)

	graphOut, ok := report.ByName("graph")
	require.True(t, ok)
	graphData := graphOut.Data.(map[string]any)
	assert.Len(t, graphData["nodes"], 3)
	assert.Len(t, graphData["links"], 4) // two circuits, each stored as a pair of directed links

	statsOut, ok := report.ByName("stats")
	require.True(t, ok)
	statsData := statsOut.Data.(map[string]any)
	assert.Equal(t, 3, statsData["node_count"])
	assert.Equal(t, 4, statsData["link_count"])

	flowOut, ok := report.ByName("flow")
	require.True(t, ok)
	flowData := flowOut.Data.(map[string]any)
	baseline := flowData["baseline"].(map[string]any)
	assert.Equal(t, 10.0, baseline["total_flow"])

	placementOut, ok := report.ByName("placement")
	require.True(t, ok)
	placementData := placementOut.Data.(map[string]any)
	baselinePlacement := placementData["baseline"].(map[string]any)
	summary := baselinePlacement["summary"].(map[string]any)
	assert.Equal(t, 6.0, summary["placed"])
	assert.Equal(t, 0.0, summary["dropped"])
}

func TestRun_UnknownStepTypeFails(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    A: {node_count: 1}
workflow:
  - type: NotARealStep
    name: bogus
`)
	_, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	assert.Error(t, err)
}

func TestRun_CostPowerStepIsOutOfScope(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    A: {node_count: 1}
workflow:
  - type: CostPower
    name: cp
`)
	_, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	assert.Error(t, err)
}

func TestRun_UnknownFailurePolicyReferenceFails(t *testing.T) {
	doc := decodeDoc(t, `
network:
  groups:
    A: {node_count: 1}
    B: {node_count: 1}
  adjacency:
    - source: {path: "A/.*"}
      target: {path: "B/.*"}
      pattern: mesh
      capacity: 10
      cost: 1
workflow:
  - type: MaxFlow
    name: flow
    source: {path: "A/.*"}
    sink: {path: "B/.*"}
    flow_policy: SHORTEST_PATHS_ECMP
    failure_policy: does_not_exist
    iterations: 1
`)
	_, err := workflow.Run(context.Background(), doc, workflow.RunOptions{})
	assert.Error(t, err)
}

func TestRun_IsDeterministicAcrossRuns(t *testing.T) {
	doc1 := decodeDoc(t, linearDoc)
	doc2 := decodeDoc(t, linearDoc)

	r1, err := workflow.Run(context.Background(), doc1, workflow.RunOptions{})
	require.NoError(t, err)
	r2, err := workflow.Run(context.Background(), doc2, workflow.RunOptions{})
	require.NoError(t, err)

	flow1 := r1.Steps[2].Data.(map[string]any)["baseline"].(map[string]any)["total_flow"]
	flow2 := r2.Steps[2].Data.(map[string]any)["baseline"].(map[string]any)["total_flow"]
	assert.Equal(t, flow1, flow2)
}
