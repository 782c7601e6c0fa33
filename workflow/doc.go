// Package workflow implements the Workflow Driver (§4.12): it sequences a
// scenario document's fixed catalog of analysis steps, threading the
// outputs of earlier steps into later ones via `from_step`/`from_field`
// references, and emits one typed result per step (§6 "Results document").
//
// Grounded on randalmurphal/flowgraph's step-sequencing/registry pattern
// (a named-step catalog dispatched by a fixed table, one OpenTelemetry span
// per step) and wires in montecarlo/maxflow/demand as the analysis engines
// behind MaxFlow/TrafficMatrixPlacement.
package workflow
