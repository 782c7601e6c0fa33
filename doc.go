// Package netgraph is a scenario-driven network topology modeling and
// capacity-analysis engine: it materializes a blueprint-expanded graph from
// a declarative scenario document, places traffic demands and computes
// max-flow under configurable flow-placement policies, and runs Monte Carlo
// failure-injection studies over the result.
//
// The engine is organized as a pipeline of focused packages rather than a
// single top-level API:
//
//	attrval/    — recursive tagged-value type for dynamic attribute bags
//	scenario/   — the as-declared YAML document shape and its decoder
//	pattern/    — bracket/`${var}` identifier expansion
//	selector/   — path- and condition-based entity resolution
//	topology/   — the immutable-after-build Graph Store and Network Views
//	riskgroup/  — shared-risk-group trees and membership closure
//	blueprint/  — expands a scenario document into a materialized Store
//	spf/        — the shortest-path-forest kernel backing flow placement
//	flowpolicy/ — named flow-splitting presets (ECMP/WCMP/TE)
//	maxflow/    — the pseudo-source/pseudo-sink max-flow engine
//	demand/     — demand expansion and priority-ordered placement
//	failure/    — weighted failure-mode policies and sampling
//	montecarlo/ — the parallel failure-injection orchestrator
//	workflow/   — sequences the fixed catalog of analysis steps
//	config/     — engine-level operational defaults (koanf-backed)
//	telemetry/  — structured logging, tracing, and metrics
//	ngerr/      — the shared error taxonomy every package wraps
//
// A typical caller decodes a scenario.Document, then calls workflow.Run to
// execute its declared steps end to end.
package netgraph
