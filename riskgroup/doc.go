// Package riskgroup implements the risk-group tree (§3 Risk Group): a named
// set with optional nested children, cycle-free by invariant, whose
// membership closes under two relations used elsewhere in the system:
//
//   - "shares a risk group with" (used by the failure engine's
//     expand_groups, §4.10 step 3)
//   - "descendant of" (used by expand_children, same step)
//
// Cycle detection is grounded on lvlath/dfs's three-color DFS
// (DetectCycles in dfs/cycle.go); closure expansion is grounded on
// lvlath/bfs's level-order frontier walk (bfs/bfs.go), generalized from a
// single-graph BFS to a frontier expansion over group membership/child
// edges.
package riskgroup
