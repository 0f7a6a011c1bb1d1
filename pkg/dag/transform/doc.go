// Package transform provides graph transformations over a [dag.DAG] of
// package identities.
//
// # Cycle Breaking
//
// [BreakCycles] removes back edges found by a depth-first search so that a
// gathered universe, which may contain circular references between
// identities, can still be layered and rendered. The removed edges are
// returned so callers can report them.
//
// # Transitive Reduction
//
// [TransitiveReduction] removes edges implied by longer paths. If A→B and
// B→C exist, then A→C is redundant. Rendering a reduced install set keeps
// only the direct reasons a package is present.
//
// # Layering and Install Waves
//
// [AssignLayers] puts every node one row below its deepest dependent, with
// top-level packages at row 0. [InstallWaves] groups nodes by their height
// above the leaves instead: wave 0 holds packages without dependencies and
// every later wave depends only on earlier ones, so each wave can be
// installed in parallel.
//
//	transform.BreakCycles(g)
//	transform.TransitiveReduction(g)
//	transform.AssignLayers(g)
//	waves := transform.InstallWaves(g)
package transform
