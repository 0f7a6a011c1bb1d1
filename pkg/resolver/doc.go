// Package resolver computes a consistent install set from a universe of
// candidate package versions.
//
// # Overview
//
// A resolution takes a [Context]: every known [Candidate] (one concrete
// version of a package with its declared dependency ranges), the packages
// the user asked for, and a [DependencyBehavior] that biases which version
// is tried first. [Resolver.Resolve] returns the chosen packages ordered so
// that every dependency precedes its dependents, or an error explaining why
// no consistent set exists.
//
// The pipeline is:
//
//  1. Grouping: candidates are sorted and grouped by case-insensitive
//     identity ([Key]). Non-required groups gain an absent placeholder so
//     the search may leave an unneeded package out; dependency targets
//     missing from the universe get a group holding only that placeholder.
//  2. Search: [FindSolution] picks one candidate per group with an
//     explicit-stack backtracking search. Groups are tried in [Comparer]
//     order and pairs are checked with [ShouldRejectPair].
//  3. Checking: [FindCircularDependency] rejects solutions whose packages
//     depend on each other in a loop.
//  4. Ordering: [TopologicalSort] puts dependencies first, breaking ties by
//     identity so output is stable.
//
// When the search fails, [DiagnosticMessage] inspects the deepest partial
// solution and explains the conflict closest to the requested packages.
//
// # Errors
//
// Failures carry a [errors.Code] so callers can branch without reading the
// message:
//
//   - [errors.ErrCodeMissingPackage]: a required package has no candidate
//   - [errors.ErrCodeUnsatisfiable]: no combination satisfies every range
//   - [errors.ErrCodeCircularDependency]: the solution contains a cycle
//
// Cancellation returns ctx.Err() unchanged.
//
// # Determinism
//
// The package performs no I/O and keeps no state between calls. Resolving
// the same context twice yields identical output.
//
// [errors.Code]: github.com/matzehuels/depsolve/pkg/errors.Code
// [errors.ErrCodeMissingPackage]: github.com/matzehuels/depsolve/pkg/errors.ErrCodeMissingPackage
// [errors.ErrCodeUnsatisfiable]: github.com/matzehuels/depsolve/pkg/errors.ErrCodeUnsatisfiable
// [errors.ErrCodeCircularDependency]: github.com/matzehuels/depsolve/pkg/errors.ErrCodeCircularDependency
package resolver
