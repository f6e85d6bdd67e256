// Package solver provides the built-in allocation solvers.
//
// Two variants implement types.Solver:
//
//   - ILP: capacitated optimal assignment. The 0/1 model (team rows ≤ 1,
//     project columns ≤ capacity) is totally unimodular, so it is solved
//     exactly as a min-cost flow with successive shortest augmenting paths.
//     Forced allocations are fixed to 1 and rejections to 0.
//   - Stable: deferred acceptance where teams and projects rank each other by
//     the same normalised benefit matrix.
//
// # Objective selection
//
// ObjectiveCoverage (the default) first maximises the number of assigned
// teams and then the total benefit. ObjectiveBenefit maximises total benefit
// only and may leave teams unassigned when no remaining edge adds value.
//
// Custom solvers can be plugged into the engine by satisfying types.Solver.
package solver
