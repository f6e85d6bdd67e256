package types

import "context"

// Solver computes a candidate allocation over a benefit matrix.
//
// Built-in variants:
//   - AlgorithmILP: capacitated optimal assignment with hard-fixed forced edges
//   - AlgorithmGS: deferred-acceptance stable matching on normalised benefit
//
// Implementations must:
//   - Treat the request as read-only
//   - Never select a rejected pairing
//   - Honour ctx cancellation inside long-running loops
//   - Be deterministic for identical requests
type Solver interface {
	// Solve runs the algorithm.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadline
	//   - req: Immutable problem snapshot
	//
	// Returns:
	//   - SolveResult: Selected edges and their benefit score
	//   - error: ErrInfeasible, a context error, or ErrValidation for a malformed request
	Solve(ctx context.Context, req SolveRequest) (SolveResult, error)
}

// SolveRequest is an immutable snapshot of the problem handed to a Solver.
type SolveRequest struct {
	// Benefit is the m×n benefit matrix, 0-based rows (teams) and columns (projects).
	Benefit [][]float64

	// Capacities holds one entry per project, 0-based.
	Capacities []int

	// Allocations are forced edges that every solution must contain.
	Allocations []Pairing

	// Rejections are forbidden edges.
	Rejections []Pairing
}

// Teams returns m.
func (r SolveRequest) Teams() int {
	return len(r.Benefit)
}

// Projects returns n.
func (r SolveRequest) Projects() int {
	if len(r.Benefit) == 0 {
		return 0
	}

	return len(r.Benefit[0])
}

// SolveResult is the output of a Solver.
type SolveResult struct {
	// Feasible is false only when the forced edges cannot be honoured.
	Feasible bool

	// Pairings are the selected edges sorted by team, then project.
	Pairings []Pairing

	// Score is the unbiased sum of benefit values over Pairings.
	Score float64
}
