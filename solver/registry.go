package solver

import (
	"fmt"

	"github.com/fitforge/fitforge/types"
)

// ForAlgorithm returns the built-in solver for alg.
//
// Parameters:
//   - alg: Solver variant
//   - objective: Objective used by the ILP variant
//
// Returns:
//   - types.Solver: Built-in implementation
//   - error: ErrUnknownAlgorithm for variants outside the closed set
func ForAlgorithm(alg types.Algorithm, objective Objective) (types.Solver, error) {
	switch alg {
	case types.AlgorithmILP:
		return NewILP(WithObjective(objective)), nil
	case types.AlgorithmGS:
		return NewStable(), nil
	default:
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownAlgorithm, int(alg))
	}
}
