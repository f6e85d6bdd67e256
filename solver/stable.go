package solver

import (
	"context"
	"fmt"
	"slices"

	"github.com/fitforge/fitforge/benefit"
	"github.com/fitforge/fitforge/types"
)

// Stable implements deferred acceptance over the normalised benefit matrix.
//
// Teams propose and projects accept, and both sides rank by the same
// normalised value. A project holds one proposer at a time and only trades
// up to a strictly better one.
type Stable struct{}

var _ types.Solver = (*Stable)(nil)

// NewStable creates a stable matching solver.
//
// Returns:
//   - *Stable: Initialized solver
//
// Example:
//
//	res, err := solver.NewStable().Solve(ctx, req)
func NewStable() *Stable {
	return &Stable{}
}

// Solve computes a stable matching.
//
// The algorithm:
//  1. Normalise the benefit matrix to [0, 1] by its min and max
//  2. Seat forced allocations; their projects accept no proposers
//  3. Pop the next unmatched team from a FIFO queue and rank the projects it
//     may join with strictly positive normalised value, best first
//  4. Take the first free project, or evict a holder that values the
//     project strictly less and re-enqueue the evicted team
//  5. A team that wins nothing stays unassigned
//
// Rejected pairings and projects with no remaining capacity are never
// proposed to. Each eviction strictly raises the holder value of a project,
// so the procedure terminates.
//
// Parameters:
//   - ctx: Context checked before each proposal round
//   - req: Problem snapshot
//
// Returns:
//   - types.SolveResult: Selected edges and their score (Σ raw benefit)
//   - error: ErrInfeasible, ErrValidation or a wrapped context error
func (s *Stable) Solve(ctx context.Context, req types.SolveRequest) (types.SolveResult, error) {
	p, err := prepare(req)
	if err != nil {
		return types.SolveResult{}, err
	}
	b, err := benefit.FromRows(p.benefit)
	if err != nil {
		return types.SolveResult{}, fmt.Errorf("%w: %w", types.ErrValidation, err)
	}
	norm := b.Normalized()

	holder := make([]int, p.projects)
	for j := range holder {
		holder[j] = -1
	}
	choice := make([]int, p.teams)
	queue := make([]int, 0, p.teams)
	for i := range p.teams {
		choice[i] = -1
		if p.forced[i] < 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return types.SolveResult{}, fmt.Errorf("stable solve: %w", err)
		}
		team := queue[0]
		queue = queue[1:]

		for _, j := range s.candidates(p, norm, team) {
			current := holder[j]
			if current < 0 {
				holder[j] = team
				choice[team] = j

				break
			}
			if norm[team][j] > norm[current][j] {
				choice[current] = -1
				queue = append(queue, current)
				holder[j] = team
				choice[team] = j

				break
			}
		}
	}

	return p.result(choice), nil
}

// candidates lists projects team may propose to, best first. Ties go to
// the lower project index.
func (s *Stable) candidates(p *problem, norm [][]float64, team int) []int {
	out := make([]int, 0, p.projects)
	for j := range p.projects {
		if norm[team][j] <= 0 || p.residual[j] == 0 || !p.allowed(team, j) {
			continue
		}
		out = append(out, j)
	}
	slices.SortStableFunc(out, func(a, b int) int {
		switch {
		case norm[team][a] > norm[team][b]:
			return -1
		case norm[team][a] < norm[team][b]:
			return 1
		default:
			return 0
		}
	})

	return out
}
