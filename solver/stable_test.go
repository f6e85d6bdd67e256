package solver

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/fitforge/fitforge/types"
	"github.com/stretchr/testify/require"
)

func TestStable_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("diagonal preference", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    scenarioBenefit(),
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.True(t, res.Feasible)
		require.Equal(t, map[int][]int{1: {1}, 2: {2}}, GroupByTeam(res.Pairings))
		require.InDelta(t, 10.0, res.Score, 1e-9)
	})

	t.Run("stronger proposer evicts holder", func(t *testing.T) {
		// Both teams like project 1 best; team 2 values it more and evicts
		// team 1, which falls back to project 2.
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{6, 3}, {9, 1}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}, {Team: 2, Project: 1}}, res.Pairings)
		require.InDelta(t, 12.0, res.Score, 1e-9)
	})

	t.Run("equal proposer does not evict", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{5, 0}, {5, 0}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 1}}, res.Pairings)
	})

	t.Run("minimum valued cells are never candidates", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{2, 2}, {2, 2}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		// Zero span: every positive cell normalises to 1.
		require.Equal(t, []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 2}}, res.Pairings)

		res, err = NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{1, 4}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}}, res.Pairings)
	})
}

func TestStable_Constraints(t *testing.T) {
	ctx := context.Background()

	t.Run("rejections are skipped", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    scenarioBenefit(),
			Capacities: []int{1, 1},
			Rejections: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.NoError(t, err)
		require.NotContains(t, res.Pairings, types.Pairing{Team: 1, Project: 1})
		require.Contains(t, res.Pairings, types.Pairing{Team: 2, Project: 2})
	})

	t.Run("zero capacity projects are skipped", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:    scenarioBenefit(),
			Capacities: []int{0, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 2, Project: 2}}, res.Pairings)
	})

	t.Run("forced allocations are pinned", func(t *testing.T) {
		res, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:     [][]float64{{5, 2}, {9, 3}},
			Capacities:  []int{1, 1},
			Allocations: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 2}}, res.Pairings)
		require.InDelta(t, 8.0, res.Score, 1e-9)
	})

	t.Run("infeasible forced allocation", func(t *testing.T) {
		_, err := NewStable().Solve(ctx, types.SolveRequest{
			Benefit:     scenarioBenefit(),
			Capacities:  []int{0, 1},
			Allocations: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.ErrorIs(t, err, types.ErrInfeasible)
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewStable().Solve(cctx, types.SolveRequest{Benefit: scenarioBenefit(), Capacities: []int{1, 1}})
		require.ErrorIs(t, err, context.Canceled)
	})
}

// TestStable_RandomInstances checks structural properties and stability on
// random inputs: no free team prefers a project whose holder values it less.
func TestStable_RandomInstances(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	ctx := context.Background()

	for round := range 200 {
		req := randomRequest(rng, 1+rng.IntN(5), 1+rng.IntN(4))
		res, err := NewStable().Solve(ctx, req)
		if err != nil {
			require.ErrorIs(t, err, types.ErrInfeasible, "round %d", round)
			continue
		}
		assertValid(t, req, res)

		holders := map[int]int{}
		for _, p := range res.Pairings {
			if !hasForced(req.Allocations, p.Team) {
				holders[p.Project] = p.Team
			}
		}
		assigned := GroupByTeam(res.Pairings)
		for j, h := range holders {
			for i := 1; i <= req.Teams(); i++ {
				if _, ok := assigned[i]; ok || hasForced(req.Allocations, i) {
					continue
				}
				rejected := false
				for _, r := range req.Rejections {
					if r == (types.Pairing{Team: i, Project: j}) {
						rejected = true
					}
				}
				if rejected {
					continue
				}
				require.LessOrEqual(t, req.Benefit[i-1][j-1], req.Benefit[h-1][j-1],
					"round %d: free team %d outranks holder %d on project %d", round, i, h, j)
			}
		}
	}
}

func TestForAlgorithm(t *testing.T) {
	s, err := ForAlgorithm(types.AlgorithmILP, ObjectiveBenefit)
	require.NoError(t, err)
	require.IsType(t, &ILP{}, s)
	require.Equal(t, ObjectiveBenefit, s.(*ILP).Objective())

	s, err = ForAlgorithm(types.AlgorithmGS, ObjectiveCoverage)
	require.NoError(t, err)
	require.IsType(t, &Stable{}, s)

	_, err = ForAlgorithm(types.Algorithm(9), ObjectiveCoverage)
	require.ErrorIs(t, err, types.ErrUnknownAlgorithm)
}
