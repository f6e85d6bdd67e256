package solver

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/fitforge/fitforge/types"
	"github.com/stretchr/testify/require"
)

func scenarioBenefit() [][]float64 {
	return [][]float64{{5, 1}, {1, 5}}
}

func TestILP_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("picks the diagonal", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:    scenarioBenefit(),
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.True(t, res.Feasible)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 2}}, res.Pairings)
		require.InDelta(t, 10.0, res.Score, 1e-9)
	})

	t.Run("rejection forces the off diagonal", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:    scenarioBenefit(),
			Capacities: []int{1, 1},
			Rejections: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.NoError(t, err)
		require.True(t, res.Feasible)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}, {Team: 2, Project: 1}}, res.Pairings)
		require.InDelta(t, 2.0, res.Score, 1e-9)
	})

	t.Run("forced team on zero capacity project is infeasible", func(t *testing.T) {
		_, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:     [][]float64{{4, 1}},
			Capacities:  []int{0, 2},
			Allocations: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.ErrorIs(t, err, types.ErrInfeasible)
	})

	t.Run("zero capacity project is never selected", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{4, 1}},
			Capacities: []int{0, 2},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}}, res.Pairings)
	})
}

func TestILP_ForcedAllocations(t *testing.T) {
	ctx := context.Background()

	t.Run("forced edge is kept even when suboptimal", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:     scenarioBenefit(),
			Capacities:  []int{1, 1},
			Allocations: []types.Pairing{{Team: 1, Project: 2}},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}, {Team: 2, Project: 1}}, res.Pairings)
		require.InDelta(t, 2.0, res.Score, 1e-9)
	})

	t.Run("forced edges consume capacity", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:     [][]float64{{1, 0}, {9, 1}, {8, 2}},
			Capacities:  []int{2, 1},
			Allocations: []types.Pairing{{Team: 1, Project: 1}},
		})
		require.NoError(t, err)
		// Project 1 has one slot left: team 2 takes it, team 3 goes to project 2.
		require.Equal(t, []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 1}, {Team: 3, Project: 2}}, res.Pairings)
		require.InDelta(t, 12.0, res.Score, 1e-9)
	})

	t.Run("conflicting forced edges", func(t *testing.T) {
		req := types.SolveRequest{Benefit: scenarioBenefit(), Capacities: []int{1, 1}}

		bad := req
		bad.Allocations = []types.Pairing{{Team: 1, Project: 1}, {Team: 1, Project: 2}}
		_, err := NewILP().Solve(ctx, bad)
		require.ErrorIs(t, err, types.ErrInfeasible)

		bad = req
		bad.Allocations = []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 1}}
		_, err = NewILP().Solve(ctx, bad)
		require.ErrorIs(t, err, types.ErrInfeasible)

		bad = req
		bad.Allocations = []types.Pairing{{Team: 1, Project: 1}}
		bad.Rejections = []types.Pairing{{Team: 1, Project: 1}}
		_, err = NewILP().Solve(ctx, bad)
		require.ErrorIs(t, err, types.ErrInfeasible)
	})
}

func TestILP_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewILP().Solve(ctx, types.SolveRequest{Benefit: nil})
	require.ErrorIs(t, err, types.ErrValidation)

	_, err = NewILP().Solve(ctx, types.SolveRequest{Benefit: scenarioBenefit(), Capacities: []int{1}})
	require.ErrorIs(t, err, types.ErrValidation)

	_, err = NewILP().Solve(ctx, types.SolveRequest{Benefit: scenarioBenefit(), Capacities: []int{1, -1}})
	require.ErrorIs(t, err, types.ErrValidation)

	_, err = NewILP().Solve(ctx, types.SolveRequest{
		Benefit:    scenarioBenefit(),
		Capacities: []int{1, 1},
		Rejections: []types.Pairing{{Team: 3, Project: 1}},
	})
	require.ErrorIs(t, err, types.ErrValidation)
}

func TestILP_Objectives(t *testing.T) {
	ctx := context.Background()
	req := types.SolveRequest{
		Benefit:    scenarioBenefit(),
		Capacities: []int{1, 1},
		Rejections: []types.Pairing{{Team: 1, Project: 1}},
	}

	res, err := NewILP(WithObjective(ObjectiveBenefit)).Solve(ctx, req)
	require.NoError(t, err)
	require.Equal(t, []types.Pairing{{Team: 2, Project: 2}}, res.Pairings)
	require.InDelta(t, 5.0, res.Score, 1e-9)

	t.Run("benefit objective skips non positive edges", func(t *testing.T) {
		res, err := NewILP(WithObjective(ObjectiveBenefit)).Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{-1, 0}, {3, -2}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 2, Project: 1}}, res.Pairings)
	})

	t.Run("coverage objective assigns every team it can", func(t *testing.T) {
		res, err := NewILP().Solve(ctx, types.SolveRequest{
			Benefit:    [][]float64{{-1, 0}, {3, -2}},
			Capacities: []int{1, 1},
		})
		require.NoError(t, err)
		require.Equal(t, []types.Pairing{{Team: 1, Project: 2}, {Team: 2, Project: 1}}, res.Pairings)
		require.InDelta(t, 3.0, res.Score, 1e-9)
	})

	t.Run("parse", func(t *testing.T) {
		o, err := ParseObjective("Benefit")
		require.NoError(t, err)
		require.Equal(t, ObjectiveBenefit, o)

		o, err = ParseObjective("")
		require.NoError(t, err)
		require.Equal(t, ObjectiveCoverage, o)

		_, err = ParseObjective("fairness")
		require.ErrorIs(t, err, ErrUnknownObjective)
	})
}

func TestILP_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewILP().Solve(ctx, types.SolveRequest{Benefit: scenarioBenefit(), Capacities: []int{1, 1}})
	require.ErrorIs(t, err, context.Canceled)
}

// TestILP_MatchesExhaustiveSearch compares the flow solution with brute force
// enumeration on small random instances.
func TestILP_MatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ctx := context.Background()

	for round := range 200 {
		teams := 1 + rng.IntN(4)
		projects := 1 + rng.IntN(3)
		req := randomRequest(rng, teams, projects)

		for _, obj := range []Objective{ObjectiveCoverage, ObjectiveBenefit} {
			res, err := NewILP(WithObjective(obj)).Solve(ctx, req)
			bestCount, bestScore, feasible := exhaustive(req, obj)
			if !feasible {
				require.ErrorIs(t, err, types.ErrInfeasible, "round %d", round)
				continue
			}
			require.NoError(t, err, "round %d", round)
			assertValid(t, req, res)

			if obj == ObjectiveCoverage {
				require.Equal(t, bestCount, len(res.Pairings), "round %d", round)
			}
			require.InDelta(t, bestScore, res.Score, 1e-6, "round %d objective %s", round, obj)
		}
	}
}

func randomRequest(rng *rand.Rand, teams, projects int) types.SolveRequest {
	b := make([][]float64, teams)
	for i := range b {
		b[i] = make([]float64, projects)
		for j := range b[i] {
			b[i][j] = float64(rng.IntN(11) - 2)
		}
	}
	caps := make([]int, projects)
	for j := range caps {
		caps[j] = rng.IntN(3)
	}
	req := types.SolveRequest{Benefit: b, Capacities: caps}
	for i := range teams {
		for j := range projects {
			switch rng.IntN(8) {
			case 0:
				req.Rejections = append(req.Rejections, types.Pairing{Team: i + 1, Project: j + 1})
			case 1:
				if !hasForced(req.Allocations, i+1) {
					req.Allocations = append(req.Allocations, types.Pairing{Team: i + 1, Project: j + 1})
				}
			}
		}
	}

	return req
}

func hasForced(pairs []types.Pairing, team int) bool {
	for _, p := range pairs {
		if p.Team == team {
			return true
		}
	}

	return false
}

// exhaustive enumerates every assignment and returns the best
// (count, score) under obj.
func exhaustive(req types.SolveRequest, obj Objective) (int, float64, bool) {
	teams, projects := req.Teams(), req.Projects()
	rejected := map[types.Pairing]bool{}
	for _, r := range req.Rejections {
		rejected[r] = true
	}
	forced := map[int]int{}
	for _, a := range req.Allocations {
		forced[a.Team] = a.Project
	}

	choice := make([]int, teams)
	bestCount, bestScore, feasible := -1, 0.0, false

	var walk func(i int)
	walk = func(i int) {
		if i == teams {
			load := make([]int, projects)
			count, score := 0, 0.0
			for t, p := range choice {
				if f, ok := forced[t+1]; ok && f != p {
					return
				}
				if p == 0 {
					continue
				}
				if rejected[types.Pairing{Team: t + 1, Project: p}] {
					return
				}
				load[p-1]++
				if load[p-1] > req.Capacities[p-1] {
					return
				}
				count++
				score += req.Benefit[t][p-1]
			}
			better := false
			switch {
			case !feasible:
				better = true
			case obj == ObjectiveCoverage:
				better = count > bestCount || (count == bestCount && score > bestScore+1e-9)
			default:
				better = score > bestScore+1e-9
			}
			feasible = true
			if better {
				bestCount, bestScore = count, score
			}

			return
		}
		for p := 0; p <= projects; p++ {
			choice[i] = p
			walk(i + 1)
		}
	}
	walk(0)

	return bestCount, bestScore, feasible
}

func assertValid(t *testing.T, req types.SolveRequest, res types.SolveResult) {
	t.Helper()

	load := make([]int, req.Projects())
	seen := map[int]bool{}
	total := 0.0
	for _, p := range res.Pairings {
		total += req.Benefit[p.Team-1][p.Project-1]
		require.False(t, seen[p.Team], "team %d assigned twice", p.Team)
		seen[p.Team] = true
		load[p.Project-1]++
		require.LessOrEqual(t, load[p.Project-1], req.Capacities[p.Project-1])
		for _, r := range req.Rejections {
			require.NotEqual(t, r, p, "rejected pairing selected")
		}
	}
	for _, a := range req.Allocations {
		require.Contains(t, res.Pairings, a)
	}
	require.InDelta(t, total, res.Score, 1e-9)
}
