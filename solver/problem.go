package solver

import (
	"fmt"
	"slices"

	"github.com/fitforge/fitforge/benefit"
	"github.com/fitforge/fitforge/types"
)

// problem is a validated SolveRequest with forced edges applied.
type problem struct {
	teams    int
	projects int
	benefit  [][]float64

	// forced[i] is the 0-based project forced for team i, or -1.
	forced []int
	// residual[j] is the capacity left on project j after forced edges.
	residual []int
	rejected map[types.Pairing]struct{}
}

// prepare validates req and fixes forced allocations.
//
// Returns ErrValidation for a malformed request and ErrInfeasible when the
// forced allocations alone break a constraint.
func prepare(req types.SolveRequest) (*problem, error) {
	teams, projects, err := benefit.Shape(req.Benefit)
	if err != nil {
		return nil, fmt.Errorf("%w: benefit matrix: %w", types.ErrValidation, err)
	}
	if len(req.Capacities) != projects {
		return nil, fmt.Errorf("%w: %d capacities for %d projects", types.ErrValidation, len(req.Capacities), projects)
	}

	p := &problem{
		teams:    teams,
		projects: projects,
		benefit:  req.Benefit,
		forced:   make([]int, teams),
		residual: slices.Clone(req.Capacities),
		rejected: make(map[types.Pairing]struct{}, len(req.Rejections)),
	}
	for j, c := range p.residual {
		if c < 0 {
			return nil, fmt.Errorf("%w: project %d has negative capacity", types.ErrValidation, j+1)
		}
	}
	for i := range p.forced {
		p.forced[i] = -1
	}

	for _, r := range req.Rejections {
		if err := r.Validate(teams, projects); err != nil {
			return nil, err
		}
		p.rejected[r] = struct{}{}
	}

	for _, a := range req.Allocations {
		if err := a.Validate(teams, projects); err != nil {
			return nil, err
		}
		if prev := p.forced[a.Team-1]; prev >= 0 {
			if prev == a.Project-1 {
				continue
			}
			return nil, fmt.Errorf("%w: team %d forced onto projects %d and %d", types.ErrInfeasible, a.Team, prev+1, a.Project)
		}
		if _, ok := p.rejected[a]; ok {
			return nil, fmt.Errorf("%w: forced pairing %s is rejected", types.ErrInfeasible, a)
		}
		if p.residual[a.Project-1] == 0 {
			return nil, fmt.Errorf("%w: project %d cannot hold forced team %d (capacity %d)",
				types.ErrInfeasible, a.Project, a.Team, req.Capacities[a.Project-1])
		}
		p.forced[a.Team-1] = a.Project - 1
		p.residual[a.Project-1]--
	}

	return p, nil
}

// allowed reports whether free team i may be placed on project j (0-based).
func (p *problem) allowed(i, j int) bool {
	if p.forced[i] >= 0 {
		return false
	}
	if _, ok := p.rejected[types.Pairing{Team: i + 1, Project: j + 1}]; ok {
		return false
	}

	return true
}

// result assembles a SolveResult from free-team choices (0-based, -1 = none).
func (p *problem) result(choice []int) types.SolveResult {
	pairings := make([]types.Pairing, 0, p.teams)
	score := 0.0
	for i := range p.teams {
		j := p.forced[i]
		if j < 0 {
			j = choice[i]
		}
		if j < 0 {
			continue
		}
		pairings = append(pairings, types.Pairing{Team: i + 1, Project: j + 1})
		score += p.benefit[i][j]
	}

	return types.SolveResult{Feasible: true, Pairings: pairings, Score: score}
}

// GroupByTeam maps each team to the projects it holds in pairings.
func GroupByTeam(pairings []types.Pairing) map[int][]int {
	out := make(map[int][]int)
	for _, p := range pairings {
		out[p.Team] = append(out[p.Team], p.Project)
	}

	return out
}
