package types

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// Pairing identifies one team/project edge using 1-based indices.
//
// Project 0 is only meaningful as "unassigned" inside an allocation map; a
// Pairing built through NewPairing always refers to a real project.
type Pairing struct {
	Team    int
	Project int
}

// NewPairing validates 1-based bounds and returns the pairing.
//
// Parameters:
//   - team: Team index in [1, teams]
//   - project: Project index in [1, projects]
//   - teams: Number of teams (m)
//   - projects: Number of projects (n)
//
// Returns:
//   - Pairing: The validated pairing
//   - error: ErrValidation if either index is out of range
func NewPairing(team, project, teams, projects int) (Pairing, error) {
	p := Pairing{Team: team, Project: project}
	if err := p.Validate(teams, projects); err != nil {
		return Pairing{}, err
	}

	return p, nil
}

// Validate checks the pairing against an m×n problem.
func (p Pairing) Validate(teams, projects int) error {
	if p.Team < 1 || p.Team > teams {
		return fmt.Errorf("%w: team %d out of range [1, %d]", ErrValidation, p.Team, teams)
	}
	if p.Project < 1 || p.Project > projects {
		return fmt.Errorf("%w: project %d out of range [1, %d]", ErrValidation, p.Project, projects)
	}

	return nil
}

// String renders the pairing as "(team,project)".
func (p Pairing) String() string {
	return fmt.Sprintf("(%d,%d)", p.Team, p.Project)
}

// Compare orders pairings by team, then project.
//
// Returns:
//   - int: -1 if p < q, 0 if equal, +1 if p > q
func (p Pairing) Compare(q Pairing) int {
	if c := cmp.Compare(p.Team, q.Team); c != 0 {
		return c
	}

	return cmp.Compare(p.Project, q.Project)
}

// MarshalJSON encodes the pairing as a two-element array [team, project].
func (p Pairing) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Team, p.Project})
}

// UnmarshalJSON decodes a two-element array [team, project].
func (p *Pairing) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pairing must have 2 elements, got %d", len(raw))
	}
	p.Team, p.Project = raw[0], raw[1]

	return nil
}

// SortPairings sorts pairings in place by team, then project.
func SortPairings(pairings []Pairing) {
	slices.SortFunc(pairings, Pairing.Compare)
}
