package fitforge

import (
	"fmt"

	"github.com/fitforge/fitforge/types"
)

// Stage returns the lifecycle stage.
func (e *Engine) Stage() Stage {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.stage
}

// Version returns the number of state changes published so far.
func (e *Engine) Version() uint64 {
	return e.notifier.Version()
}

// TeamCount returns m, or 0 before Initialise.
func (e *Engine) TeamCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.m.current.TeamNames)
}

// ProjectCount returns n, or 0 before Initialise.
func (e *Engine) ProjectCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.m.current.ProjectNames)
}

// TeamName returns the display name of team, or "" when out of range.
func (e *Engine) TeamName(team int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if team < 1 || team > len(e.m.current.TeamNames) {
		return ""
	}

	return e.m.current.TeamNames[team-1]
}

// ProjectName returns the display name of project, or "" when out of range.
func (e *Engine) ProjectName(project int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if project < 1 || project > len(e.m.current.ProjectNames) {
		return ""
	}

	return e.m.current.ProjectNames[project-1]
}

// BenefitValue returns b for one pairing.
//
// Returns:
//   - float64: impact × (capScalar × capability + prefScalar × preference)
//   - error: ErrNotInitialised or ErrValidation
func (e *Engine) BenefitValue(team, project int) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.checkPairingLocked(team, project); err != nil {
		return 0, err
	}

	return e.m.benefit.At(team-1, project-1), nil
}

// BenefitMatrix returns a copy of the benefit matrix, or nil before Initialise.
func (e *Engine) BenefitMatrix() [][]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.benefit == nil {
		return nil
	}

	return e.m.benefit.Raw()
}

// BenefitRange returns the minimum and maximum benefit values.
func (e *Engine) BenefitRange() (lo, hi float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.benefit == nil {
		return 0, 0
	}

	return e.m.benefit.Min(), e.m.benefit.Max()
}

// InputMatrix returns a copy of the current impact, capability or preference matrix.
func (e *Engine) InputMatrix(kind CellKind) [][]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	switch kind {
	case types.CellImpact:
		return types.CloneRows(e.m.current.Impact)
	case types.CellCapability:
		return types.CloneRows(e.m.current.Capability)
	case types.CellPreference:
		return types.CloneRows(e.m.current.Preference)
	default:
		return nil
	}
}

// PairingDetails explains how the benefit of one pairing is derived.
//
// Project 0 denotes "unassigned": every numeric field is -1.
//
// Parameters:
//   - team: Team index in [1, m]
//   - project: Project index in [1, n], or 0
//
// Returns:
//   - PairingDetails: Inputs, scalars and benefit
//   - error: ErrNotInitialised or ErrValidation
func (e *Engine) PairingDetails(team, project int) (PairingDetails, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if project == 0 {
		if err := e.checkPairingLocked(team, 1); err != nil {
			return PairingDetails{}, err
		}

		return PairingDetails{
			Team:             team,
			Project:          0,
			TeamName:         e.m.current.TeamNames[team-1],
			Impact:           -1,
			Capability:       -1,
			Preference:       -1,
			CapabilityScalar: -1,
			PreferenceScalar: -1,
			Benefit:          -1,
		}, nil
	}

	if err := e.checkPairingLocked(team, project); err != nil {
		return PairingDetails{}, err
	}
	i, j := team-1, project-1

	return PairingDetails{
		Team:             team,
		Project:          project,
		TeamName:         e.m.current.TeamNames[i],
		ProjectName:      e.m.current.ProjectNames[j],
		Impact:           e.m.current.Impact[i][j],
		Capability:       e.m.current.Capability[i][j],
		Preference:       e.m.current.Preference[i][j],
		CapabilityScalar: e.m.capScalar,
		PreferenceScalar: e.m.prefScalar,
		Benefit:          e.m.benefit.At(i, j),
	}, nil
}

// IsAllocated reports whether team is allocated to project.
func (e *Engine) IsAllocated(team, project int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.alloc != nil && e.m.alloc.IsAllocated(team, project)
}

// IsRejected reports whether the pairing is rejected.
func (e *Engine) IsRejected(team, project int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.alloc != nil && e.m.alloc.IsRejected(team, project)
}

// TeamHasAllocation reports whether team is allocated to any project.
func (e *Engine) TeamHasAllocation(team int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.alloc != nil && e.m.alloc.TeamHasAllocation(team)
}

// ProjectAtCapacity reports whether project has no free slot.
func (e *Engine) ProjectAtCapacity(project int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.alloc == nil || e.m.alloc.ProjectAtCapacity(project)
}

// AllocationOf returns the project team is allocated to, or 0.
func (e *Engine) AllocationOf(team int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.alloc == nil {
		return 0
	}

	return e.m.alloc.AllocationOf(team)
}

// Allocations returns the current allocated pairings sorted by team.
func (e *Engine) Allocations() []Pairing {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.alloc == nil {
		return nil
	}

	return e.m.alloc.Allocations()
}

// Rejections returns the rejected pairings sorted by team, then project.
func (e *Engine) Rejections() []Pairing {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.alloc == nil {
		return nil
	}

	return e.m.alloc.Rejections()
}

// Capacities returns a copy of the per-project capacities.
func (e *Engine) Capacities() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.alloc == nil {
		return nil
	}

	return e.m.alloc.Capacities()
}

// CapabilityScalar returns the capability weight.
func (e *Engine) CapabilityScalar() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.capScalar
}

// PreferenceScalar returns the preference weight.
func (e *Engine) PreferenceScalar() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.prefScalar
}

// Score returns Σ b over the current allocation.
func (e *Engine) Score() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.alloc == nil {
		return 0
	}

	allocs := e.m.alloc.Allocations()
	cells := make([][2]int, len(allocs))
	for k, p := range allocs {
		cells[k] = [2]int{p.Team - 1, p.Project - 1}
	}

	return e.m.benefit.Sum(cells)
}

// ScoreOf returns Σ b over pairings against the current benefit matrix.
//
// Returns:
//   - float64: Score
//   - error: ErrNotInitialised, or ErrValidation for an out-of-range pairing
func (e *Engine) ScoreOf(pairings []Pairing) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var sum float64
	for _, p := range pairings {
		if err := e.checkPairingLocked(p.Team, p.Project); err != nil {
			return 0, err
		}
		sum += e.m.benefit.At(p.Team-1, p.Project-1)
	}

	return sum, nil
}

// AllocationHistory returns copies of every recorded run in sequence order.
func (e *Engine) AllocationHistory() []AllocationSet {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.history.All()
}

// CheckInvariants re-verifies the allocation invariants and that every
// history entry only names in-range pairings.
//
// Returns:
//   - error: nil when consistent
func (e *Engine) CheckInvariants() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.m.stage != StageOperational {
		return nil
	}
	if err := e.m.alloc.CheckInvariants(); err != nil {
		return err
	}
	for _, set := range e.m.history.All() {
		for _, p := range set.Pairings {
			if err := p.Validate(e.m.alloc.Teams(), e.m.alloc.Projects()); err != nil {
				return fmt.Errorf("history entry %d: %w", set.Sequence, err)
			}
		}
	}

	return nil
}

func (e *Engine) checkPairingLocked(team, project int) error {
	if e.m.stage != StageOperational {
		return ErrNotInitialised
	}
	_, err := types.NewPairing(team, project, e.m.alloc.Teams(), e.m.alloc.Projects())

	return err
}
