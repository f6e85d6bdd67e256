// Package state holds the authoritative allocation and rejection sets.
//
// State is not safe for concurrent use. The engine serialises every call
// under its own lock and hands solvers a copy built with Clone.
package state

import (
	"fmt"

	"github.com/fitforge/fitforge/types"
)

// Outcome messages. They are shown to users verbatim.
const (
	MsgAllocated         = "Project allocated successfully."
	MsgAlreadyAllocated  = "Team is already allocated to this project."
	MsgSwitched          = "Allocation switched successfully."
	MsgAllocRejected     = "Pairing is already rejected. Cannot allocate."
	MsgAtCapacity        = "Project is at maximum capacity. Cannot allocate."
	MsgAllocRemoved      = "Allocation removed successfully."
	MsgNotAllocated      = "Pairing not allocated."
	MsgRejected          = "Project rejected successfully."
	MsgRejectAllocated   = "Pairing is already allocated. Cannot reject."
	MsgAlreadyRejected   = "Pairing already rejected."
	MsgRejectionRemoved  = "Rejection removed successfully."
	MsgNotRejected       = "Pairing not rejected."
	MsgCapacityUpdated   = "Project capacity updated successfully."
	MsgCapacityNegative  = "Capacity must be zero or greater."
	MsgCapacityBelowLoad = "Capacity is below the number of allocated teams. Remove allocations first."
	MsgOutOfRange        = "Team or project index out of range."
)

// State is the mutable allocation state of an m×n problem.
type State struct {
	teams    int
	projects int

	// allocation[i] is the 1-based project of team i+1, or 0.
	allocation []int
	// load[j] counts teams allocated to project j+1.
	load       []int
	capacities []int
	rejections map[types.Pairing]struct{}
}

// New creates a state with every team unassigned and no rejections.
//
// Parameters:
//   - teams: Number of teams (m)
//   - projects: Number of projects (n)
//   - defaultCapacity: Capacity given to every project
//
// Returns:
//   - *State: Fresh allocation state
func New(teams, projects, defaultCapacity int) *State {
	caps := make([]int, projects)
	for j := range caps {
		caps[j] = defaultCapacity
	}

	return &State{
		teams:      teams,
		projects:   projects,
		allocation: make([]int, teams),
		load:       make([]int, projects),
		capacities: caps,
		rejections: make(map[types.Pairing]struct{}),
	}
}

// Restore rebuilds a state from persisted facts and verifies every invariant.
//
// Parameters:
//   - teams: Number of teams (m)
//   - projects: Number of projects (n)
//   - allocation: Per-team 1-based project or 0, length m
//   - capacities: Per-project capacity, length n
//   - rejections: Rejected pairings
//
// Returns:
//   - *State: Restored state
//   - error: ErrValidation or ErrStateConflict describing the first violation
func Restore(teams, projects int, allocation, capacities []int, rejections []types.Pairing) (*State, error) {
	if len(allocation) != teams {
		return nil, fmt.Errorf("%w: %d allocation entries for %d teams", types.ErrValidation, len(allocation), teams)
	}
	if len(capacities) != projects {
		return nil, fmt.Errorf("%w: %d capacities for %d projects", types.ErrValidation, len(capacities), projects)
	}

	s := New(teams, projects, 0)
	copy(s.capacities, capacities)
	for i, p := range allocation {
		if p == 0 {
			continue
		}
		if p < 0 || p > projects {
			return nil, fmt.Errorf("%w: team %d allocated to project %d", types.ErrValidation, i+1, p)
		}
		s.allocation[i] = p
		s.load[p-1]++
	}
	for _, r := range rejections {
		if err := r.Validate(teams, projects); err != nil {
			return nil, err
		}
		s.rejections[r] = struct{}{}
	}
	if err := s.CheckInvariants(); err != nil {
		return nil, err
	}

	return s, nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := &State{
		teams:      s.teams,
		projects:   s.projects,
		allocation: append([]int(nil), s.allocation...),
		load:       append([]int(nil), s.load...),
		capacities: append([]int(nil), s.capacities...),
		rejections: make(map[types.Pairing]struct{}, len(s.rejections)),
	}
	for r := range s.rejections {
		out.rejections[r] = struct{}{}
	}

	return out
}

// Teams returns m.
func (s *State) Teams() int { return s.teams }

// Projects returns n.
func (s *State) Projects() int { return s.projects }

// SetAllocation allocates team to project.
//
// Rules, in order:
//  1. A rejected pairing is refused.
//  2. An existing identical allocation is a successful no-op.
//  3. A project at capacity is refused.
//  4. Otherwise the team is allocated, replacing any prior allocation; a
//     replacement is reported as a switch with a warning.
func (s *State) SetAllocation(team, project int) types.Result {
	p, err := types.NewPairing(team, project, s.teams, s.projects)
	if err != nil {
		return types.Fail(MsgOutOfRange, err)
	}
	if s.IsRejected(team, project) {
		return types.Fail(MsgAllocRejected, fmt.Errorf("%w: %s is rejected", types.ErrStateConflict, p))
	}
	current := s.allocation[team-1]
	if current == project {
		return types.Ok(MsgAlreadyAllocated)
	}
	if s.ProjectAtCapacity(project) {
		return types.Fail(MsgAtCapacity, fmt.Errorf("%w: project %d at capacity %d", types.ErrStateConflict, project, s.capacities[project-1]))
	}

	if current != 0 {
		s.load[current-1]--
	}
	s.allocation[team-1] = project
	s.load[project-1]++

	if current != 0 {
		return types.OkWithWarning(MsgSwitched,
			fmt.Sprintf("Team was switched from project %d to project %d.", current, project))
	}

	return types.Ok(MsgAllocated)
}

// RemoveAllocation clears the allocation of team to project.
func (s *State) RemoveAllocation(team, project int) types.Result {
	p, err := types.NewPairing(team, project, s.teams, s.projects)
	if err != nil {
		return types.Fail(MsgOutOfRange, err)
	}
	if s.allocation[team-1] != project {
		return types.Fail(MsgNotAllocated, fmt.Errorf("%w: %s is not allocated", types.ErrStateConflict, p))
	}
	s.allocation[team-1] = 0
	s.load[project-1]--

	return types.Ok(MsgAllocRemoved)
}

// SetRejection forbids the pairing.
func (s *State) SetRejection(team, project int) types.Result {
	p, err := types.NewPairing(team, project, s.teams, s.projects)
	if err != nil {
		return types.Fail(MsgOutOfRange, err)
	}
	if s.allocation[team-1] == project {
		return types.Fail(MsgRejectAllocated, fmt.Errorf("%w: %s is allocated", types.ErrStateConflict, p))
	}
	if _, ok := s.rejections[p]; ok {
		return types.Fail(MsgAlreadyRejected, fmt.Errorf("%w: %s already rejected", types.ErrStateConflict, p))
	}
	s.rejections[p] = struct{}{}

	return types.Ok(MsgRejected)
}

// RemoveRejection lifts a rejection.
func (s *State) RemoveRejection(team, project int) types.Result {
	p, err := types.NewPairing(team, project, s.teams, s.projects)
	if err != nil {
		return types.Fail(MsgOutOfRange, err)
	}
	if _, ok := s.rejections[p]; !ok {
		return types.Fail(MsgNotRejected, fmt.Errorf("%w: %s is not rejected", types.ErrStateConflict, p))
	}
	delete(s.rejections, p)

	return types.Ok(MsgRejectionRemoved)
}

// SetCapacity changes the capacity of a project.
//
// A capacity below the number of teams already allocated to the project is
// refused so that allocated count never exceeds capacity.
func (s *State) SetCapacity(project, capacity int) types.Result {
	if project < 1 || project > s.projects {
		return types.Fail(MsgOutOfRange,
			fmt.Errorf("%w: project %d out of range [1, %d]", types.ErrValidation, project, s.projects))
	}
	if capacity < 0 {
		return types.Fail(MsgCapacityNegative, fmt.Errorf("%w: capacity %d", types.ErrValidation, capacity))
	}
	if capacity < s.load[project-1] {
		return types.Fail(MsgCapacityBelowLoad,
			fmt.Errorf("%w: project %d has %d allocated teams", types.ErrStateConflict, project, s.load[project-1]))
	}
	s.capacities[project-1] = capacity

	return types.Ok(MsgCapacityUpdated)
}

// IsAllocated reports whether team is allocated to project.
// Out-of-range indices report false.
func (s *State) IsAllocated(team, project int) bool {
	if !s.inRange(team, project) {
		return false
	}

	return s.allocation[team-1] == project
}

// IsRejected reports whether the pairing is rejected.
func (s *State) IsRejected(team, project int) bool {
	_, ok := s.rejections[types.Pairing{Team: team, Project: project}]
	return ok
}

// TeamHasAllocation reports whether team is allocated to any project.
func (s *State) TeamHasAllocation(team int) bool {
	if team < 1 || team > s.teams {
		return false
	}

	return s.allocation[team-1] != 0
}

// ProjectAtCapacity reports whether project has no free slot.
// Out-of-range projects report true.
func (s *State) ProjectAtCapacity(project int) bool {
	if project < 1 || project > s.projects {
		return true
	}

	return s.load[project-1] >= s.capacities[project-1]
}

// AllocationOf returns the project of team, or 0 when unassigned or out of range.
func (s *State) AllocationOf(team int) int {
	if team < 1 || team > s.teams {
		return 0
	}

	return s.allocation[team-1]
}

// AllocatedCount returns the number of teams allocated to project.
func (s *State) AllocatedCount(project int) int {
	if project < 1 || project > s.projects {
		return 0
	}

	return s.load[project-1]
}

// Allocation returns the per-team project slice (0 = unassigned).
func (s *State) Allocation() []int {
	return append([]int(nil), s.allocation...)
}

// Allocations returns the allocated pairings sorted by team.
func (s *State) Allocations() []types.Pairing {
	out := make([]types.Pairing, 0, s.teams)
	for i, p := range s.allocation {
		if p != 0 {
			out = append(out, types.Pairing{Team: i + 1, Project: p})
		}
	}

	return out
}

// Rejections returns the rejected pairings sorted by team, then project.
func (s *State) Rejections() []types.Pairing {
	out := make([]types.Pairing, 0, len(s.rejections))
	for r := range s.rejections {
		out = append(out, r)
	}
	types.SortPairings(out)

	return out
}

// Capacities returns a copy of the per-project capacities.
func (s *State) Capacities() []int {
	return append([]int(nil), s.capacities...)
}

// CheckInvariants verifies every structural invariant.
//
// Returns:
//   - error: nil when consistent, else ErrStateConflict describing the first violation
func (s *State) CheckInvariants() error {
	counts := make([]int, s.projects)
	for i, p := range s.allocation {
		if p == 0 {
			continue
		}
		counts[p-1]++
		if _, ok := s.rejections[types.Pairing{Team: i + 1, Project: p}]; ok {
			return fmt.Errorf("%w: team %d is both allocated and rejected for project %d", types.ErrStateConflict, i+1, p)
		}
	}
	for j, c := range counts {
		if c != s.load[j] {
			return fmt.Errorf("%w: project %d load %d does not match %d allocations", types.ErrStateConflict, j+1, s.load[j], c)
		}
		if s.capacities[j] < 0 {
			return fmt.Errorf("%w: project %d has negative capacity", types.ErrValidation, j+1)
		}
		if c > s.capacities[j] {
			return fmt.Errorf("%w: project %d has %d teams over capacity %d", types.ErrStateConflict, j+1, c, s.capacities[j])
		}
	}

	return nil
}

func (s *State) inRange(team, project int) bool {
	return team >= 1 && team <= s.teams && project >= 1 && project <= s.projects
}
