package testutil

import (
	"testing"

	"github.com/fitforge/fitforge/types"
)

// AllocationView is the subset of Engine queries the assertions need.
// It lets the helpers run against the real engine and against test doubles.
type AllocationView interface {
	TeamCount() int
	ProjectCount() int
	Allocations() []types.Pairing
	Rejections() []types.Pairing
	Capacities() []int
	AllocationHistory() []types.AllocationSet
}

// AssertAllocationConsistent verifies the current allocation against the
// capacity and rejection constraints: every team holds at most one project,
// no project exceeds its capacity and no allocated pairing is rejected.
//
// Parameters:
//   - t: testing handle
//   - v: Engine or test double
func AssertAllocationConsistent(t testing.TB, v AllocationView) {
	t.Helper()

	teams, projects := v.TeamCount(), v.ProjectCount()
	capacities := v.Capacities()
	if len(capacities) != projects {
		t.Fatalf("capacity count (%d) does not equal project count (%d)", len(capacities), projects)
	}

	rejected := make(map[types.Pairing]struct{})
	for _, r := range v.Rejections() {
		rejected[r] = struct{}{}
	}

	seen := make(map[int]int, teams)
	load := make([]int, projects)
	for _, p := range v.Allocations() {
		if err := p.Validate(teams, projects); err != nil {
			t.Fatalf("allocation %s out of range: %v", p, err)
		}
		if prev, ok := seen[p.Team]; ok {
			t.Fatalf("team %d allocated to projects %d and %d", p.Team, prev, p.Project)
		}
		if _, ok := rejected[p]; ok {
			t.Fatalf("allocation %s is also rejected", p)
		}
		seen[p.Team] = p.Project
		load[p.Project-1]++
	}

	for j, c := range capacities {
		if load[j] > c {
			t.Fatalf("project %d holds %d teams over capacity %d", j+1, load[j], c)
		}
	}
}

// AssertHistoryOrdered verifies that history sequences run 1..N and that
// every recorded pairing is in range and respects one project per team.
func AssertHistoryOrdered(t testing.TB, v AllocationView) {
	t.Helper()

	teams, projects := v.TeamCount(), v.ProjectCount()
	for i, set := range v.AllocationHistory() {
		if set.Sequence != i+1 {
			t.Fatalf("history entry %d has sequence %d", i+1, set.Sequence)
		}
		perTeam := make(map[int]struct{}, len(set.Pairings))
		for _, p := range set.Pairings {
			if err := p.Validate(teams, projects); err != nil {
				t.Fatalf("run %d pairing %s out of range: %v", set.Sequence, p, err)
			}
			if _, ok := perTeam[p.Team]; ok {
				t.Fatalf("run %d assigns team %d twice", set.Sequence, p.Team)
			}
			perTeam[p.Team] = struct{}{}
		}
	}
}
