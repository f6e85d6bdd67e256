package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitforge/fitforge/types"
)

type fakeView struct {
	teams, projects int
	allocations     []types.Pairing
	rejections      []types.Pairing
	capacities      []int
	history         []types.AllocationSet
}

func (f fakeView) TeamCount() int                           { return f.teams }
func (f fakeView) ProjectCount() int                        { return f.projects }
func (f fakeView) Allocations() []types.Pairing             { return f.allocations }
func (f fakeView) Rejections() []types.Pairing              { return f.rejections }
func (f fakeView) Capacities() []int                        { return f.capacities }
func (f fakeView) AllocationHistory() []types.AllocationSet { return f.history }

func TestAssertAllocationConsistent_Passes(t *testing.T) {
	v := fakeView{
		teams:       3,
		projects:    2,
		allocations: []types.Pairing{{Team: 1, Project: 2}, {Team: 2, Project: 2}},
		rejections:  []types.Pairing{{Team: 3, Project: 1}},
		capacities:  []int{1, 2},
	}
	AssertAllocationConsistent(t, v)
}

func TestAssertHistoryOrdered_Passes(t *testing.T) {
	v := fakeView{
		teams:    2,
		projects: 2,
		history: []types.AllocationSet{
			{Sequence: 1, Pairings: []types.Pairing{{Team: 1, Project: 1}, {Team: 2, Project: 2}}},
			{Sequence: 2, Pairings: []types.Pairing{{Team: 1, Project: 2}}},
		},
	}
	AssertHistoryOrdered(t, v)
}

type fakeWaiter struct {
	stage   atomic.Int32
	version atomic.Uint64
}

func (f *fakeWaiter) Stage() types.Stage { return types.Stage(f.stage.Load()) }
func (f *fakeWaiter) Version() uint64    { return f.version.Load() }

func TestWaitStage(t *testing.T) {
	w := &fakeWaiter{}
	w.stage.Store(int32(types.StageAwaitingInput))

	go func() {
		time.Sleep(20 * time.Millisecond)
		w.stage.Store(int32(types.StageOperational))
	}()

	require.NoError(t, WaitStage(t.Context(), w, types.StageOperational, time.Second))
}

func TestWaitVersion_Timeout(t *testing.T) {
	w := &fakeWaiter{}
	w.version.Store(3)

	require.NoError(t, WaitVersion(t.Context(), w, 3, time.Second))

	err := WaitVersion(t.Context(), w, 5, 30*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, err.Error(), "version is 3")
}
