package source

import (
	"context"
	"sync"

	"github.com/fitforge/fitforge/types"
)

// Static serves a fixed setup held in memory.
type Static struct {
	mu    sync.RWMutex
	setup types.Setup
}

var _ types.SetupSource = (*Static)(nil)

// NewStatic creates a source that always returns a copy of setup.
//
// Example:
//
//	src := source.NewStatic(types.Setup{
//	    Impact:     [][]float64{{3, 1}, {1, 3}},
//	    Capability: [][]float64{{1, 1}, {1, 1}},
//	    Preference: [][]float64{{1, 0}, {0, 1}},
//	})
//	err := engine.InitialiseFrom(ctx, src)
func NewStatic(setup types.Setup) *Static {
	return &Static{setup: setup.Clone()}
}

// LoadSetup returns a deep copy of the held setup. It never fails.
func (s *Static) LoadSetup(_ context.Context) (types.Setup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.setup.Clone(), nil
}

// Update replaces the held setup.
func (s *Static) Update(setup types.Setup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setup = setup.Clone()
}
