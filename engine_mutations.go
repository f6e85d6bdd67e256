package fitforge

import (
	"fmt"
	"math"

	"github.com/fitforge/fitforge/internal/state"
	"github.com/fitforge/fitforge/types"
)

// msgNotInitialised is the Result message for mutations before Initialise.
const msgNotInitialised = "No data loaded. Initialise the engine first."

// SetAllocation forces team onto project.
//
// A team already on another project is switched, and the Result carries a
// warning naming the previous project.
//
// Parameters:
//   - team: Team index in [1, m]
//   - project: Project index in [1, n]
//
// Returns:
//   - Result: Outcome; Err wraps ErrValidation, ErrStateConflict or
//     ErrNotInitialised when refused
func (e *Engine) SetAllocation(team, project int) Result {
	return e.mutate("set_allocation", types.EventAllocationChanged, team, project, func(s *state.State) Result {
		return s.SetAllocation(team, project)
	})
}

// RemoveAllocation clears the allocation of team to project.
func (e *Engine) RemoveAllocation(team, project int) Result {
	return e.mutate("remove_allocation", types.EventAllocationChanged, team, project, func(s *state.State) Result {
		return s.RemoveAllocation(team, project)
	})
}

// SetRejection forbids the pairing for every future solver run.
func (e *Engine) SetRejection(team, project int) Result {
	return e.mutate("set_rejection", types.EventRejectionChanged, team, project, func(s *state.State) Result {
		return s.SetRejection(team, project)
	})
}

// RemoveRejection lifts a rejection.
func (e *Engine) RemoveRejection(team, project int) Result {
	return e.mutate("remove_rejection", types.EventRejectionChanged, team, project, func(s *state.State) Result {
		return s.RemoveRejection(team, project)
	})
}

// SetProjectCapacity sets how many teams project accepts.
//
// Lowering the capacity below the number of teams currently allocated to the
// project is refused; remove allocations first.
func (e *Engine) SetProjectCapacity(project, capacity int) Result {
	return e.mutate("set_capacity", types.EventCapacityChanged, 0, project, func(s *state.State) Result {
		return s.SetCapacity(project, capacity)
	})
}

// mutate applies fn to the allocation state under the write lock and
// publishes an event for every successful outcome.
func (e *Engine) mutate(op string, kind types.EventKind, team, project int, fn func(*state.State) Result) Result {
	e.mu.Lock()
	if e.m.stage != StageOperational {
		e.mu.Unlock()
		e.metrics.RecordMutation(op, false)

		return types.Fail(msgNotInitialised, ErrNotInitialised)
	}

	res := fn(e.m.alloc)
	var ev types.Event
	if res.Success {
		ev = e.notifier.Next(kind, team, project, 0)
	}
	e.mu.Unlock()

	e.metrics.RecordMutation(op, res.Success)
	if !res.Success {
		e.logger.Debug("mutation refused",
			"op", op,
			"team", team,
			"project", project,
			"reason", res.Message,
		)

		return res
	}
	if res.Warning != "" {
		e.logger.Info(res.Warning, "op", op, "team", team, "project", project)
	}
	e.notifier.Publish(ev)

	return res
}

// SetCapabilityScalar sets the capability weight and recomputes the benefit matrix.
//
// Returns:
//   - error: ErrNotInitialised, or ErrValidation for a non-finite value or
//     one that overflows the benefit matrix
func (e *Engine) SetCapabilityScalar(v float64) error {
	return e.editMatrix("set_capability_scalar", 0, 0, v, func(m *model) error {
		m.capScalar = v
		return nil
	})
}

// SetPreferenceScalar sets the preference weight and recomputes the benefit matrix.
//
// Returns:
//   - error: ErrNotInitialised, or ErrValidation for a non-finite value
func (e *Engine) SetPreferenceScalar(v float64) error {
	return e.editMatrix("set_preference_scalar", 0, 0, v, func(m *model) error {
		m.prefScalar = v
		return nil
	})
}

// SetCellValue edits one cell of an input matrix and recomputes the benefit matrix.
//
// Parameters:
//   - kind: CellImpact, CellCapability or CellPreference
//   - team: Team index in [1, m]
//   - project: Project index in [1, n]
//   - value: New finite value
//
// Returns:
//   - error: ErrNotInitialised, or ErrValidation for an unknown kind, an
//     out-of-range index or a non-finite value
func (e *Engine) SetCellValue(kind CellKind, team, project int, value float64) error {
	var pick func(*model) [][]float64
	switch kind {
	case types.CellImpact:
		pick = func(m *model) [][]float64 { return m.current.Impact }
	case types.CellCapability:
		pick = func(m *model) [][]float64 { return m.current.Capability }
	case types.CellPreference:
		pick = func(m *model) [][]float64 { return m.current.Preference }
	default:
		return fmt.Errorf("%w: unknown cell kind %d", ErrValidation, int(kind))
	}

	return e.editMatrix("set_"+kind.String(), team, project, value, func(m *model) error {
		if _, err := types.NewPairing(team, project, m.alloc.Teams(), m.alloc.Projects()); err != nil {
			return err
		}
		pick(m)[team-1][project-1] = value

		return nil
	})
}

// editMatrix applies fn under the write lock and recomputes the benefit
// matrix. fn must leave the model untouched when it returns an error; an
// edit whose benefit matrix is not finite is rolled back.
func (e *Engine) editMatrix(op string, team, project int, v float64, fn func(*model) error) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		e.metrics.RecordMutation(op, false)
		return fmt.Errorf("%w: %s requires a finite value, got %v", ErrValidation, op, v)
	}

	e.mu.Lock()
	if e.m.stage != StageOperational {
		e.mu.Unlock()
		e.metrics.RecordMutation(op, false)

		return ErrNotInitialised
	}

	inputs, capScalar, prefScalar := e.m.current.Clone(), e.m.capScalar, e.m.prefScalar
	if err := fn(e.m); err != nil {
		e.mu.Unlock()
		e.metrics.RecordMutation(op, false)

		return err
	}
	if err := e.m.recalculate(); err != nil {
		e.m.current, e.m.capScalar, e.m.prefScalar = inputs, capScalar, prefScalar
		e.mu.Unlock()
		e.metrics.RecordMutation(op, false)

		return fmt.Errorf("%w: %s: %w", ErrValidation, op, err)
	}
	ev := e.notifier.Next(types.EventMatrixChanged, team, project, 0)
	e.mu.Unlock()

	e.metrics.RecordMutation(op, true)
	e.notifier.Publish(ev)

	return nil
}
