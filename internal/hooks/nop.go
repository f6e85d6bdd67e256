// Package hooks provides default Hooks implementations.
package hooks

import (
	"context"

	"github.com/fitforge/fitforge/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// The engine fills any nil hook from here so call sites never nil-check.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.Stage, types.Stage) error = (*NopHooks)(nil).OnStageChanged
	_ func(context.Context, types.AllocationSet) error      = (*NopHooks)(nil).OnSolveCompleted
	_ func(context.Context, error) error                    = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnStageChanged:   h.OnStageChanged,
		OnSolveCompleted: h.OnSolveCompleted,
		OnError:          h.OnError,
	}
}

// Merge returns custom with every nil callback replaced by a no-op.
func Merge(custom *types.Hooks) types.Hooks {
	out := NewNop()
	if custom == nil {
		return out
	}
	if custom.OnStageChanged != nil {
		out.OnStageChanged = custom.OnStageChanged
	}
	if custom.OnSolveCompleted != nil {
		out.OnSolveCompleted = custom.OnSolveCompleted
	}
	if custom.OnError != nil {
		out.OnError = custom.OnError
	}

	return out
}

// OnStageChanged is a no-op implementation.
func (h *NopHooks) OnStageChanged(ctx context.Context, from, to types.Stage) error {
	return nil
}

// OnSolveCompleted is a no-op implementation.
func (h *NopHooks) OnSolveCompleted(ctx context.Context, set types.AllocationSet) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, err error) error {
	return nil
}
