package types

import "context"

// Hooks defines callbacks for engine lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// so they never run under the engine lock. Hook errors are logged and never
// fail the triggering operation.
//
// Example:
//
//	hooks := &fitforge.Hooks{
//	    OnSolveCompleted: func(ctx context.Context, set fitforge.AllocationSet) error {
//	        log.Printf("run %d scored %.2f", set.Sequence, set.Score)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnStageChanged is called when the engine moves between lifecycle stages.
	OnStageChanged func(ctx context.Context, from, to Stage) error

	// OnSolveCompleted is called after a solver run is appended to history.
	OnSolveCompleted func(ctx context.Context, set AllocationSet) error

	// OnError is called when a solver run or a persistence operation fails.
	OnError func(ctx context.Context, err error) error
}
