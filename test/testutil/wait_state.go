package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fitforge/fitforge/types"
)

// EngineWaiter defines the subset of Engine methods needed for waiting.
type EngineWaiter interface {
	Stage() types.Stage
	Version() uint64
}

// pollInterval is how often the wait helpers re-check the engine.
const pollInterval = 5 * time.Millisecond

// WaitStage polls until the engine reports the expected stage.
//
// Parameters:
//   - ctx: Context for cancellation
//   - e: Engine to poll
//   - want: Target stage
//   - timeout: Maximum time to wait
//
// Returns:
//   - error: nil once reached, a timeout error or the context error otherwise
//
// Example:
//
//	err := testutil.WaitStage(ctx, eng, types.StageOperational, time.Second)
//	require.NoError(t, err)
func WaitStage(ctx context.Context, e EngineWaiter, want types.Stage, timeout time.Duration) error {
	return poll(ctx, timeout, func() bool { return e.Stage() == want },
		func() error { return fmt.Errorf("stage is %s, want %s", e.Stage(), want) })
}

// WaitVersion polls until the engine version reaches at least min.
func WaitVersion(ctx context.Context, e EngineWaiter, minVersion uint64, timeout time.Duration) error {
	return poll(ctx, timeout, func() bool { return e.Version() >= minVersion },
		func() error { return fmt.Errorf("version is %d, want >= %d", e.Version(), minVersion) })
}

func poll(ctx context.Context, timeout time.Duration, done func() bool, describe func() error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if done() {
			return nil
		}
		select {
		case <-ctx.Done():
			if done() {
				return nil
			}

			return fmt.Errorf("%w: %w", describe(), ctx.Err())
		case <-ticker.C:
		}
	}
}
