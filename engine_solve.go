package fitforge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitforge/fitforge/types"
)

// Solve outcomes reported to MetricsCollector.RecordSolveOutcome.
const (
	outcomeSuccess    = "success"
	outcomeInfeasible = "infeasible"
	outcomeCanceled   = "canceled"
	outcomeError      = "error"
)

// RunAlgorithm solves the current problem and appends the result to the history.
//
// The solver sees a snapshot of the benefit matrix, capacities, allocations
// and rejections. Current allocations are forced and rejections are excluded.
// The run does not change the current allocation; it only records a
// candidate in the history for comparison.
//
// A run that fails, is cancelled or outlives a reset appends nothing.
//
// Parameters:
//   - ctx: Cancels the run; Config.SolveTimeout is applied on top
//   - alg: AlgorithmILP or AlgorithmGS
//
// Returns:
//   - AllocationSet: The appended record
//   - error: ErrNotInitialised, ErrUnknownAlgorithm, ErrInfeasible,
//     ErrStateConflict when the engine was reset mid-run, or a context error
//
// Example:
//
//	set, err := eng.RunAlgorithm(ctx, fitforge.AlgorithmILP)
//	if errors.Is(err, fitforge.ErrInfeasible) {
//	    // forced allocations cannot all hold; relax capacities or allocations
//	}
func (e *Engine) RunAlgorithm(ctx context.Context, alg Algorithm) (AllocationSet, error) {
	s, ok := e.solvers[alg]
	if !ok {
		return AllocationSet{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}

	e.mu.RLock()
	if e.m.stage != StageOperational {
		e.mu.RUnlock()
		return AllocationSet{}, ErrNotInitialised
	}
	gen := e.generation
	req := types.SolveRequest{
		Benefit:     e.m.benefit.Raw(),
		Capacities:  e.m.alloc.Capacities(),
		Allocations: e.m.alloc.Allocations(),
		Rejections:  e.m.alloc.Rejections(),
	}
	e.mu.RUnlock()

	runCtx, cancel := context.WithTimeout(ctx, e.cfg.SolveTimeout)
	defer cancel()

	e.logger.Debug("solver run started",
		"algorithm", alg.String(),
		"teams", req.Teams(),
		"projects", req.Projects(),
		"forced", len(req.Allocations),
		"rejected", len(req.Rejections),
	)

	start := time.Now()
	res, err := s.Solve(runCtx, req)
	e.metrics.RecordSolveDuration(alg, elapsed(start))
	if err == nil && !res.Feasible {
		err = ErrInfeasible
	}
	if err != nil {
		return AllocationSet{}, e.solveFailed(ctx, alg, err)
	}

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		return AllocationSet{}, e.solveFailed(ctx, alg,
			fmt.Errorf("%w: engine was reset during the run", ErrStateConflict))
	}
	prev, hasPrev := e.m.history.Latest()
	set := e.m.history.Append(alg, res.Pairings, res.Score)
	repeat := hasPrev && prev.SameAllocation(set)
	size := e.m.history.Len()
	ev := e.notifier.Next(types.EventSolveCompleted, 0, 0, set.Sequence)
	e.mu.Unlock()

	e.metrics.RecordSolveOutcome(alg, outcomeSuccess)
	e.metrics.RecordSolveScore(alg, set.Score)
	e.metrics.RecordHistorySize(size)
	e.logger.Info("solver run completed",
		"algorithm", alg.String(),
		"sequence", set.Sequence,
		"pairings", len(set.Pairings),
		"score", set.Score,
		"same_as_previous", repeat,
		"duration", time.Since(start),
	)
	e.notifier.Publish(ev)

	hookCtx := context.WithoutCancel(ctx)
	go func() {
		if err := e.hooks.OnSolveCompleted(hookCtx, set.Clone()); err != nil {
			e.logger.Error("OnSolveCompleted hook failed", "error", err)
		}
	}()

	return set, nil
}

// solveFailed records a failed run and returns the wrapped error.
func (e *Engine) solveFailed(ctx context.Context, alg Algorithm, err error) error {
	outcome := outcomeError
	switch {
	case errors.Is(err, ErrInfeasible):
		outcome = outcomeInfeasible
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = outcomeCanceled
	}
	e.metrics.RecordSolveOutcome(alg, outcome)

	wrapped := fmt.Errorf("%s run: %w", alg, err)
	if outcome == outcomeInfeasible {
		e.logger.Warn("solver run infeasible", "algorithm", alg.String(), "error", err)
	} else {
		e.logger.Error("solver run failed", "algorithm", alg.String(), "error", err)
	}
	e.reportError(ctx, wrapped)

	return wrapped
}
