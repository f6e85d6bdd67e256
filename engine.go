package fitforge

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/fitforge/fitforge/benefit"
	"github.com/fitforge/fitforge/internal/history"
	"github.com/fitforge/fitforge/internal/hooks"
	"github.com/fitforge/fitforge/internal/logging"
	"github.com/fitforge/fitforge/internal/metrics"
	"github.com/fitforge/fitforge/internal/notify"
	"github.com/fitforge/fitforge/internal/state"
	"github.com/fitforge/fitforge/solver"
	"github.com/fitforge/fitforge/types"
)

// Engine owns one allocation problem: the input matrices, the derived
// benefit matrix, the allocation state, the run history and the observers.
//
// All methods are safe for concurrent use. Mutations are serialised under a
// single lock; solver runs work on a snapshot taken under the read lock and
// only take the write lock to append their result.
type Engine struct {
	cfg     Config
	logger  Logger
	metrics MetricsCollector
	hooks   types.Hooks
	solvers map[Algorithm]Solver

	notifier *notify.Notifier

	mu sync.RWMutex
	m  *model
	// generation changes whenever the model is replaced or reset, so a
	// solver run started before the change can detect that it is stale.
	generation uint64
}

// model is the complete mutable engine state. Load builds a new model off to
// the side and swaps it in, so a failed load leaves the old one untouched.
type model struct {
	stage Stage

	initial types.Setup
	current types.Setup

	capScalar  float64
	prefScalar float64

	benefit *benefit.Matrix
	alloc   *state.State
	history *history.History
}

func emptyModel() *model {
	return &model{
		stage:      StageAwaitingInput,
		capScalar:  1,
		prefScalar: 1,
		history:    history.New(),
	}
}

// NewEngine creates an engine awaiting its initial setup.
//
// Parameters:
//   - cfg: Configuration; nil selects DefaultConfig. Missing values are defaulted.
//   - opts: Optional logger, metrics, hooks and solver overrides
//
// Returns:
//   - *Engine: Engine in StageAwaitingInput
//   - error: ErrInvalidConfig when cfg fails validation
//
// Example:
//
//	cfg := fitforge.DefaultConfig()
//	eng, err := fitforge.NewEngine(&cfg, fitforge.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := eng.Initialise(ctx, setup); err != nil {
//	    return err
//	}
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	SetDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := &engineOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}

	c.ValidateWithWarnings(o.logger)

	objective, err := solver.ParseObjective(c.Objective)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	solvers := make(map[Algorithm]Solver, len(types.Algorithms))
	for _, alg := range types.Algorithms {
		s, err := solver.ForAlgorithm(alg, objective)
		if err != nil {
			return nil, err
		}
		solvers[alg] = s
	}
	for alg, s := range o.solvers {
		if !alg.Valid() || s == nil {
			return nil, fmt.Errorf("%w: solver override for %s", ErrInvalidConfig, alg)
		}
		solvers[alg] = s
	}

	return &Engine{
		cfg:      c,
		logger:   o.logger,
		metrics:  o.metrics,
		hooks:    hooks.Merge(o.hooks),
		solvers:  solvers,
		notifier: notify.New(o.logger, o.metrics),
		m:        emptyModel(),
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Initialise loads a new problem and moves the engine to StageOperational.
//
// Any previous problem, allocation state and history is discarded. Every team
// starts unassigned, every project gets Config.DefaultCapacity, scalars are 1
// and, unless Config.InitialAlgorithm is "none", one solver run is recorded.
//
// Empty name lists are filled with "Team i" / "Project j".
//
// Parameters:
//   - ctx: Bounds the initial solver run
//   - setup: Impact, capability and preference matrices plus names
//
// Returns:
//   - error: ErrValidation for malformed input; a failed initial run is
//     returned wrapped but leaves the engine initialised
func (e *Engine) Initialise(ctx context.Context, setup Setup) error {
	setup, err := normaliseSetup(setup)
	if err != nil {
		return err
	}

	m, err := freshModel(setup, e.cfg.DefaultCapacity)
	if err != nil {
		return err
	}

	e.mu.Lock()
	from := e.m.stage
	e.m = m
	e.generation++
	ev := e.notifier.Next(types.EventInitialised, 0, 0, 0)
	e.mu.Unlock()

	e.metrics.RecordHistorySize(0)
	e.logger.Info("engine initialised",
		"teams", len(setup.Impact),
		"projects", len(setup.Impact[0]),
	)
	e.notifier.Publish(ev)
	e.stageChanged(ctx, from, StageOperational)

	return e.initialRun(ctx)
}

// InitialiseFrom loads the setup from src and calls Initialise.
//
// Returns:
//   - error: ErrSetupSourceRequired for a nil source, the source's error, or
//     any error from Initialise
func (e *Engine) InitialiseFrom(ctx context.Context, src SetupSource) error {
	if src == nil {
		return ErrSetupSourceRequired
	}

	setup, err := src.LoadSetup(ctx)
	if err != nil {
		return fmt.Errorf("load setup: %w", err)
	}

	return e.Initialise(ctx, setup)
}

// SoftReset restores the initial matrices and discards every user decision.
//
// Scalars return to 1; allocations, rejections and history are cleared;
// capacities return to Config.DefaultCapacity. The initial solver run is
// repeated unless disabled.
//
// Returns:
//   - error: ErrNotInitialised before Initialise, or a failed initial run
func (e *Engine) SoftReset(ctx context.Context) error {
	e.mu.Lock()
	if e.m.stage != StageOperational {
		e.mu.Unlock()
		return ErrNotInitialised
	}
	m, err := freshModel(e.m.initial, e.cfg.DefaultCapacity)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.m = m
	e.generation++
	ev := e.notifier.Next(types.EventReset, 0, 0, 0)
	e.mu.Unlock()

	e.metrics.RecordHistorySize(0)
	e.logger.Info("engine soft reset")
	e.notifier.Publish(ev)

	return e.initialRun(ctx)
}

// HardReset discards everything, including the input matrices, and returns
// the engine to StageAwaitingInput.
func (e *Engine) HardReset() {
	e.mu.Lock()
	from := e.m.stage
	e.m = emptyModel()
	e.generation++
	ev := e.notifier.Next(types.EventReset, 0, 0, 0)
	e.mu.Unlock()

	e.metrics.RecordHistorySize(0)
	e.logger.Info("engine hard reset")
	e.notifier.Publish(ev)
	e.stageChanged(context.Background(), from, StageAwaitingInput)
}

// Subscribe registers a buffered channel observer.
//
// Sends never block; a full buffer drops the event. Observers that fall
// behind can compare Version with the last event they saw.
//
// Parameters:
//   - buffer: Channel capacity; <= 0 selects Config.NotifierBuffer
//
// Returns:
//   - *Subscription: Handle; Close deregisters it
func (e *Engine) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = e.cfg.NotifierBuffer
	}

	return e.notifier.Subscribe(buffer)
}

// SubscribeFunc registers a callback invoked once per state change, after
// the engine lock has been released.
//
// Returns:
//   - *Subscription: Handle; Close deregisters it
func (e *Engine) SubscribeFunc(fn func(Event)) *Subscription {
	return e.notifier.SubscribeFunc(fn)
}

func (e *Engine) initialRun(ctx context.Context) error {
	alg, ok := e.cfg.initialAlgorithm()
	if !ok {
		return nil
	}
	if _, err := e.RunAlgorithm(ctx, alg); err != nil {
		return fmt.Errorf("initial %s run: %w", alg, err)
	}

	return nil
}

// stageChanged records a lifecycle transition and fires the hook.
func (e *Engine) stageChanged(ctx context.Context, from, to Stage) {
	if from == to {
		return
	}

	e.metrics.RecordStageTransition(from, to)
	e.logger.Info("stage changed", "from", from.String(), "to", to.String())

	hookCtx := context.WithoutCancel(ctx)
	go func() {
		if err := e.hooks.OnStageChanged(hookCtx, from, to); err != nil {
			e.logger.Error("OnStageChanged hook failed", "error", err)
		}
	}()
}

// reportError fires the OnError hook.
func (e *Engine) reportError(ctx context.Context, err error) {
	hookCtx := context.WithoutCancel(ctx)
	go func() {
		if hookErr := e.hooks.OnError(hookCtx, err); hookErr != nil {
			e.logger.Error("OnError hook failed", "error", hookErr)
		}
	}()
}

// normaliseSetup deep-copies setup, checks its shape and fills missing names.
func normaliseSetup(setup Setup) (Setup, error) {
	out := setup.Clone()

	teams, projects, err := benefit.Shape(out.Impact)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: impact: %w", ErrValidation, err)
	}
	for _, rows := range [][][]float64{out.Impact, out.Capability, out.Preference} {
		for _, row := range rows {
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return Setup{}, fmt.Errorf("%w: matrices must hold finite values", ErrValidation)
				}
			}
		}
	}

	out.TeamNames, err = fillNames(out.TeamNames, teams, "Team")
	if err != nil {
		return Setup{}, err
	}
	out.ProjectNames, err = fillNames(out.ProjectNames, projects, "Project")
	if err != nil {
		return Setup{}, err
	}

	return out, nil
}

func fillNames(names []string, want int, prefix string) ([]string, error) {
	if len(names) == 0 {
		names = make([]string, want)
		for i := range names {
			names[i] = fmt.Sprintf("%s %d", prefix, i+1)
		}

		return names, nil
	}
	if len(names) != want {
		return nil, fmt.Errorf("%w: %d %s names for %d entries", ErrValidation, len(names), prefix, want)
	}

	return names, nil
}

// freshModel builds the operational model for initial matrices.
func freshModel(initial Setup, defaultCapacity int) (*model, error) {
	m := &model{
		stage:      StageOperational,
		initial:    initial.Clone(),
		current:    initial.Clone(),
		capScalar:  1,
		prefScalar: 1,
		history:    history.New(),
	}
	if err := m.recalculate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	m.alloc = state.New(m.benefit.Rows(), m.benefit.Cols(), defaultCapacity)

	return m, nil
}

// recalculate rebuilds the benefit matrix from the current inputs.
func (m *model) recalculate() error {
	b, err := benefit.Calculate(benefit.Inputs{
		Impact:           m.current.Impact,
		Capability:       m.current.Capability,
		Preference:       m.current.Preference,
		CapabilityScalar: m.capScalar,
		PreferenceScalar: m.prefScalar,
	})
	if err != nil {
		return err
	}
	m.benefit = b

	return nil
}

// elapsed returns seconds since start.
func elapsed(start time.Time) float64 {
	return time.Since(start).Seconds()
}
