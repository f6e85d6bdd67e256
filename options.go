package fitforge

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	solvers map[Algorithm]Solver
}

// WithHooks sets lifecycle hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions; nil callbacks are skipped
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &fitforge.Hooks{
//	    OnSolveCompleted: func(ctx context.Context, set fitforge.AllocationSet) error {
//	        return publish(set)
//	    },
//	}
//	eng, err := fitforge.NewEngine(&cfg, fitforge.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation, e.g. NewPrometheusMetrics
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	eng, err := fitforge.NewEngine(&cfg,
//	    fitforge.WithMetrics(fitforge.NewPrometheusMetrics(prometheus.DefaultRegisterer)))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	eng, err := fitforge.NewEngine(&cfg, fitforge.WithLogger(zap.NewExample().Sugar()))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithSolver replaces the built-in solver for one algorithm.
//
// Parameters:
//   - alg: Algorithm the solver answers for
//   - s: Solver implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	ilp := solver.NewILP(solver.WithObjective(solver.ObjectiveBenefit))
//	eng, err := fitforge.NewEngine(&cfg, fitforge.WithSolver(fitforge.AlgorithmILP, ilp))
func WithSolver(alg Algorithm, s Solver) Option {
	return func(o *engineOptions) {
		if o.solvers == nil {
			o.solvers = make(map[Algorithm]Solver)
		}
		o.solvers[alg] = s
	}
}
