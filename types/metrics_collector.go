package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and thread-safe.
//
// This interface composes smaller, domain-focused interfaces.
type MetricsCollector interface {
	SolverMetrics
	StateMetrics
	NotifierMetrics
}

// SolverMetrics defines metrics for solver runs.
type SolverMetrics interface {
	// RecordSolveDuration records the time taken by one solver run.
	//
	// Parameters:
	//   - algorithm: Solver variant
	//   - seconds: Duration in seconds
	RecordSolveDuration(algorithm Algorithm, seconds float64)

	// RecordSolveOutcome counts a finished run.
	//
	// Parameters:
	//   - algorithm: Solver variant
	//   - outcome: "success", "infeasible", "canceled" or "error"
	RecordSolveOutcome(algorithm Algorithm, outcome string)

	// RecordSolveScore sets the score of the latest accepted run (gauge).
	RecordSolveScore(algorithm Algorithm, score float64)
}

// StateMetrics defines metrics for allocation state changes.
type StateMetrics interface {
	// RecordMutation counts an allocation, rejection or capacity mutation.
	//
	// Parameters:
	//   - op: Operation name ("set_allocation", "remove_rejection", ...)
	//   - success: Whether the mutation was applied
	RecordMutation(op string, success bool)

	// RecordHistorySize sets the current history length (gauge).
	RecordHistorySize(size int)

	// RecordStageTransition records a lifecycle stage transition.
	RecordStageTransition(from, to Stage)
}

// NotifierMetrics defines metrics for event delivery.
type NotifierMetrics interface {
	// RecordEventDropped counts an event that a slow channel subscriber missed.
	RecordEventDropped(kind EventKind)

	// RecordSubscriberCount sets the current number of subscribers (gauge).
	RecordSubscriberCount(count int)
}
