package types

// EventKind classifies a state change broadcast to subscribers.
type EventKind int

const (
	// EventInitialised fires after a setup has been loaded.
	EventInitialised EventKind = iota + 1
	// EventAllocationChanged fires when an allocation is set, switched or removed.
	EventAllocationChanged
	// EventRejectionChanged fires when a rejection is added or removed.
	EventRejectionChanged
	// EventMatrixChanged fires when a scalar or input cell changes.
	EventMatrixChanged
	// EventCapacityChanged fires when a project capacity changes.
	EventCapacityChanged
	// EventSolveCompleted fires after a solver run is appended to history.
	EventSolveCompleted
	// EventReset fires after a soft or hard reset.
	EventReset
	// EventLoaded fires after a snapshot replaced the state.
	EventLoaded
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventInitialised:
		return "initialised"
	case EventAllocationChanged:
		return "allocation_changed"
	case EventRejectionChanged:
		return "rejection_changed"
	case EventMatrixChanged:
		return "matrix_changed"
	case EventCapacityChanged:
		return "capacity_changed"
	case EventSolveCompleted:
		return "solve_completed"
	case EventReset:
		return "reset"
	case EventLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Event describes one state change.
//
// Version increases by one for every event and can be polled through
// Engine.Version by observers that prefer not to subscribe.
type Event struct {
	Kind    EventKind
	Version uint64

	// Team and Project are set for pairing and capacity events (Team is 0 for
	// capacity events). Both are 0 otherwise.
	Team    int
	Project int

	// Sequence is the history sequence for EventSolveCompleted.
	Sequence int
}
