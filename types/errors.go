package types

import "errors"

// Sentinel errors for the fitforge engine.
//
// Callers branch on these with errors.Is. Components wrap them with context
// using fmt.Errorf("%s: %w", msg, err) so the sentinel survives wrapping.

// Engine errors - returned by the public Engine API.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotInitialised is returned when an operation needs input matrices
	// but the engine is still awaiting its initial setup.
	ErrNotInitialised = errors.New("engine not initialised")

	// ErrSetupSourceRequired is returned when a nil setup source is supplied.
	ErrSetupSourceRequired = errors.New("setup source is required")

	// ErrSnapshotStoreRequired is returned when a nil snapshot store is supplied.
	ErrSnapshotStoreRequired = errors.New("snapshot store is required")
)

// Allocation state errors - carried in Result.Err for refused mutations.
var (
	// ErrValidation is returned when a team or project index is outside
	// [1, m] or [1, n], or a numeric argument is out of range.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict is returned when a mutation would break an allocation
	// invariant: capacity exceeded, allocating a rejected pairing, rejecting
	// an allocated pairing or duplicating a rejection.
	ErrStateConflict = errors.New("state conflict")
)

// Solver errors.
var (
	// ErrInfeasible is returned when the forced allocations cannot be
	// satisfied under the current capacities and rejections.
	ErrInfeasible = errors.New("no feasible allocation")

	// ErrUnknownAlgorithm is returned for an algorithm outside the closed set.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Persistence errors.
var (
	// ErrFormat is returned when a persisted snapshot is malformed.
	ErrFormat = errors.New("malformed snapshot")

	// ErrSnapshotNotFound is returned when a snapshot store has no entry for a name.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStoreUnavailable is returned when a remote snapshot store cannot be
	// reached. The operation may succeed if retried.
	ErrStoreUnavailable = errors.New("snapshot store unavailable")
)
