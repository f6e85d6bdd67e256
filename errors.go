package fitforge

import "github.com/fitforge/fitforge/types"

// Sentinel errors returned by the Engine. They alias the types package so
// errors.Is works no matter which package the caller imports.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrNotInitialised is returned when an operation needs input matrices
	// before Initialise has been called.
	ErrNotInitialised = types.ErrNotInitialised

	// ErrSetupSourceRequired is returned when InitialiseFrom gets a nil source.
	ErrSetupSourceRequired = types.ErrSetupSourceRequired

	// ErrSnapshotStoreRequired is returned when SaveTo or LoadFrom gets a nil store.
	ErrSnapshotStoreRequired = types.ErrSnapshotStoreRequired

	// ErrValidation is returned for out-of-range indices or malformed input.
	ErrValidation = types.ErrValidation

	// ErrStateConflict is returned when a change would break an allocation invariant.
	ErrStateConflict = types.ErrStateConflict

	// ErrInfeasible is returned when forced allocations cannot be satisfied.
	ErrInfeasible = types.ErrInfeasible

	// ErrUnknownAlgorithm is returned for an algorithm outside the closed set.
	ErrUnknownAlgorithm = types.ErrUnknownAlgorithm

	// ErrFormat is returned when a snapshot is malformed.
	ErrFormat = types.ErrFormat

	// ErrSnapshotNotFound is returned when a store has no snapshot under a name.
	ErrSnapshotNotFound = types.ErrSnapshotNotFound

	// ErrStoreUnavailable is returned when a remote snapshot store cannot be reached.
	ErrStoreUnavailable = types.ErrStoreUnavailable
)
