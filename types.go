package fitforge

import (
	"github.com/fitforge/fitforge/internal/notify"
	"github.com/fitforge/fitforge/types"
)

// Re-export types from the types package.
//
// Internal packages depend on types rather than on the root package, which
// avoids import cycles while still giving users fitforge.Pairing,
// fitforge.Logger and so on.
type (
	Pairing        = types.Pairing
	AllocationSet  = types.AllocationSet
	Result         = types.Result
	Setup          = types.Setup
	PairingDetails = types.PairingDetails
	Event          = types.Event
	EventKind      = types.EventKind
	Stage          = types.Stage
	Algorithm      = types.Algorithm
	CellKind       = types.CellKind
)

// Re-export interfaces from the types package for convenience.
type (
	Solver           = types.Solver
	SetupSource      = types.SetupSource
	SnapshotStore    = types.SnapshotStore
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Subscription is a scoped notifier registration returned by Engine.Subscribe
// and Engine.SubscribeFunc. Close deregisters it.
type Subscription = notify.Subscription

// Re-export constants from the types package.
const (
	StageAwaitingInput = types.StageAwaitingInput
	StageOperational   = types.StageOperational

	AlgorithmILP = types.AlgorithmILP
	AlgorithmGS  = types.AlgorithmGS

	CellImpact     = types.CellImpact
	CellCapability = types.CellCapability
	CellPreference = types.CellPreference

	EventInitialised       = types.EventInitialised
	EventAllocationChanged = types.EventAllocationChanged
	EventRejectionChanged  = types.EventRejectionChanged
	EventMatrixChanged     = types.EventMatrixChanged
	EventCapacityChanged   = types.EventCapacityChanged
	EventSolveCompleted    = types.EventSolveCompleted
	EventReset             = types.EventReset
	EventLoaded            = types.EventLoaded
)
