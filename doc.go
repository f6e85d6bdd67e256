// Package fitforge assigns teams to projects so that total benefit is
// maximised under project capacities, forced allocations and rejections.
//
// The benefit of pairing team i with project j is
//
//	b[i][j] = impact[i][j] × (capScalar × capability[i][j] + prefScalar × preference[i][j])
//
// Two solvers produce candidate allocations: an exact capacitated assignment
// solver (AlgorithmILP) and a deferred-acceptance matcher (AlgorithmGS).
// Every accepted run is kept in an append-only history so runs can be
// compared side by side.
//
// # Quick Start
//
//	cfg := fitforge.DefaultConfig()
//	eng, err := fitforge.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = eng.Initialise(ctx, fitforge.Setup{
//	    Impact:     [][]float64{{1, 1}, {1, 1}},
//	    Capability: [][]float64{{5, 1}, {1, 5}},
//	    Preference: [][]float64{{0, 0}, {0, 0}},
//	})
//
//	eng.SetRejection(1, 1)
//	set, err := eng.RunAlgorithm(ctx, fitforge.AlgorithmILP)
//	fmt.Println(set.Pairings, set.Score) // [(1,2) (2,1)] 2
//
// # Lifecycle
//
// An engine starts in StageAwaitingInput. Initialise moves it to
// StageOperational; SoftReset restores the initial matrices and clears every
// user decision; HardReset returns it to StageAwaitingInput.
//
// # Allocation state
//
// SetAllocation, RemoveAllocation, SetRejection, RemoveRejection and
// SetProjectCapacity return a Result whose Message is meant for the user.
// After every call these invariants hold:
//
//   - a team is allocated to at most one project
//   - no project holds more teams than its capacity
//   - no pairing is both allocated and rejected
//
// Solvers treat current allocations as fixed and rejections as forbidden.
//
// # Observing changes
//
// Subscribe and SubscribeFunc deliver typed Events after the engine lock is
// released. Hooks (WithHooks) receive coarser lifecycle callbacks
// asynchronously.
//
// # Persistence
//
// Save and Load use a two-line text format: the "<FFASv1.0>" tag followed by
// one JSON document. SaveTo and LoadFrom route the same bytes through a
// SnapshotStore such as store.NewFile or store.NewKV.
package fitforge
