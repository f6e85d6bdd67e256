// Package types provides core type definitions and interfaces for the fitforge engine.
//
// This package contains shared types that are used across multiple packages in
// fitforge. By keeping these types in a separate package, the solver, state and
// storage packages can depend on them without importing the root package.
//
// Key types:
//   - Pairing: Validated 1-based team/project pair
//   - Result: Outcome of an allocation or rejection mutation
//   - AllocationSet: Immutable record of one solver run
//   - Algorithm: Closed set of solver variants
//   - Stage: Engine lifecycle marker
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
