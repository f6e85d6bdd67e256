// Package testutil provides shared assertions and wait helpers for
// integration tests that drive a fitforge.Engine end to end.
//
// Examples of utilities that belong here:
//   - Assertion helpers (allocation consistency, history ordering)
//   - Wait helpers (stage transitions, event versions)
//
// Note: For NATS server setup and sample problems, use the
// github.com/fitforge/fitforge/testing package.
package testutil
