// Package benefit derives the benefit matrix that drives both solvers.
//
// For every team i and project j:
//
//	b[i][j] = impact[i][j] * (capabilityScalar*capability[i][j] + preferenceScalar*preference[i][j])
//
// The matrix is recomputed in full after any scalar or cell edit. Computation
// is O(m·n) and uses gonum dense matrices.
package benefit
