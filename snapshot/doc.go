// Package snapshot encodes and decodes the persisted engine state.
//
// A snapshot is a two-line text artifact:
//
//	<FFASv1.0>
//	{"initial_impact":[[...]], ..., "dataStage":"Stage2"}
//
// Line one is a fixed version tag and line two a single JSON object holding
// the initial and current matrices, names, scalars, capacities, allocations,
// rejections, the full allocation history and the lifecycle stage.
package snapshot
