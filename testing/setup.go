package testing

import "github.com/fitforge/fitforge/types"

// SampleSetup returns a 3×3 problem with distinct, positive benefits.
//
// With unit scalars the benefit matrix is
//
//	[[ 9  4  2]
//	 [ 6 12  3]
//	 [ 2  6 20]]
//
// so both solvers pick the diagonal for a score of 41.
func SampleSetup() types.Setup {
	return types.Setup{
		Impact: [][]float64{
			{3, 2, 1},
			{2, 3, 1},
			{1, 2, 4},
		},
		Capability: [][]float64{
			{2, 1, 1},
			{1, 2, 2},
			{1, 1, 3},
		},
		Preference: [][]float64{
			{1, 1, 1},
			{2, 2, 1},
			{1, 2, 2},
		},
		TeamNames:    []string{"Falcon", "Heron", "Osprey"},
		ProjectNames: []string{"Billing", "Search", "Telemetry"},
	}
}
