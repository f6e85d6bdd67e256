package types

// AllocationSet is the immutable record of one accepted solver run.
type AllocationSet struct {
	// Pairings holds the selected edges sorted by team, then project.
	Pairings []Pairing `json:"allocation"`

	// Algorithm is the solver variant that produced the set.
	Algorithm Algorithm `json:"algorithm"`

	// Score is the sum of benefit values over Pairings, computed against the
	// benefit matrix the solver ran on.
	Score float64 `json:"score"`

	// Sequence is assigned on append and starts at 1.
	Sequence int `json:"runCount"`

	// Fingerprint is an xxh3 digest of Pairings, used to spot identical runs.
	Fingerprint uint64 `json:"-"`
}

// Clone returns a deep copy of the set.
func (s AllocationSet) Clone() AllocationSet {
	out := s
	out.Pairings = append([]Pairing(nil), s.Pairings...)

	return out
}

// SameAllocation reports whether two sets selected exactly the same edges.
func (s AllocationSet) SameAllocation(other AllocationSet) bool {
	if s.Fingerprint != other.Fingerprint || len(s.Pairings) != len(other.Pairings) {
		return false
	}
	for i := range s.Pairings {
		if s.Pairings[i] != other.Pairings[i] {
			return false
		}
	}

	return true
}
