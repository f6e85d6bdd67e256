// Package history records accepted solver runs in completion order.
package history

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/fitforge/fitforge/types"
)

// History is an append-only list of allocation sets.
//
// History is not safe for concurrent use; the engine appends under its lock
// so that sequence order equals completion order.
type History struct {
	sets []types.AllocationSet
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Append records a run and assigns the next sequence number.
//
// The pairings are copied and sorted, and the fingerprint is computed.
//
// Parameters:
//   - alg: Solver variant that produced the run
//   - pairings: Selected edges
//   - score: Σ benefit over pairings
//
// Returns:
//   - types.AllocationSet: The stored record
func (h *History) Append(alg types.Algorithm, pairings []types.Pairing, score float64) types.AllocationSet {
	ps := slices.Clone(pairings)
	types.SortPairings(ps)

	set := types.AllocationSet{
		Pairings:    ps,
		Algorithm:   alg,
		Score:       score,
		Sequence:    len(h.sets) + 1,
		Fingerprint: Fingerprint(ps),
	}
	h.sets = append(h.sets, set)

	return set.Clone()
}

// All returns copies of every record in sequence order.
func (h *History) All() []types.AllocationSet {
	out := make([]types.AllocationSet, len(h.sets))
	for i, s := range h.sets {
		out[i] = s.Clone()
	}

	return out
}

// Get returns the record with the given sequence number.
func (h *History) Get(seq int) (types.AllocationSet, bool) {
	if seq < 1 || seq > len(h.sets) {
		return types.AllocationSet{}, false
	}

	return h.sets[seq-1].Clone(), true
}

// Latest returns the most recent record.
func (h *History) Latest() (types.AllocationSet, bool) {
	return h.Get(len(h.sets))
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.sets)
}

// Restore builds a history from persisted records.
//
// Sequence numbers must run 1, 2, 3, ... without gaps. Fingerprints are
// recomputed from the pairings.
//
// Returns:
//   - *History: Restored history
//   - error: ErrFormat when sequences are out of order or an algorithm is unknown
func Restore(sets []types.AllocationSet) (*History, error) {
	h := &History{sets: make([]types.AllocationSet, 0, len(sets))}
	for i, s := range sets {
		if s.Sequence != i+1 {
			return nil, fmt.Errorf("%w: history entry %d has sequence %d", types.ErrFormat, i+1, s.Sequence)
		}
		if !s.Algorithm.Valid() {
			return nil, fmt.Errorf("%w: history entry %d has unknown algorithm", types.ErrFormat, i+1)
		}
		c := s.Clone()
		types.SortPairings(c.Pairings)
		c.Fingerprint = Fingerprint(c.Pairings)
		h.sets = append(h.sets, c)
	}

	return h, nil
}

// Fingerprint hashes sorted pairings with xxh3.
func Fingerprint(pairings []types.Pairing) uint64 {
	buf := make([]byte, 0, len(pairings)*16)
	for _, p := range pairings {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Team))    //nolint:gosec // indices are positive
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Project)) //nolint:gosec // indices are positive
	}

	return xxh3.Hash(buf)
}
