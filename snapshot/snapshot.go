package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fitforge/fitforge/benefit"
	"github.com/fitforge/fitforge/types"
)

// Tag is the version marker on the first line of every snapshot.
const Tag = "<FFASv1.0>"

// Extension is the file extension used for snapshot files.
const Extension = ".ffas"

// maxSnapshotBytes bounds how much Decode reads.
const maxSnapshotBytes = 64 << 20

// Document is the persisted engine state.
//
// Allocations lists every team, with project 0 for unassigned teams.
type Document struct {
	InitialImpact     [][]float64           `json:"initial_impact"`
	InitialCapability [][]float64           `json:"initial_capability"`
	InitialPreference [][]float64           `json:"initial_preference"`
	TeamNames         []string              `json:"team_names"`
	ProjectNames      []string              `json:"project_names"`
	Impact            [][]float64           `json:"impact"`
	Capability        [][]float64           `json:"capability"`
	Preference        [][]float64           `json:"preference"`
	CapabilityScalar  float64               `json:"capability_scalar"`
	PreferenceScalar  float64               `json:"preference_scalar"`
	Capacities        []int                 `json:"num_teams_to_project"`
	Allocations       []types.Pairing       `json:"allocations"`
	Rejections        []types.Pairing       `json:"rejections"`
	History           []types.AllocationSet `json:"allocation_sets"`
	Stage             types.Stage           `json:"dataStage"`
}

// Encode writes doc as a two-line snapshot.
//
// Parameters:
//   - w: Destination
//   - doc: State to persist
//
// Returns:
//   - error: JSON encoding or write error
func Encode(w io.Writer, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(Tag) + 1 + len(body))
	buf.WriteString(Tag)
	buf.WriteByte('\n')
	buf.Write(body)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// Marshal returns the encoded snapshot bytes.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads and validates a snapshot.
//
// The artifact must be exactly two lines (one trailing newline is
// tolerated) and the first line must equal Tag.
//
// Parameters:
//   - r: Source
//
// Returns:
//   - Document: Decoded state
//   - error: ErrFormat for any structural problem
func Decode(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxSnapshotBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(raw) > maxSnapshotBytes {
		return Document{}, fmt.Errorf("%w: snapshot exceeds %d bytes", types.ErrFormat, maxSnapshotBytes)
	}

	return Unmarshal(raw)
}

// Unmarshal decodes and validates snapshot bytes.
func Unmarshal(raw []byte) (Document, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		return Document{}, fmt.Errorf("%w: expected 2 lines, got %d", types.ErrFormat, len(lines))
	}
	if lines[0] != Tag {
		return Document{}, fmt.Errorf("%w: unexpected version tag %q", types.ErrFormat, lines[0])
	}

	dec := json.NewDecoder(strings.NewReader(lines[1]))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Validate checks shapes and index bounds. It does not check allocation
// invariants; the engine does that when it rebuilds the allocation state.
//
// Returns:
//   - error: ErrFormat describing the first problem
func (d Document) Validate() error {
	if d.Stage == types.StageAwaitingInput {
		return nil
	}

	teams, projects, err := benefit.Shape(d.Impact)
	if err != nil {
		return fmt.Errorf("%w: impact: %w", types.ErrFormat, err)
	}
	others := []struct {
		name string
		rows [][]float64
	}{
		{"capability", d.Capability},
		{"preference", d.Preference},
		{"initial_impact", d.InitialImpact},
		{"initial_capability", d.InitialCapability},
		{"initial_preference", d.InitialPreference},
	}
	for _, o := range others {
		r, c, err := benefit.Shape(o.rows)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", types.ErrFormat, o.name, err)
		}
		if r != teams || c != projects {
			return fmt.Errorf("%w: %s is %dx%d, want %dx%d", types.ErrFormat, o.name, r, c, teams, projects)
		}
	}
	if len(d.TeamNames) != teams {
		return fmt.Errorf("%w: %d team names for %d teams", types.ErrFormat, len(d.TeamNames), teams)
	}
	if len(d.ProjectNames) != projects {
		return fmt.Errorf("%w: %d project names for %d projects", types.ErrFormat, len(d.ProjectNames), projects)
	}
	if len(d.Capacities) != projects {
		return fmt.Errorf("%w: %d capacities for %d projects", types.ErrFormat, len(d.Capacities), projects)
	}
	if len(d.Allocations) != teams {
		return fmt.Errorf("%w: %d allocation entries for %d teams", types.ErrFormat, len(d.Allocations), teams)
	}
	for i, a := range d.Allocations {
		if a.Team != i+1 || a.Project < 0 || a.Project > projects {
			return fmt.Errorf("%w: allocation entry %d is %s", types.ErrFormat, i+1, a)
		}
	}
	for _, r := range d.Rejections {
		if err := r.Validate(teams, projects); err != nil {
			return fmt.Errorf("%w: rejection: %w", types.ErrFormat, err)
		}
	}
	for _, set := range d.History {
		for _, p := range set.Pairings {
			if err := p.Validate(teams, projects); err != nil {
				return fmt.Errorf("%w: history entry %d: %w", types.ErrFormat, set.Sequence, err)
			}
		}
	}

	return nil
}

// Filename returns the conventional snapshot file name for t,
// e.g. FitForge_2024-05-01_13-45-10.ffas.
func Filename(t time.Time) string {
	return "FitForge_" + t.Format("2006-01-02_15-04-05") + Extension
}
