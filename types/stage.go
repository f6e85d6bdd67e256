package types

import "fmt"

// Stage is the coarse lifecycle marker of the engine.
//
//	StageAwaitingInput → Initialise → StageOperational
//	StageOperational   → HardReset  → StageAwaitingInput
type Stage int

const (
	// StageAwaitingInput means no input matrices are loaded yet.
	StageAwaitingInput Stage = iota

	// StageOperational means matrices are loaded and the allocation state is live.
	StageOperational
)

// String returns the persisted marker for the stage.
func (s Stage) String() string {
	switch s {
	case StageAwaitingInput:
		return "Stage1"
	case StageOperational:
		return "Stage2"
	default:
		return "Unknown"
	}
}

// ParseStage converts a persisted marker back into a Stage.
//
// Parameters:
//   - s: Marker as written by String ("Stage1" or "Stage2")
//
// Returns:
//   - Stage: Parsed stage
//   - bool: false if the marker is not recognised
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "Stage1":
		return StageAwaitingInput, true
	case "Stage2":
		return StageOperational, true
	default:
		return StageAwaitingInput, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, ok := ParseStage(string(text))
	if !ok {
		return fmt.Errorf("%w: unknown stage %q", ErrFormat, text)
	}
	*s = parsed

	return nil
}
