package types

import "context"

// Setup is the raw input of an allocation problem.
//
// All three matrices are m×n with rows for teams and columns for projects.
type Setup struct {
	Impact       [][]float64 `yaml:"impact" json:"impact"`
	Capability   [][]float64 `yaml:"capability" json:"capability"`
	Preference   [][]float64 `yaml:"preference" json:"preference"`
	TeamNames    []string    `yaml:"teamNames" json:"team_names"`
	ProjectNames []string    `yaml:"projectNames" json:"project_names"`
}

// Clone returns a deep copy of the setup.
func (s Setup) Clone() Setup {
	return Setup{
		Impact:       CloneRows(s.Impact),
		Capability:   CloneRows(s.Capability),
		Preference:   CloneRows(s.Preference),
		TeamNames:    append([]string(nil), s.TeamNames...),
		ProjectNames: append([]string(nil), s.ProjectNames...),
	}
}

// CloneRows deep-copies a row-major matrix. A nil input yields nil.
func CloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// SetupSource provides the input matrices for Engine.Initialise.
//
// Implementations:
//   - source.Static: fixed setup held in memory
//   - source.YAMLFile: setup document read from a filesystem
type SetupSource interface {
	// LoadSetup returns the setup.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - Setup: Input matrices and names
	//   - error: Read or decode error
	LoadSetup(ctx context.Context) (Setup, error)
}

// CellKind selects which input matrix a cell edit targets.
type CellKind int

const (
	// CellImpact targets the impact matrix.
	CellImpact CellKind = iota + 1
	// CellCapability targets the capability matrix.
	CellCapability
	// CellPreference targets the preference matrix.
	CellPreference
)

// String returns the matrix name.
func (k CellKind) String() string {
	switch k {
	case CellImpact:
		return "impact"
	case CellCapability:
		return "capability"
	case CellPreference:
		return "preference"
	default:
		return "unknown"
	}
}

// PairingDetails explains how a benefit value was derived.
//
// For the unassigned pseudo-project (project 0) every numeric field is -1.
type PairingDetails struct {
	Team             int
	Project          int
	TeamName         string
	ProjectName      string
	Impact           float64
	Capability       float64
	Preference       float64
	CapabilityScalar float64
	PreferenceScalar float64
	Benefit          float64
}
