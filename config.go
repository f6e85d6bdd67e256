package fitforge

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/fitforge/fitforge/snapshot"
	"github.com/fitforge/fitforge/solver"
	"github.com/fitforge/fitforge/store"
	"github.com/fitforge/fitforge/types"
)

// InitialAlgorithmNone disables the solver run performed by Initialise and SoftReset.
const InitialAlgorithmNone = "none"

// SnapshotConfig controls snapshot persistence.
type SnapshotConfig struct {
	// Tag is the version marker written on the first snapshot line.
	// Only the current format is supported, so any other value is rejected.
	Tag string `yaml:"tag"`

	// KVBucket is the JetStream key-value bucket used by store.NewKV.
	KVBucket string `yaml:"kvBucket"`

	// Dir is the directory used by store.NewFile.
	Dir string `yaml:"dir"`
}

// Config is the configuration for the Engine.
//
// Duration fields accept Go duration strings like "500ms" or "30s".
type Config struct {
	// DefaultCapacity is the number of teams each project accepts after
	// Initialise or SoftReset. Per-project values change via SetProjectCapacity.
	DefaultCapacity int `yaml:"defaultCapacity"`

	// InitialAlgorithm is run once by Initialise and SoftReset so the history
	// starts with a baseline. "ILP", "GS" or "none".
	InitialAlgorithm string `yaml:"initialAlgorithm"`

	// SolveTimeout bounds every solver run.
	SolveTimeout time.Duration `yaml:"solveTimeout"`

	// Objective selects the ILP objective: "coverage" assigns as many teams
	// as possible before maximising benefit, "benefit" maximises benefit only.
	Objective string `yaml:"objective"`

	// NotifierBuffer is the default channel size for Engine.Subscribe.
	NotifierBuffer int `yaml:"notifierBuffer"`

	// Snapshot controls snapshot persistence.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DefaultCapacity:  1,
		InitialAlgorithm: types.AlgorithmILP.String(),
		SolveTimeout:     30 * time.Second,
		Objective:        solver.ObjectiveCoverage.String(),
		NotifierBuffer:   16,
		Snapshot: SnapshotConfig{
			Tag:      snapshot.Tag,
			KVBucket: store.DefaultKVBucket,
			Dir:      ".",
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultCapacity == 0 {
		cfg.DefaultCapacity = defaults.DefaultCapacity
	}
	if cfg.InitialAlgorithm == "" {
		cfg.InitialAlgorithm = defaults.InitialAlgorithm
	}
	if cfg.SolveTimeout == 0 {
		cfg.SolveTimeout = defaults.SolveTimeout
	}
	if cfg.Objective == "" {
		cfg.Objective = defaults.Objective
	}
	if cfg.NotifierBuffer == 0 {
		cfg.NotifierBuffer = defaults.NotifierBuffer
	}
	if cfg.Snapshot.Tag == "" {
		cfg.Snapshot.Tag = defaults.Snapshot.Tag
	}
	if cfg.Snapshot.KVBucket == "" {
		cfg.Snapshot.KVBucket = defaults.Snapshot.KVBucket
	}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = defaults.Snapshot.Dir
	}
}

// Validate checks configuration constraints.
//
// Rules:
//   - DefaultCapacity >= 1
//   - InitialAlgorithm is "none" or a known algorithm
//   - SolveTimeout > 0
//   - Objective is "coverage" or "benefit"
//   - NotifierBuffer >= 1
//   - Snapshot.Tag is the supported version tag
//
// Returns:
//   - error: Validation error with a clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DefaultCapacity < 1 {
		return fmt.Errorf("DefaultCapacity must be >= 1, got %d", cfg.DefaultCapacity)
	}

	if !strings.EqualFold(cfg.InitialAlgorithm, InitialAlgorithmNone) {
		if _, err := types.ParseAlgorithm(cfg.InitialAlgorithm); err != nil {
			return fmt.Errorf("InitialAlgorithm: %w", err)
		}
	}

	if cfg.SolveTimeout <= 0 {
		return fmt.Errorf("SolveTimeout must be > 0, got %v", cfg.SolveTimeout)
	}

	if _, err := solver.ParseObjective(cfg.Objective); err != nil {
		return fmt.Errorf("Objective: %w", err)
	}

	if cfg.NotifierBuffer < 1 {
		return fmt.Errorf("NotifierBuffer must be >= 1, got %d", cfg.NotifierBuffer)
	}

	if cfg.Snapshot.Tag != snapshot.Tag {
		return fmt.Errorf("Snapshot.Tag %q is not supported, want %q", cfg.Snapshot.Tag, snapshot.Tag)
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but unusual values.
//
// This is called after Validate() in NewEngine() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.SolveTimeout < time.Second {
		logger.Warn(
			"SolveTimeout is very short, large problems may be cancelled",
			"solveTimeout", cfg.SolveTimeout,
			"recommended", "1s or higher",
		)
	}

	if cfg.NotifierBuffer < 4 {
		logger.Warn(
			"NotifierBuffer is small, slow channel subscribers will drop events",
			"notifierBuffer", cfg.NotifierBuffer,
			"recommended", 16,
		)
	}

	if strings.EqualFold(cfg.Objective, solver.ObjectiveBenefit.String()) {
		logger.Info(
			"ILP objective is benefit-only, teams with no positive benefit may stay unassigned",
			"objective", cfg.Objective,
		)
	}
}

// initialAlgorithm returns the algorithm to run on Initialise and SoftReset.
func (cfg *Config) initialAlgorithm() (Algorithm, bool) {
	if strings.EqualFold(cfg.InitialAlgorithm, InitialAlgorithmNone) {
		return 0, false
	}
	alg, err := types.ParseAlgorithm(cfg.InitialAlgorithm)
	if err != nil {
		return 0, false
	}

	return alg, true
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - fs: Filesystem to read from (afero.NewOsFs in production)
//   - path: Path of the YAML document
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read or decode failure, or ErrInvalidConfig
//
// Example:
//
//	cfg, err := fitforge.LoadConfig(afero.NewOsFs(), "/etc/fitforge/config.yaml")
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// TestConfig returns a configuration suited to unit tests.
//
// The initial solver run is disabled so tests start from an empty history
// and control every run explicitly. The solve timeout is short so a stuck
// solver fails fast.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := fitforge.TestConfig()
//	cfg.DefaultCapacity = 2
//	eng, err := fitforge.NewEngine(&cfg)
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialAlgorithm = InitialAlgorithmNone
	cfg.SolveTimeout = 5 * time.Second

	return cfg
}
