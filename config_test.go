package fitforge

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 1, cfg.DefaultCapacity)
	require.Equal(t, "ILP", cfg.InitialAlgorithm)
	require.Equal(t, 30*time.Second, cfg.SolveTimeout)
	require.Equal(t, "coverage", cfg.Objective)
	require.Equal(t, 16, cfg.NotifierBuffer)
	require.Equal(t, "<FFASv1.0>", cfg.Snapshot.Tag)
	require.Equal(t, "fitforge-snapshots", cfg.Snapshot.KVBucket)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			DefaultCapacity:  3,
			InitialAlgorithm: "GS",
			SolveTimeout:     time.Minute,
			Objective:        "benefit",
			NotifierBuffer:   64,
			Snapshot:         SnapshotConfig{KVBucket: "custom", Dir: "/data"},
		}
		SetDefaults(&cfg)

		require.Equal(t, 3, cfg.DefaultCapacity)
		require.Equal(t, "GS", cfg.InitialAlgorithm)
		require.Equal(t, time.Minute, cfg.SolveTimeout)
		require.Equal(t, "benefit", cfg.Objective)
		require.Equal(t, 64, cfg.NotifierBuffer)
		require.Equal(t, "custom", cfg.Snapshot.KVBucket)
		require.Equal(t, "/data", cfg.Snapshot.Dir)
		require.Equal(t, "<FFASv1.0>", cfg.Snapshot.Tag)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative capacity", func(c *Config) { c.DefaultCapacity = -1 }, "DefaultCapacity"},
		{"unknown algorithm", func(c *Config) { c.InitialAlgorithm = "simplex" }, "InitialAlgorithm"},
		{"zero timeout", func(c *Config) { c.SolveTimeout = -time.Second }, "SolveTimeout"},
		{"unknown objective", func(c *Config) { c.Objective = "fairness" }, "Objective"},
		{"negative buffer", func(c *Config) { c.NotifierBuffer = -1 }, "NotifierBuffer"},
		{"future tag", func(c *Config) { c.Snapshot.Tag = "<FFASv2.0>" }, "Snapshot.Tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("none and lower case are accepted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.InitialAlgorithm = "none"
		require.NoError(t, cfg.Validate())

		cfg.InitialAlgorithm = "gs"
		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SolveTimeout = 100 * time.Millisecond
	cfg.NotifierBuffer = 1

	logger := &recordingLogger{}
	cfg.ValidateWithWarnings(logger)

	require.Len(t, logger.entries("WARN"), 2)

	quiet := &recordingLogger{}
	defaults := DefaultConfig()
	defaults.ValidateWithWarnings(quiet)
	require.Empty(t, quiet.entries("WARN"))
}

func TestConfig_YAML(t *testing.T) {
	doc := `
defaultCapacity: 2
initialAlgorithm: GS
solveTimeout: 45s
objective: benefit
notifierBuffer: 8
snapshot:
  kvBucket: allocations
  dir: /var/lib/fitforge
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	require.Equal(t, 2, cfg.DefaultCapacity)
	require.Equal(t, "GS", cfg.InitialAlgorithm)
	require.Equal(t, 45*time.Second, cfg.SolveTimeout)
	require.Equal(t, "benefit", cfg.Objective)
	require.Equal(t, 8, cfg.NotifierBuffer)
	require.Equal(t, "allocations", cfg.Snapshot.KVBucket)
	require.Equal(t, "/var/lib/fitforge", cfg.Snapshot.Dir)
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("partial document gets defaults", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/etc/fitforge.yaml", []byte("defaultCapacity: 2\n"), 0o644))

		cfg, err := LoadConfig(fs, "/etc/fitforge.yaml")
		require.NoError(t, err)
		require.Equal(t, 2, cfg.DefaultCapacity)
		require.Equal(t, 30*time.Second, cfg.SolveTimeout)
	})

	t.Run("invalid values", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("objective: fairness\n"), 0o644))

		_, err := LoadConfig(fs, "/bad.yaml")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown key", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/typo.yaml", []byte("defaultCapacty: 2\n"), 0o644))

		_, err := LoadConfig(fs, "/typo.yaml")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(fs, "/absent.yaml")
		require.Error(t, err)
	})
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()
	require.NoError(t, cfg.Validate())

	_, ok := cfg.initialAlgorithm()
	require.False(t, ok)
}
