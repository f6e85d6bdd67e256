package fitforge

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fitforge/fitforge/types"
)

// recordingLogger keeps every entry so tests can assert on log output.
type recordingLogger struct {
	mu   sync.Mutex
	logs []string
}

var _ types.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, level+" "+msg)
}

func (l *recordingLogger) entries(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, e := range l.logs {
		if len(e) > len(level) && e[:len(level)] == level {
			out = append(out, e)
		}
	}

	return out
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("DEBUG", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("INFO", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("WARN", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("ERROR", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.add("FATAL", msg) }

// scenarioSetup yields benefit [[5,1],[1,5]] with unit scalars.
func scenarioSetup() Setup {
	return Setup{
		Impact:     [][]float64{{1, 1}, {1, 1}},
		Capability: [][]float64{{5, 1}, {1, 5}},
		Preference: [][]float64{{0, 0}, {0, 0}},
	}
}

// newTestEngine returns an initialised engine built from TestConfig.
func newTestEngine(t *testing.T, setup Setup, opts ...Option) *Engine {
	t.Helper()

	cfg := TestConfig()
	eng, err := NewEngine(&cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, eng.Initialise(t.Context(), setup))

	return eng
}

func pairs(ps ...[2]int) []Pairing {
	out := make([]Pairing, len(ps))
	for i, p := range ps {
		out[i] = Pairing{Team: p[0], Project: p[1]}
	}

	return out
}

func requireSuccess(t *testing.T, res Result) {
	t.Helper()
	require.True(t, res.Success, fmt.Sprintf("%s: %v", res.Message, res.Err))
}
