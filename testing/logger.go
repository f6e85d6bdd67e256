package testing

import (
	"testing"

	"github.com/fitforge/fitforge/types"
)

// NewTestLogger returns a logger that forwards every entry to t.Logf, so log
// output shows up next to the failing test.
func NewTestLogger(t testing.TB) types.Logger {
	return &testLogger{tb: t}
}

type testLogger struct {
	tb testing.TB
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(msg string, keysAndValues ...any) { l.log("DEBUG", msg, keysAndValues) }
func (l *testLogger) Info(msg string, keysAndValues ...any)  { l.log("INFO", msg, keysAndValues) }
func (l *testLogger) Warn(msg string, keysAndValues ...any)  { l.log("WARN", msg, keysAndValues) }
func (l *testLogger) Error(msg string, keysAndValues ...any) { l.log("ERROR", msg, keysAndValues) }

// Fatal fails the test instead of exiting the process.
func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Fatalf("FATAL: %s %v", msg, keysAndValues)
}

func (l *testLogger) log(level, msg string, keysAndValues []any) {
	l.tb.Helper()
	if len(keysAndValues) == 0 {
		l.tb.Logf("%s: %s", level, msg)
		return
	}
	l.tb.Logf("%s: %s %v", level, msg, keysAndValues)
}
