package types

// Logger is the structured logger the engine writes to.
//
// The engine logs refused mutations at Debug, solver runs, resets and loads
// at Info, config warnings and infeasible runs at Warn, and hook or store
// failures at Error. It never calls Fatal itself.
//
// A zap.SugaredLogger satisfies this interface as is; log/slog is adapted by
// fitforge.NewSlogLogger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// Fatal logs and then terminates the process. Test and no-op
	// implementations may return instead.
	Fatal(msg string, keysAndValues ...any)
}
