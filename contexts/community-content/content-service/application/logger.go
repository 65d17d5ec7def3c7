package application

import "log/slog"

// ResolveLogger falls back to the process default so use cases can be built
// without a logger in tests.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
