package grid

import (
	"log/slog"
	"os"
)

// gridLogLevel controls the log level for grid debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var gridLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for all grids.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		gridLogLevel.Set(slog.LevelDebug)
	} else {
		gridLogLevel.Set(slog.LevelInfo)
	}
}

// gridVerbose returns true if grid debug logging is enabled.
func gridVerbose() bool {
	return gridLogLevel.Level() <= slog.LevelDebug
}

// gridLogger is the package logger. Grids created WithLogger use their own.
var gridLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: gridLogLevel}))

// SetLogger replaces the package logger, e.g. to route output to a file
// when stderr belongs to a terminal UI.
func SetLogger(l *slog.Logger) {
	if l != nil {
		gridLogger = l
	}
}

// NewFileLogger opens path for appending and returns a text logger honouring
// the package verbosity. The caller closes the returned file.
func NewFileLogger(path string) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: gridLogLevel})), f, nil
}
