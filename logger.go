package virtual

import (
	"log/slog"
	"os"
)

// logLevel controls the level for engine debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// logger is shared by the engine and the backends.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose returns true if debug logging is enabled.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// Logger returns the package logger so backends log through the same handler.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the package logger.
// Hosts that own stderr (terminal UIs) redirect logging with this.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger = l
}
