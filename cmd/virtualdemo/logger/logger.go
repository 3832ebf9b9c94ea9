// Package logger sends virtualdemo's logs to a dated file, for hosts that
// own the terminal.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger. It discards everything until Init enables it.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

var file *os.File

const (
	logPrefix     = "virtualdemo-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 14
)

// Options configures Init.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.virtualdemo/logs
	Level   slog.Level // Minimum level
}

// Init points L at today's log file and returns its path. With logging
// disabled it returns "" and L discards.
func Init(opts Options) (string, error) {
	Close()
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return "", nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		logDir = filepath.Join(home, ".virtualdemo", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	now := time.Now()
	cleanOldLogs(logDir, now)

	filename := filepath.Join(logDir, logPrefix+now.Format(dateLayout)+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	file = f

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return filename, nil
}

// Close closes the log file, if any. L discards afterwards.
func Close() {
	if file == nil {
		return
	}
	file.Close()
	file = nil
	L = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cleanOldLogs removes log files dated more than retentionDays before now.
// Errors are ignored.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		date, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if date.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}
