package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// FileName is the log file inside the log directory
	FileName = "keycap.log"

	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options configure the process logger
type Options struct {
	Dir     string // Directory for the rotated log file; empty logs to stderr
	Level   string // debug, info, warn or error
	Version string
}

// Init installs the default slog logger and returns a function closing its sink.
// The TUI owns the terminal, so the file sink is the normal case.
func Init(opts Options) (func() error, error) {
	var (
		writer  io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, FileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		writer = rotator
		closeFn = rotator.Close
	}

	logger := New(writer, opts.Level).With(slog.String("version", opts.Version))
	slog.SetDefault(logger)
	return closeFn, nil
}

// New builds a text logger writing to w
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Nop returns a logger that discards everything
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ParseLevel maps a settings value to a slog level, defaulting to info
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
