// Package logger provides structured diagnostics for hotfix runs.
// It uses Go's log/slog package with optional file rotation via lumberjack.
// Console progress lines are not logged here; see internal/cli.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file inside Config.LogDir.
const FileName = "hotfix.log"

// Config holds logger configuration options.
type Config struct {
	// LogDir is the directory where log files are stored.
	// If empty, no log file is written.
	LogDir string

	// Debug enables debug-level logging and mirrors entries to Console.
	Debug bool

	// JSON enables JSON output format. If false, text format is used.
	JSON bool

	// Console receives log entries when Debug is set. Defaults to os.Stderr.
	Console io.Writer
}

// Init initializes the global slog logger with the given configuration and
// returns it tagged with a fresh run_id. The returned close func releases
// the log file and must be called once the run is over.
func Init(cfg Config) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	var logFile *lumberjack.Logger
	if cfg.Debug {
		console := cfg.Console
		if console == nil {
			console = os.Stderr
		}
		writers = append(writers, console)
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return nil, nil, err
		}
		logFile = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, FileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		writers = append(writers, logFile)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	closeFn := func() error {
		if logFile == nil {
			return nil
		}
		return logFile.Close()
	}
	return logger, closeFn, nil
}

// With returns a new logger with the given attributes added to all log entries.
func With(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
