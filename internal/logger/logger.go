// Package logger is the process-wide structured logger.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log records go.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"` // "text" or "json"
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig logs INFO and above as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/dungeonplot.log",
		FileFormat:     "json",
		FileMaxSizeMB:  10,
		FileMaxBackups: 3,
		FileMaxAgeDays: 28,
	}
}

var (
	current *slog.Logger
	logFile io.Closer
)

// console is where the console handler writes. Stdout carries generated maps.
var console io.Writer = os.Stderr

// Initialize replaces the process logger. With neither output enabled,
// records still go to the console so failures are never silent.
func Initialize(cfg Config) error {
	if err := Close(); err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var out fanout

	if cfg.ConsoleEnabled {
		out = append(out, handlerFor(console, cfg.ConsoleFormat, opts))
	}
	if cfg.FileEnabled {
		if cfg.FilePath == "" {
			return errors.New("logger: file output enabled without a file path")
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.FileMaxSizeMB,
			MaxBackups: cfg.FileMaxBackups,
			MaxAge:     cfg.FileMaxAgeDays,
		}
		logFile = rotating
		out = append(out, handlerFor(rotating, cfg.FileFormat, opts))
	}
	if len(out) == 0 {
		out = append(out, slog.NewTextHandler(console, opts))
	}

	if len(out) == 1 {
		current = slog.New(out[0])
	} else {
		current = slog.New(out)
	}
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func handlerFor(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func emit(level slog.Level, msg string, args []any) {
	if current != nil {
		current.Log(context.Background(), level, msg, args...)
	}
}

// Debug logs at debug level with key/value pairs.
func Debug(msg string, args ...any) { emit(slog.LevelDebug, msg, args) }

// Info logs at info level with key/value pairs.
func Info(msg string, args ...any) { emit(slog.LevelInfo, msg, args) }

// Warning logs at warn level with key/value pairs.
func Warning(msg string, args ...any) { emit(slog.LevelWarn, msg, args) }

// Error logs at error level with key/value pairs.
func Error(msg string, args ...any) { emit(slog.LevelError, msg, args) }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(wrap func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = wrap(h)
	}
	return out
}
