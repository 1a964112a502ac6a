package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Field is one structured key/value attached to a log line.
type Field = slog.Attr

// Str returns a string field.
func Str(key, value string) Field { return slog.String(key, value) }

// Int returns an integer field.
func Int(key string, value int) Field { return slog.Int(key, value) }

// Dur returns a duration field.
func Dur(key string, value time.Duration) Field { return slog.Duration(key, value) }

// Err returns an error field under the conventional "err" key.
func Err(err error) Field { return slog.Any("err", err) }

// Component tags lines with the subsystem that emitted them.
func Component(name string) Field { return slog.String("component", name) }

// Logger is the leveled structured logging surface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a logger that attaches the fields to every line.
	With(fields ...Field) Logger
}

// Options configures a new Logger.
type Options struct {
	// Level is the minimum severity emitted. Defaults to InfoLevel.
	Level Level
	// Format selects text (default) or JSON lines.
	Format Format
	// Output defaults to stderr.
	Output io.Writer
}

type logger struct {
	s *slog.Logger
}

// New builds a Logger from options.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: toSlogLevel(opts.Level)}
	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(out, ho)
	} else {
		h = slog.NewTextHandler(out, ho)
	}
	return logger{s: slog.New(h)}
}

// FromEnv builds a Logger from YARQ_LOG_LEVEL and YARQ_LOG_FORMAT.
func FromEnv() Logger {
	level, err := ParseLevel(os.Getenv("YARQ_LOG_LEVEL"))
	if err != nil {
		level = InfoLevel
	}
	format := FormatText
	if strings.EqualFold(os.Getenv("YARQ_LOG_FORMAT"), "json") {
		format = FormatJSON
	}
	return New(Options{Level: level, Format: format})
}

func (l logger) Debug(msg string, fields ...Field) { l.s.LogAttrs(context.Background(), slog.LevelDebug, msg, fields...) }
func (l logger) Info(msg string, fields ...Field)  { l.s.LogAttrs(context.Background(), slog.LevelInfo, msg, fields...) }
func (l logger) Warn(msg string, fields ...Field)  { l.s.LogAttrs(context.Background(), slog.LevelWarn, msg, fields...) }
func (l logger) Error(msg string, fields ...Field) { l.s.LogAttrs(context.Background(), slog.LevelError, msg, fields...) }

func (l logger) With(fields ...Field) Logger {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return logger{s: l.s.With(args...)}
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
