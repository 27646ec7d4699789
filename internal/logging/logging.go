// Package logging sets up structured logging to a rotating file. The
// terminal belongs to the UI, so nothing here ever writes to stdout.
package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Anything else is info.
	Level string

	// File is the log file path. Empty means discard.
	File string

	// MaxSizeMB rotates the file at this size (default 10)
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept (default 3)
	MaxBackups int

	// Mirror, if set, receives every record that passes the level filter.
	// The tview host uses it to feed its on-screen log panel.
	Mirror func(level slog.Level, msg string)
}

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time

	closer io.Closer
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New creates a JSON logger writing to a lumberjack-rotated file.
func New(opts Options) *Logger {
	var w io.Writer = io.Discard
	var closer io.Closer
	file := ""

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		if lj.MaxSize <= 0 {
			lj.MaxSize = 10 // MB
		}
		if lj.MaxBackups <= 0 {
			lj.MaxBackups = 3
		}
		w, closer = lj, lj
		file, _ = filepath.Abs(opts.File)
	}

	l := NewWithWriter(w, opts.Level, opts.Mirror)
	l.LogFile = file
	l.closer = closer

	l.Info("Hello logging", slog.Time("start", l.Start))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	return l
}

// NewWithWriter creates a JSON logger on an arbitrary writer.
func NewWithWriter(w io.Writer, level string, mirror func(slog.Level, string)) *Logger {
	lvl, ok := ParseLevel(level)

	var h slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	if mirror != nil {
		h = &mirrorHandler{Handler: h, fn: mirror}
	}

	l := &Logger{
		Logger: slog.New(h),
		Start:  time.Now(),
	}
	if !ok {
		l.Warn("invalid log level, using info", slog.String("level", level))
	}
	return l
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// The logging methods accept a nil *Logger, in which case the message is
// dropped.

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l != nil {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l != nil {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
		closer:  l.closer,
	}
}

// mirrorHandler passes records on and also reports them to fn.
type mirrorHandler struct {
	slog.Handler
	fn func(slog.Level, string)
}

func (h *mirrorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.fn(r.Level, r.Message)
	return h.Handler.Handle(ctx, r)
}

func (h *mirrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &mirrorHandler{Handler: h.Handler.WithAttrs(attrs), fn: h.fn}
}

func (h *mirrorHandler) WithGroup(name string) slog.Handler {
	return &mirrorHandler{Handler: h.Handler.WithGroup(name), fn: h.fn}
}
