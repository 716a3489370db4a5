package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// Options configures a writer-backed logger.
type Options struct {
	Min       Level
	Component string
	Color     bool
}

type writerLogger struct {
	mu        *sync.Mutex
	w         io.Writer
	min       Level
	component string
	tags      map[Level]*color.Color
}

// New returns a logger writing one line per entry to w.
func New(w io.Writer, opts Options) Logger {
	if w == nil {
		return Nop()
	}
	tags := map[Level]*color.Color{
		LevelDebug: color.New(color.FgCyan),
		LevelInfo:  color.New(color.FgGreen),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}
	for _, c := range tags {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &writerLogger{
		mu:        &sync.Mutex{},
		w:         w,
		min:       opts.Min,
		component: strings.TrimSpace(opts.Component),
		tags:      tags,
	}
}

// With returns a logger scoped to component. Non writer-backed loggers are
// returned unchanged.
func With(logger Logger, component string) Logger {
	wl, ok := logger.(*writerLogger)
	if !ok {
		return OrNop(logger)
	}
	scoped := *wl
	scoped.component = strings.TrimSpace(component)
	return &scoped
}

func (l *writerLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *writerLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *writerLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *writerLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

func (l *writerLogger) log(level Level, format string, args ...any) {
	if level < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	tag := l.tags[level].Sprint(level.String())

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.component != "" {
		fmt.Fprintf(l.w, "%s [%s] %s\n", tag, l.component, msg)
		return
	}
	fmt.Fprintf(l.w, "%s %s\n", tag, msg)
}
