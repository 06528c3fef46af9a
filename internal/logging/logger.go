// Package logging provides the component loggers used across the
// application. Output is plain text, one line per entry, suitable for both
// the console and the session log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log entry.
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
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "?"
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return LevelDebug
	case "WARN", "warn":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	defaultMu  sync.Mutex
	defaultMin = LevelInfo
)

// SetDefaultLevel sets the threshold applied to loggers created afterwards.
func SetDefaultLevel(min Level) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMin = min
}

// Logger writes leveled, component-tagged log lines.
type Logger struct {
	component string

	mu   sync.Mutex
	min  Level
	outs []io.Writer
}

// New creates a logger for a component, writing to stdout at the default
// level.
func New(component string) *Logger {
	defaultMu.Lock()
	min := defaultMin
	defaultMu.Unlock()
	return &Logger{
		component: component,
		min:       min,
		outs:      []io.Writer{os.Stdout},
	}
}

// SetMinLevel raises or lowers the emission threshold.
func (l *Logger) SetMinLevel(min Level) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.min = min
	return l
}

// AddOutput duplicates log lines to an additional writer.
func (l *Logger) AddOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outs = append(l.outs, w)
	return l
}

func (l *Logger) emit(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.min {
		return
	}
	line := fmt.Sprintf("[%s] %-5s [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		level, l.component, fmt.Sprintf(format, args...))
	for _, w := range l.outs {
		io.WriteString(w, line)
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.emit(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.emit(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.emit(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.emit(LevelError, format, args...) }
