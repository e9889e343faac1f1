// Package logger provides leveled diagnostics for index construction.
//
// The mapping index logs through one process-wide logger: imports emit
// Debug lines, name remappings and misused generics emit Warn. Tests
// silence it with SetLevel(LevelNone).
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

// Log levels, in increasing severity. LevelNone suppresses all output.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the string representation of the level.
func (l Level) String() string {
	if l < LevelDebug || l >= LevelNone {
		return ""
	}
	return levelNames[l]
}

// Logger writes leveled, timestamped lines to a single destination.
type Logger struct {
	mu  sync.Mutex
	min Level
	out io.Writer
}

// New creates a logger writing to out at the given minimum level.
func New(out io.Writer, min Level) *Logger {
	return &Logger{min: min, out: out}
}

// SetLevel sets the minimum level that produces output.
func (l *Logger) SetLevel(min Level) {
	l.mu.Lock()
	l.min = min
	l.mu.Unlock()
}

// SetOutput redirects the logger to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.min {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[%s] fhirmap [%s] %s\n",
		time.Now().Format("15:04:05"), level, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

var std = New(os.Stderr, LevelInfo)

// Package-level functions forward to the process-wide logger.

// Debug logs a debug message on the process-wide logger.
func Debug(format string, args ...any) { std.Debug(format, args...) }

// Info logs an info message on the process-wide logger.
func Info(format string, args ...any) { std.Info(format, args...) }

// Warn logs a warning message on the process-wide logger.
func Warn(format string, args ...any) { std.Warn(format, args...) }

// Error logs an error message on the process-wide logger.
func Error(format string, args ...any) { std.Error(format, args...) }

// SetLevel sets the minimum level of the process-wide logger.
func SetLevel(min Level) { std.SetLevel(min) }

// SetOutput redirects the process-wide logger to w.
func SetOutput(w io.Writer) { std.SetOutput(w) }
