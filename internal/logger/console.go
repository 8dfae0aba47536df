package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// ConsoleLogger writes "[LEVEL] message" lines to a writer.
// Messages below the configured level are dropped. It is safe for concurrent use.
// Color output is enabled automatically for os.Stdout/os.Stderr when they are terminals.
type ConsoleLogger struct {
	writer      io.Writer
	level       Level
	timestamps  bool
	colorOutput bool
	mutex       sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards everything.
// When timestamps is set, lines are prefixed with [HH:MM:SS].
func NewConsoleLogger(writer io.Writer, level Level, timestamps bool) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       level,
		timestamps:  timestamps,
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a standard stream that supports colors.
// fatih/color already honors NO_COLOR and non-TTY output.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// Enabled reports whether messages at level are written.
func (cl *ConsoleLogger) Enabled(level Level) bool {
	return cl.writer != nil && level >= cl.level
}

// Debugf logs at DEBUG.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(LevelDebug, format, args...)
}

// Infof logs at INFO.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(LevelInfo, format, args...)
}

// Warnf logs at WARN.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(LevelWarn, format, args...)
}

// Errorf logs at ERROR.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(LevelError, format, args...)
}

// Criticalf logs at CRITICAL.
func (cl *ConsoleLogger) Criticalf(format string, args ...any) {
	cl.logf(LevelCritical, format, args...)
}

func (cl *ConsoleLogger) logf(level Level, format string, args ...any) {
	if !cl.Enabled(level) {
		return
	}

	message := fmt.Sprintf(format, args...)
	name := level.String()
	if cl.colorOutput {
		name = levelColor(level).Sprint(name)
	}

	var line string
	if cl.timestamps {
		line = fmt.Sprintf("[%s] [%s] %s\n", timestamp(), name, message)
	} else {
		line = fmt.Sprintf("[%s] %s\n", name, message)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.writer.Write([]byte(line))
}

func levelColor(level Level) *color.Color {
	switch level {
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelInfo:
		return color.New(color.FgBlue)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}
