// Package logger provides the leveled log sinks used by fsxlint.
//
// A Logger value is built once at process start from the configured level
// and passed explicitly to every component that reports progress or
// diagnostics. There is no package-level logger.
package logger

import (
	"fmt"
	"strings"
)

// Level is a log severity. Higher values are more severe.
type Level int

// Log levels, least to most severe
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarn:     "WARN",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name (case-insensitive) to a Level.
// "warning" and "fatal" are accepted as aliases of warn and critical.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q, must be one of: DEBUG, INFO, WARN, ERROR, CRITICAL", s)
	}
}

// Logger is the sink for progress messages and diagnostics.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
	Enabled(level Level) bool
}
