package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger appends log lines to a per-run file in a log directory and keeps
// a latest.log symlink pointing at the newest run. It is safe for concurrent use.
type FileLogger struct {
	logDir  string
	runFile string
	runLog  *os.File
	level   Level
	mu      sync.Mutex
}

// NewFileLogger creates logDir if needed and opens run-YYYYMMDD-HHMMSS.log
// inside it. runID is written into the header so the file can be matched to
// a recorded history entry.
func NewFileLogger(logDir string, level Level, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", now.Format("20060102-150405")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:  logDir,
		runFile: runFile,
		runLog:  file,
		level:   level,
	}
	fl.write(fmt.Sprintf("=== fsxlint run %s ===\nStarted at: %s\n\n", runID, now.Format(time.RFC3339)))

	return fl, nil
}

// Path returns the path of the current run log.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// Enabled reports whether messages at level are written.
func (fl *FileLogger) Enabled(level Level) bool {
	return level >= fl.level
}

// Debugf logs at DEBUG.
func (fl *FileLogger) Debugf(format string, args ...any) { fl.logf(LevelDebug, format, args...) }

// Infof logs at INFO.
func (fl *FileLogger) Infof(format string, args ...any) { fl.logf(LevelInfo, format, args...) }

// Warnf logs at WARN.
func (fl *FileLogger) Warnf(format string, args ...any) { fl.logf(LevelWarn, format, args...) }

// Errorf logs at ERROR.
func (fl *FileLogger) Errorf(format string, args ...any) { fl.logf(LevelError, format, args...) }

// Criticalf logs at CRITICAL.
func (fl *FileLogger) Criticalf(format string, args ...any) { fl.logf(LevelCritical, format, args...) }

func (fl *FileLogger) logf(level Level, format string, args ...any) {
	if !fl.Enabled(level) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, fmt.Sprintf(format, args...)))
}

func (fl *FileLogger) write(s string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.runLog == nil {
		return
	}
	fl.runLog.WriteString(s)
}

// Close flushes and closes the run log.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}
