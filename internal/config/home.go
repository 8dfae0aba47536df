package config

import (
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that relocates fsxlint state
// (history database, run logs) away from the lint root.
const HomeEnv = "FSXLINT_HOME"

// StatePath resolves a configured state path. Absolute paths are kept.
// Relative paths resolve against $FSXLINT_HOME when it is set, otherwise
// against root.
func StatePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, path)
	}
	return filepath.Join(root, path)
}

// HistoryDBPath returns where run history is stored for root.
func (c *Config) HistoryDBPath(root string) string {
	return StatePath(root, c.History.DBPath)
}

// LogDirPath returns the run log directory for root, or "" when file logging is off.
func (c *Config) LogDirPath(root string) string {
	return StatePath(root, c.LogDir)
}
