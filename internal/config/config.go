package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/harrison/fsxlint/internal/discovery"
	"github.com/harrison/fsxlint/internal/logger"
)

// FileName is the per-project configuration file, looked up in the lint root.
const FileName = ".fsxlint.yaml"

// Report formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ReportConfig controls the optional report file.
type ReportConfig struct {
	// Path is where the report is written; empty disables the report
	Path string `yaml:"path"`

	// Format is one of text, json, yaml, markdown, html
	Format string `yaml:"format"`
}

// HistoryConfig controls run recording.
type HistoryConfig struct {
	// Enabled records every run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database path, relative to the lint root unless absolute
	DBPath string `yaml:"db_path"`
}

// Config represents fsxlint configuration options
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error, critical)
	LogLevel string `yaml:"log_level"`

	// Pedantic enables the unreferenced-load check
	Pedantic bool `yaml:"pedantic"`

	// ScriptPattern is the glob selecting build scripts by base name
	ScriptPattern string `yaml:"script_pattern"`

	// ExcludeDirPattern is the glob pruning directories by base name
	ExcludeDirPattern string `yaml:"exclude_dir_pattern"`

	// Workers bounds concurrent extraction (0 = GOMAXPROCS)
	Workers int `yaml:"workers"`

	// Timestamps prefixes console lines with [HH:MM:SS]
	Timestamps bool `yaml:"timestamps"`

	// LogDir enables per-run log files when non-empty
	LogDir string `yaml:"log_dir"`

	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		Pedantic:          false,
		ScriptPattern:     discovery.DefaultPattern,
		ExcludeDirPattern: discovery.DefaultExcludeDirPattern,
		Workers:           0,
		Report: ReportConfig{
			Format: FormatText,
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join(".fsxlint", "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
// Keys present in the file override defaults, including explicit zero values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoding onto the defaults only touches keys present in the document.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .fsxlint.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// Flags holds CLI overrides. Nil fields were not set on the command line.
type Flags struct {
	LogLevel     *string
	Pedantic     *bool
	Workers      *int
	LogDir       *string
	ReportPath   *string
	ReportFormat *string
	Record       *bool
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(f Flags) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.Pedantic != nil {
		c.Pedantic = *f.Pedantic
	}
	if f.Workers != nil {
		c.Workers = *f.Workers
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.ReportPath != nil {
		c.Report.Path = *f.ReportPath
	}
	if f.ReportFormat != nil {
		c.Report.Format = *f.ReportFormat
	}
	if f.Record != nil {
		c.History.Enabled = *f.Record
	}
}

// Level returns the parsed log level.
func (c *Config) Level() (logger.Level, error) {
	return logger.ParseLevel(c.LogLevel)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	if c.ScriptPattern == "" || !doublestar.ValidatePattern(c.ScriptPattern) {
		return fmt.Errorf("invalid script_pattern %q", c.ScriptPattern)
	}
	if c.ExcludeDirPattern != "" && !doublestar.ValidatePattern(c.ExcludeDirPattern) {
		return fmt.Errorf("invalid exclude_dir_pattern %q", c.ExcludeDirPattern)
	}

	switch strings.ToLower(c.Report.Format) {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML:
	default:
		return fmt.Errorf("invalid report.format %q, must be one of: text, json, yaml, markdown, html", c.Report.Format)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
