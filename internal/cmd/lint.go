package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/fsxlint/internal/config"
	"github.com/harrison/fsxlint/internal/history"
	"github.com/harrison/fsxlint/internal/lint"
	"github.com/harrison/fsxlint/internal/logger"
	"github.com/harrison/fsxlint/internal/report"
)

// lintFlags holds the root command's flag values.
type lintFlags struct {
	configPath   string
	logLevel     string
	pedantic     bool
	workers      int
	logDir       string
	reportPath   string
	reportFormat string
	record       bool
}

func (f *lintFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "Path to config file (default: <root>/"+config.FileName+")")
	fs.StringVar(&f.logLevel, "log-level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR, CRITICAL")
	fs.BoolVar(&f.pedantic, "pedantic", false, "Complain about more things (#loads whose targets are never referenced)")
	fs.IntVar(&f.workers, "workers", 0, "Concurrent script readers (0 = number of CPUs)")
	fs.StringVar(&f.logDir, "log-dir", "", "Also write a per-run log file to this directory")
	fs.StringVar(&f.reportPath, "report", "", "Write a report of all diagnostics to this file")
	fs.StringVar(&f.reportFormat, "report-format", "", "Report format: text, json, yaml, markdown, html")
	fs.BoolVar(&f.record, "record", false, "Record this run in the history database")
}

// overrides returns the flags explicitly set on the command line.
func (f *lintFlags) overrides(cmd *cobra.Command) config.Flags {
	var out config.Flags
	changed := cmd.Flags().Changed
	if changed("log-level") {
		out.LogLevel = &f.logLevel
	}
	if changed("pedantic") {
		out.Pedantic = &f.pedantic
	}
	if changed("workers") {
		out.Workers = &f.workers
	}
	if changed("log-dir") {
		out.LogDir = &f.logDir
	}
	if changed("report") {
		out.ReportPath = &f.reportPath
	}
	if changed("report-format") {
		out.ReportFormat = &f.reportFormat
	}
	if changed("record") {
		out.Record = &f.record
	}
	return out
}

// loadConfig reads the config for root, honoring --config, and applies flag overrides.
func loadConfig(cmd *cobra.Command, root string, f *lintFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		if _, statErr := os.Stat(f.configPath); statErr != nil {
			return nil, fmt.Errorf("config file: %w", statErr)
		}
		cfg, err = config.LoadConfig(f.configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, err
	}

	cfg.MergeWithFlags(f.overrides(cmd))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runLint executes one lint run and maps its outcome to an exit code.
func runLint(cmd *cobra.Command, root string, f *lintFlags) error {
	cfg, err := loadConfig(cmd, root, f)
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root %s: %w", root, err)
	}

	level, _ := cfg.Level()
	runID := uuid.NewString()

	var log logger.Logger = logger.NewConsoleLogger(cmd.ErrOrStderr(), level, cfg.Timestamps)
	if dir := cfg.LogDirPath(absRoot); dir != "" {
		fileLog, err := logger.NewFileLogger(dir, level, runID)
		if err != nil {
			return err
		}
		defer fileLog.Close()
		log = logger.MultiLogger{log, fileLog}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := lint.Run(ctx, lint.Options{
		RunID:             runID,
		Root:              root,
		Pattern:           cfg.ScriptPattern,
		ExcludeDirPattern: cfg.ExcludeDirPattern,
		Pedantic:          cfg.Pedantic,
		Workers:           cfg.Workers,
	}, log)
	if err != nil {
		log.Criticalf("%v", err)
		return &ExitError{Code: 1, Err: err, Quiet: true}
	}

	if result.Failed() {
		log.Errorf("%s", result.Summary())
	} else {
		log.Infof("%s", result.Summary())
	}

	if cfg.Report.Path != "" {
		if err := report.WriteFile(cfg.Report.Path, cfg.Report.Format, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Infof("wrote %s report to %q", cfg.Report.Format, cfg.Report.Path)
	}

	if cfg.History.Enabled {
		if err := recordRun(ctx, cfg.HistoryDBPath(absRoot), result); err != nil {
			return err
		}
		log.Debugf("recorded run %s", result.RunID)
	}

	if result.Failed() {
		return &ExitError{Code: 1, Err: lint.ErrLintFailed, Quiet: true}
	}
	return nil
}

func recordRun(ctx context.Context, dbPath string, result *lint.Result) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(ctx, result); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
