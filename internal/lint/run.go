package lint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/fsxlint/internal/discovery"
	"github.com/harrison/fsxlint/internal/graph"
	"github.com/harrison/fsxlint/internal/logger"
	"github.com/harrison/fsxlint/internal/models"
	"github.com/harrison/fsxlint/internal/scripts"
)

// ErrLintFailed is returned by callers that turn a failed Result into an error.
var ErrLintFailed = errors.New("build scripts have lint errors")

// Options configures a lint run.
type Options struct {
	// RunID identifies the run in logs and history; generated when empty
	RunID string
	// Root is the project root
	Root string
	// Pattern selects script files by base name
	Pattern string
	// ExcludeDirPattern prunes directories by base name
	ExcludeDirPattern string
	// Pedantic enables the unreferenced-load check
	Pedantic bool
	// Workers bounds concurrent extraction
	Workers int
	// CacheSize bounds the number of script texts held in memory
	CacheSize int
}

// Result summarizes one lint run.
type Result struct {
	RunID       string
	Root        string
	Pedantic    bool
	StartedAt   time.Time
	Duration    time.Duration
	Files       []string
	Edges       int
	Targets     int
	Diagnostics []models.Diagnostic
}

// Failed reports whether the run produced any diagnostics.
func (r *Result) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Summary returns the one-line outcome of the run.
func (r *Result) Summary() string {
	n := len(r.Diagnostics)
	if n == 0 {
		return fmt.Sprintf("no errors found in %d build script%s", len(r.Files), plural(len(r.Files)))
	}
	return fmt.Sprintf("found %d error%s in build scripts", n, plural(n))
}

// CountByCheck tallies diagnostics per check.
func (r *Result) CountByCheck() map[models.Check]int {
	counts := make(map[models.Check]int)
	for _, d := range r.Diagnostics {
		counts[d.Check]++
	}
	return counts
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Run discovers the scripts under opts.Root, builds their graph and
// validates it. Diagnostics are logged through log as they are found.
// A returned error means the run could not complete; lint findings are
// reported only through Result.Diagnostics.
func Run(ctx context.Context, opts Options, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Root == "" {
		opts.Root = "."
	}

	started := time.Now()
	log.Infof("root path is %q", opts.Root)

	found, err := discovery.Scan(opts.Root, discovery.Options{
		Pattern:           opts.Pattern,
		ExcludeDirPattern: opts.ExcludeDirPattern,
	})
	if err != nil {
		return nil, err
	}
	for _, dir := range found.SkippedDirs {
		log.Debugf("skipping directory %q", dir)
	}
	log.Debugf("found %d build scripts", len(found.Files))

	cache, err := scripts.NewTextCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(ctx, found.Root, found.Files, cache, graph.Options{
		Workers: opts.Workers,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	v := NewValidator(g, cache, log, opts.Pedantic)
	diagnostics, err := v.Run()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       opts.RunID,
		Root:        found.Root,
		Pedantic:    opts.Pedantic,
		StartedAt:   started,
		Duration:    time.Since(started),
		Files:       make([]string, 0, len(g.Files)),
		Edges:       len(g.Edges),
		Diagnostics: diagnostics,
	}
	for _, f := range g.Files {
		result.Files = append(result.Files, v.display(f))
		result.Targets += len(g.Targets[f])
	}

	return result, nil
}
