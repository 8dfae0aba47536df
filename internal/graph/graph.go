// Package graph assembles the #load dependency graph and target ownership
// map of a set of build scripts.
package graph

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/fsxlint/internal/logger"
	"github.com/harrison/fsxlint/internal/models"
	"github.com/harrison/fsxlint/internal/scripts"
)

// TextSource supplies script contents. *scripts.TextCache implements it.
type TextSource interface {
	Text(path string) (string, error)
}

// Redeclaration is a second declaration of a target name inside one script.
type Redeclaration struct {
	File      string
	Line      int
	Target    models.Target
	FirstLine int
	First     models.Target
}

// Graph is the result of extracting every discovered script.
type Graph struct {
	// Root is the absolute project root all paths are anchored at
	Root string
	// Files lists the scripts in discovery order
	Files []string
	// Edges holds one entry per #load directive, grouped by file in discovery order
	Edges []models.LoadEdge
	// Targets maps each script to its declarations in line order.
	// Names are unique within one script.
	Targets map[string][]models.Declaration
	// Redeclarations lists names declared more than once within one script
	Redeclarations []Redeclaration
}

// TargetsOf returns the targets declared by file, or nil.
func (g *Graph) TargetsOf(file string) []models.Target {
	decls := g.Targets[file]
	if len(decls) == 0 {
		return nil
	}
	out := make([]models.Target, len(decls))
	for i, d := range decls {
		out[i] = d.Target
	}
	return out
}

// Options configures Build.
type Options struct {
	// Workers bounds concurrent extraction (<= 0 uses GOMAXPROCS)
	Workers int
	// Logger receives debug output for every edge and declaration
	Logger logger.Logger
}

type fileResult struct {
	edges   []models.LoadEdge
	decls   []models.Declaration
	redecls []Redeclaration
}

// Build reads every file through src and extracts its #load edges and
// target declarations. Files are processed concurrently; results are merged
// in discovery order once all workers finish, so the output does not depend
// on scheduling. Any read error aborts the build.
func Build(ctx context.Context, root string, files []string, src TextSource, opts Options) (*Graph, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := src.Text(file)
			if err != nil {
				return err
			}
			results[i] = extractFile(root, file, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract scripts: %w", err)
	}

	graph := &Graph{
		Root:    root,
		Files:   files,
		Edges:   make([]models.LoadEdge, 0),
		Targets: make(map[string][]models.Declaration, len(files)),
	}
	for i, file := range files {
		res := results[i]
		for _, e := range res.edges {
			log.Debugf("%q is #loaded by %q", e.Source, e.Destination)
		}
		for _, d := range res.decls {
			log.Debugf("%q:%d declares %v", file, d.Line, d.Target)
		}
		graph.Edges = append(graph.Edges, res.edges...)
		if len(res.decls) > 0 {
			graph.Targets[file] = res.decls
		}
		graph.Redeclarations = append(graph.Redeclarations, res.redecls...)
	}

	return graph, nil
}

// extractFile runs both scans over one script.
func extractFile(root, file, text string) fileResult {
	var res fileResult
	originDir := scripts.ParentDir(file)

	for line, ref := range scripts.LoadDirectives(text) {
		res.edges = append(res.edges, models.LoadEdge{
			Source:      scripts.NormalizePath(ref, originDir, root),
			Destination: file,
			OriginFile:  file,
			OriginLine:  line,
		})
	}

	seen := make(map[string]models.Declaration)
	for line, target := range scripts.TargetDeclarations(text) {
		if first, ok := seen[target.Name]; ok {
			res.redecls = append(res.redecls, Redeclaration{
				File:      file,
				Line:      line,
				Target:    target,
				FirstLine: first.Line,
				First:     first.Target,
			})
			continue
		}
		decl := models.Declaration{Target: target, Line: line}
		seen[target.Name] = decl
		res.decls = append(res.decls, decl)
	}

	return res
}
