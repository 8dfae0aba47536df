// Package lint validates the #load graph of a FAKE build and runs the
// complete discover, extract, validate pipeline.
package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/fsxlint/internal/graph"
	"github.com/harrison/fsxlint/internal/logger"
	"github.com/harrison/fsxlint/internal/models"
)

// Referencer answers the heuristic "does this script mention this target" question.
// *scripts.TextCache implements it.
type Referencer interface {
	ReferencesTarget(path string, target models.Target) (bool, error)
}

// Validator runs the lint checks over a graph and accumulates diagnostics.
// Every diagnostic is also logged at ERROR as soon as it is found.
type Validator struct {
	graph       *graph.Graph
	refs        Referencer
	log         logger.Logger
	pedantic    bool
	exists      func(path string) bool
	diagnostics []models.Diagnostic
}

// NewValidator creates a Validator. refs is only consulted in pedantic mode.
func NewValidator(g *graph.Graph, refs Referencer, log logger.Logger, pedantic bool) *Validator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Validator{
		graph:    g,
		refs:     refs,
		log:      log,
		pedantic: pedantic,
		exists:   fileExists,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Run executes every check and returns all diagnostics found.
// Checks never stop early; an error is returned only when a script needed by
// the unreferenced-load check cannot be read.
func (v *Validator) Run() ([]models.Diagnostic, error) {
	v.CheckRedeclaredTargets()
	v.CheckDanglingLoads()
	if v.pedantic {
		if err := v.CheckUnreferencedLoads(); err != nil {
			return v.diagnostics, err
		}
	}
	v.CheckDuplicateTargets()
	return v.diagnostics, nil
}

// Diagnostics returns what has been found so far.
func (v *Validator) Diagnostics() []models.Diagnostic {
	return v.diagnostics
}

// CheckRedeclaredTargets reports a target name declared twice within one script.
func (v *Validator) CheckRedeclaredTargets() {
	for _, r := range v.graph.Redeclarations {
		v.report(models.CheckRedeclaredTarget, r.File, r.Line,
			"%q:%d redeclares %v, already declared as %v on line %d",
			v.display(r.File), r.Line, r.Target, r.First, r.FirstLine)
	}
}

// CheckDanglingLoads reports every #load whose target does not exist on disk.
func (v *Validator) CheckDanglingLoads() {
	for _, e := range v.graph.Edges {
		if v.exists(e.Source) {
			continue
		}
		v.report(models.CheckDanglingLoad, e.OriginFile, e.OriginLine,
			"%q:%d loads non-existent file %q",
			v.display(e.OriginFile), e.OriginLine, v.display(e.Source))
	}
}

// CheckUnreferencedLoads reports a #load whose destination mentions none of
// the targets the loaded script declares. Loads of scripts that declare no
// targets are assumed to be for helper code and are skipped.
func (v *Validator) CheckUnreferencedLoads() error {
	for _, e := range v.graph.Edges {
		targets := v.graph.TargetsOf(e.Source)
		if len(targets) == 0 {
			continue
		}

		referenced := false
		for _, t := range targets {
			ok, err := v.refs.ReferencesTarget(e.Destination, t)
			if err != nil {
				return fmt.Errorf("check references in %s: %w", e.Destination, err)
			}
			if ok {
				referenced = true
				break
			}
		}
		if referenced {
			continue
		}

		v.report(models.CheckUnreferencedLoad, e.OriginFile, e.OriginLine,
			"%q loads %q without referencing any targets defined therein",
			v.display(e.OriginFile), v.display(e.Source))
	}
	return nil
}

// CheckDuplicateTargets requires target names to be unique across scripts.
// Scripts are visited in discovery order; the first script to declare a name
// claims it and every later declaration of that name is reported, whatever
// its type.
func (v *Validator) CheckDuplicateTargets() {
	claims := make(map[string][]string)
	for _, file := range v.graph.Files {
		for _, d := range v.graph.Targets[file] {
			owners, claimed := claims[d.Name]
			if !claimed {
				claims[d.Name] = []string{v.display(file)}
				continue
			}
			v.report(models.CheckDuplicateTarget, file, d.Line,
				"%q defines %v but a target of the same name, %q, is also defined in: %q",
				v.display(file), d.Target, d.Name, owners)
		}
	}
}

func (v *Validator) report(check models.Check, file string, line int, template string, args ...any) {
	d := models.Diagnostic{
		Check:    check,
		File:     v.display(file),
		Line:     line,
		Template: template,
		Args:     args,
	}
	v.log.Errorf(template, args...)
	v.diagnostics = append(v.diagnostics, d)
}

// display shortens paths under the project root to root-relative form.
func (v *Validator) display(path string) string {
	rel, err := filepath.Rel(v.graph.Root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
