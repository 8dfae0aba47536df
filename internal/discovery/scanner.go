// Package discovery finds the build scripts beneath a project root.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Default patterns match FAKE scripts and skip hidden directories.
const (
	DefaultPattern           = "*.fsx"
	DefaultExcludeDirPattern = ".*"
)

// Options configures the directory walk.
type Options struct {
	// Pattern is a glob matched against each file's base name
	Pattern string
	// ExcludeDirPattern is a glob matched against each sub-directory's base name;
	// matching directories are not descended into. Empty disables exclusion.
	ExcludeDirPattern string
}

// Result contains the scripts found by Scan.
type Result struct {
	// Root is the absolute, cleaned root that was scanned
	Root string
	// Files holds absolute paths in discovery order (lexical walk order)
	Files []string
	// SkippedDirs holds the directories pruned by ExcludeDirPattern
	SkippedDirs []string
}

// Scan walks root and returns every file whose base name matches opts.Pattern.
// The root directory itself is never excluded. Any walk error aborts the scan.
func Scan(root string, opts Options) (*Result, error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid script pattern %q", opts.Pattern)
	}
	if opts.ExcludeDirPattern != "" && !doublestar.ValidatePattern(opts.ExcludeDirPattern) {
		return nil, fmt.Errorf("invalid exclude pattern %q", opts.ExcludeDirPattern)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", absRoot)
	}

	result := &Result{
		Root:  absRoot,
		Files: make([]string, 0),
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && opts.ExcludeDirPattern != "" && matches(opts.ExcludeDirPattern, d.Name()) {
				result.SkippedDirs = append(result.SkippedDirs, path)
				return filepath.SkipDir
			}
			return nil
		}

		if matches(opts.Pattern, d.Name()) {
			result.Files = append(result.Files, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	return result, nil
}

// matches never fails: patterns are validated before the walk.
func matches(pattern, name string) bool {
	ok, _ := doublestar.Match(pattern, name)
	return ok
}
