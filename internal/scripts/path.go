package scripts

import "path/filepath"

// NormalizePath resolves ref, as written inside a #load directive of a script
// living in originDir, to a cleaned absolute path anchored at root.
//
// Relative references resolve against originDir. Absolute references are kept.
// The result is re-expressed relative to root and joined back onto it, so two
// spellings of the same file yield identical strings. The filesystem is never
// consulted.
func NormalizePath(ref, originDir, root string) string {
	p := ref
	if !filepath.IsAbs(p) {
		p = absPath(filepath.Join(originDir, p))
	}

	root = absPath(root)
	rel, err := filepath.Rel(root, p)
	if err != nil {
		// Different volume; nothing to anchor against.
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, rel))
}

// ParentDir returns the cleaned absolute directory containing path.
func ParentDir(path string) string {
	return absPath(filepath.Dir(path))
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
