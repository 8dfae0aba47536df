package scripts

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/harrison/fsxlint/internal/models"
)

// DefaultCacheSize is the number of script texts kept in memory.
const DefaultCacheSize = 4096

// TextCache reads script files and keeps recently used contents in an LRU.
// It is safe for concurrent use.
type TextCache struct {
	texts *lru.Cache[string, string]
}

// NewTextCache creates a TextCache holding at most size scripts.
// A size <= 0 uses DefaultCacheSize.
func NewTextCache(size int) (*TextCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	texts, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create script cache: %w", err)
	}
	return &TextCache{texts: texts}, nil
}

// Text returns the contents of the script at path.
func (c *TextCache) Text(path string) (string, error) {
	if text, ok := c.texts.Get(path); ok {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script %s: %w", path, err)
	}
	text := string(data)
	c.texts.Add(path, text)
	return text, nil
}

// ReferencesTarget reports whether the name of target appears anywhere in the
// script at path. Comments and string literals count; this is a heuristic,
// not a resolution of real uses.
func (c *TextCache) ReferencesTarget(path string, target models.Target) (bool, error) {
	text, err := c.Text(path)
	if err != nil {
		return false, err
	}
	return ContainsName(text, target.Name), nil
}

// Len returns the number of cached scripts.
func (c *TextCache) Len() int {
	return c.texts.Len()
}
