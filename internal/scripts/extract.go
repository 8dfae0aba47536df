package scripts

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/harrison/fsxlint/internal/models"
)

// activateFinalTarget looks like a declaration but acts on a FinalTarget
// declared elsewhere.
const activateFinalTarget = "ActivateFinalTarget"

var (
	loadPattern   = regexp.MustCompile(`[ \t]*#load[ \t]+"([^"\r\n]+)"`)
	targetPattern = regexp.MustCompile(`([\w]*Target)[ \t]+"([^"\r\n]+)"`)
)

// matchingLines yields the 1-indexed line number and capture groups of every
// line in text that re matches.
func matchingLines(re *regexp.Regexp, text string) iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		n := 0
		for line := range strings.Lines(text) {
			n++
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if !yield(n, m[1:]) {
				return
			}
		}
	}
}

// mustGroups panics when a match captured a different number of groups than
// the pattern is written to produce. Extraction results cannot be trusted
// past that point.
func mustGroups(re *regexp.Regexp, line int, groups []string, want int) {
	if len(groups) != want {
		panic(fmt.Sprintf("scripts: pattern contract violated: %s matched %d groups on line %d, want %d",
			re, len(groups), line, want))
	}
}

// LoadDirectives yields the line number and raw path of every #load
// directive in text, in line order. At most one directive per line is
// recognized.
func LoadDirectives(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for line, groups := range matchingLines(loadPattern, text) {
			mustGroups(loadPattern, line, groups, 1)
			if !yield(line, groups[0]) {
				return
			}
		}
	}
}

// TargetDeclarations yields the line number and target of every declaration
// of the form `<prefix>Target "name"` in text, in line order.
// ActivateFinalTarget lines are skipped.
func TargetDeclarations(text string) iter.Seq2[int, models.Target] {
	return func(yield func(int, models.Target) bool) {
		for line, groups := range matchingLines(targetPattern, text) {
			mustGroups(targetPattern, line, groups, 2)
			target := models.Target{Type: groups[0], Name: groups[1]}
			if target.Type == activateFinalTarget {
				continue
			}
			if !yield(line, target) {
				return
			}
		}
	}
}

// ContainsName reports whether name appears as a substring of any line of text.
func ContainsName(text, name string) bool {
	for line := range strings.Lines(text) {
		if strings.Contains(line, name) {
			return true
		}
	}
	return false
}
