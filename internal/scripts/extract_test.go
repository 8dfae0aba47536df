package scripts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fsxlint/internal/models"
)

type loadHit struct {
	line int
	path string
}

func collectLoads(text string) []loadHit {
	var hits []loadHit
	for line, path := range LoadDirectives(text) {
		hits = append(hits, loadHit{line, path})
	}
	return hits
}

type targetHit struct {
	line   int
	target models.Target
}

func collectTargets(text string) []targetHit {
	var hits []targetHit
	for line, target := range TargetDeclarations(text) {
		hits = append(hits, targetHit{line, target})
	}
	return hits
}

func TestLoadDirectives(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []loadHit
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "single directive",
			text: `#load "B.fsx"`,
			want: []loadHit{{1, "B.fsx"}},
		},
		{
			name: "leading whitespace and tabs",
			text: "// header\n  \t#load\t\"../shared/common.fsx\"\n",
			want: []loadHit{{2, "../shared/common.fsx"}},
		},
		{
			name: "line numbers are one-indexed and ordered",
			text: "#load \"a.fsx\"\nlet x = 1\n#load \"b.fsx\"\r\n#load \"c.fsx\"",
			want: []loadHit{{1, "a.fsx"}, {3, "b.fsx"}, {4, "c.fsx"}},
		},
		{
			name: "directive inside a comment still matches",
			text: `// #load "old.fsx"`,
			want: []loadHit{{1, "old.fsx"}},
		},
		{
			name: "empty path does not match",
			text: `#load ""`,
			want: nil,
		},
		{
			name: "missing whitespace does not match",
			text: `#load"a.fsx"`,
			want: nil,
		},
		{
			name: "only first directive on a line is reported",
			text: `#load "a.fsx" #load "b.fsx"`,
			want: []loadHit{{1, "a.fsx"}},
		},
		{
			name: "other directives ignored",
			text: "#r \"FakeLib.dll\"\n#I \"tools\"",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collectLoads(tt.text))
		})
	}
}

func TestTargetDeclarations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []targetHit
	}{
		{
			name: "plain target",
			text: `Target "Build" (fun _ -> ())`,
			want: []targetHit{{1, models.Target{Type: "Target", Name: "Build"}}},
		},
		{
			name: "prefixed target types",
			text: "FinalTarget \"Cleanup\" (fun _ -> ())\nBuildFailureTarget \"Notify\" ignore",
			want: []targetHit{
				{1, models.Target{Type: "FinalTarget", Name: "Cleanup"}},
				{2, models.Target{Type: "BuildFailureTarget", Name: "Notify"}},
			},
		},
		{
			name: "ActivateFinalTarget is skipped",
			text: "ActivateFinalTarget \"Done\"\nTarget \"Done\" ignore",
			want: []targetHit{{2, models.Target{Type: "Target", Name: "Done"}}},
		},
		{
			name: "RunTargetOrDefault does not end in Target",
			text: `RunTargetOrDefault "Build"`,
			want: nil,
		},
		{
			name: "indented declaration",
			text: "\n\n    Target \"Test\" <| fun _ ->",
			want: []targetHit{{3, models.Target{Type: "Target", Name: "Test"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collectTargets(tt.text))
		})
	}
}

func TestLoadDirectives_StopsEarly(t *testing.T) {
	text := "#load \"a.fsx\"\n#load \"b.fsx\"\n#load \"c.fsx\"\n"

	var seen []string
	for _, path := range LoadDirectives(text) {
		seen = append(seen, path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.fsx", "b.fsx"}, seen)
}

func TestMustGroups_PanicsOnContractViolation(t *testing.T) {
	re := regexp.MustCompile(`(a)(b)`)

	require.NotPanics(t, func() { mustGroups(re, 1, []string{"a", "b"}, 2) })
	assert.PanicsWithValue(t,
		"scripts: pattern contract violated: (a)(b) matched 2 groups on line 7, want 1",
		func() { mustGroups(re, 7, []string{"a", "b"}, 1) })
}

func TestContainsName(t *testing.T) {
	text := "#load \"B.fsx\"\n// depends on Clean\n\"Build\" ==> \"Deploy\"\n"

	assert.True(t, ContainsName(text, "Clean"))
	assert.True(t, ContainsName(text, "Deploy"))
	assert.False(t, ContainsName(text, "Publish"))
	assert.False(t, ContainsName("", "Clean"))
}
