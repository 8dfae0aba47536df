// Package report renders lint results for files and other tools.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/harrison/fsxlint/internal/config"
	"github.com/harrison/fsxlint/internal/lint"
)

// Entry is one diagnostic in a report.
type Entry struct {
	Check   string `json:"check" yaml:"check"`
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Report is the serializable view of a lint.Result.
type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Root        string    `json:"root" yaml:"root"`
	Pedantic    bool      `json:"pedantic" yaml:"pedantic"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
	Scripts     int       `json:"scripts" yaml:"scripts"`
	Loads       int       `json:"loads" yaml:"loads"`
	Targets     int       `json:"targets" yaml:"targets"`
	Passed      bool      `json:"passed" yaml:"passed"`
	Summary     string    `json:"summary" yaml:"summary"`
	Diagnostics []Entry   `json:"diagnostics" yaml:"diagnostics"`
}

// FromResult builds a Report from a lint result.
func FromResult(r *lint.Result) Report {
	rep := Report{
		RunID:       r.RunID,
		Root:        r.Root,
		Pedantic:    r.Pedantic,
		StartedAt:   r.StartedAt,
		DurationMS:  r.Duration.Milliseconds(),
		Scripts:     len(r.Files),
		Loads:       r.Edges,
		Targets:     r.Targets,
		Passed:      !r.Failed(),
		Summary:     r.Summary(),
		Diagnostics: make([]Entry, 0, len(r.Diagnostics)),
	}
	for _, d := range r.Diagnostics {
		rep.Diagnostics = append(rep.Diagnostics, Entry{
			Check:   string(d.Check),
			File:    d.File,
			Line:    d.Line,
			Message: d.Message(),
		})
	}
	return rep
}

// Render writes r to w in the given format.
func Render(w io.Writer, format string, r *lint.Result) error {
	rep := FromResult(r)

	switch strings.ToLower(format) {
	case "", config.FormatText:
		return renderText(w, rep)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	case config.FormatMarkdown:
		_, err := io.WriteString(w, markdown(rep))
		return err
	case config.FormatHTML:
		return renderHTML(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, rep Report) error {
	var b strings.Builder
	for _, e := range rep.Diagnostics {
		if e.Line > 0 {
			fmt.Fprintf(&b, "%s:%d: [%s] %s\n", e.File, e.Line, e.Check, e.Message)
		} else {
			fmt.Fprintf(&b, "%s: [%s] %s\n", e.File, e.Check, e.Message)
		}
	}
	b.WriteString(rep.Summary)
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func markdown(rep Report) string {
	var b strings.Builder

	b.WriteString("# fsxlint report\n\n")
	fmt.Fprintf(&b, "- **Root:** `%s`\n", rep.Root)
	fmt.Fprintf(&b, "- **Run:** `%s` at %s\n", rep.RunID, rep.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Pedantic:** %v\n", rep.Pedantic)
	fmt.Fprintf(&b, "- **Scripts:** %d, **loads:** %d, **targets:** %d\n\n", rep.Scripts, rep.Loads, rep.Targets)

	if rep.Passed {
		fmt.Fprintf(&b, "%s.\n", capitalize(rep.Summary))
		return b.String()
	}

	fmt.Fprintf(&b, "## Diagnostics\n\n%s.\n\n", capitalize(rep.Summary))
	b.WriteString("| Check | Location | Message |\n")
	b.WriteString("|---|---|---|\n")
	for _, e := range rep.Diagnostics {
		loc := e.File
		if e.Line > 0 {
			loc = fmt.Sprintf("%s:%d", e.File, e.Line)
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", e.Check, loc, escapeCell(e.Message))
	}
	return b.String()
}

func renderHTML(w io.Writer, rep Report) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown(rep)), &body); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>fsxlint report</title>\n</head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

// escapeCell keeps a message inside one markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
