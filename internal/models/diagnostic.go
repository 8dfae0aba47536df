package models

import "fmt"

// Check identifies which validation pass produced a diagnostic.
type Check string

// Validation passes
const (
	CheckRedeclaredTarget Check = "redeclared-target"
	CheckDanglingLoad     Check = "dangling-load"
	CheckUnreferencedLoad Check = "unreferenced-load"
	CheckDuplicateTarget  Check = "duplicate-target"
)

// Diagnostic is a single lint finding. Template and Args are kept separate
// so sinks can format or store them as they need.
type Diagnostic struct {
	Check    Check  `json:"check" yaml:"check"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Template string `json:"-" yaml:"-"`
	Args     []any  `json:"-" yaml:"-"`
}

// Message formats the diagnostic text.
func (d Diagnostic) Message() string {
	return fmt.Sprintf(d.Template, d.Args...)
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return d.Message()
}
