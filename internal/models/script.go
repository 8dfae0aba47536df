package models

import "fmt"

// LoadEdge records that Destination textually #loads Source.
// OriginFile and OriginLine locate the directive; OriginFile always equals Destination.
type LoadEdge struct {
	Source      string // Normalized path of the loaded script (may not exist)
	Destination string // Script containing the #load directive
	OriginFile  string
	OriginLine  int
}

// Target is a build target declared in a script, e.g. `Target "Build"`.
// Two targets are equal iff both Type and Name match.
type Target struct {
	Type string // Declaring token, e.g. "Target" or "FinalTarget"
	Name string
}

// String renders the target as it was declared.
func (t Target) String() string {
	return fmt.Sprintf("%s %q", t.Type, t.Name)
}

// Declaration is a target together with the line it was declared on.
type Declaration struct {
	Target
	Line int
}
