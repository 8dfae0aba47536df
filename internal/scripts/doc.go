// Package scripts extracts #load directives and target declarations from
// FAKE build scripts (*.fsx).
//
// Extraction is line-oriented regular expression matching. It does not
// understand F# string escaping, comments, or any other lexical structure,
// so it may report directives inside comments and miss declarations that
// span lines. Callers get approximate results in exchange for not needing
// an F# parser.
//
// # Main Components
//
//   - LoadDirectives: yields (line, raw path) for each `#load "..."` line
//   - TargetDeclarations: yields (line, Target) for each `<word>Target "name"`
//   - NormalizePath: turns a raw #load path into a root-anchored absolute path
//   - TextCache: LRU of script contents backing ReferencesTarget
package scripts
