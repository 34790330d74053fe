// Package rules compiles gitignore-style pattern lines into an ordered RuleSet
// and decides whether a relative path is ignored by it.
//
// Evaluation follows gitignore precedence: every pattern is tested in order
// and the last matching pattern decides the verdict, so a later "!pattern"
// re-includes what an earlier pattern excluded. Directory pruning is not a
// concern of this package; callers that walk a tree must stop descending into
// an ignored directory themselves.
package rules

// Built-in source names reported in Pattern.Source.
const (
	DefaultSourceName     = "default"
	CommandLineSourceName = "command line"
)

// gitDirectoryPattern keeps version-control metadata out of every inventory
// unless the caller opts in.
const gitDirectoryPattern = ".git/"

// Pattern is one compiled rule derived from a single rules-file line.
type Pattern struct {
	// RawText is the original line, kept for diagnostics.
	RawText string
	// Source names the file (or built-in layer) the line came from.
	Source string
	// Line is the 1-based line number within Source, 0 for built-ins.
	Line int
	// Negated reports a leading "!".
	Negated bool
	// Anchored reports that the pattern matches only from the scan root.
	Anchored bool
	// DirectoryOnly reports a trailing "/".
	DirectoryOnly bool
	// Segments are the slash-separated glob segments, never empty.
	Segments []string

	// globs holds Segments rewritten for the glob engine.
	globs []segmentGlob
}

// Source is a named, ordered collection of raw rule lines.
type Source struct {
	Name  string
	Lines []string
}

// RuleSet is the ordered sequence of Patterns applied to a traversal.
// The zero value ignores nothing.
type RuleSet struct {
	patterns []Pattern
}

// Patterns returns a copy of the compiled patterns in evaluation order.
func (ruleSet RuleSet) Patterns() []Pattern {
	patterns := make([]Pattern, len(ruleSet.patterns))
	copy(patterns, ruleSet.patterns)
	return patterns
}

// Len returns the number of compiled patterns.
func (ruleSet RuleSet) Len() int {
	return len(ruleSet.patterns)
}

// BuiltinDefaults returns the default pattern source prepended to every RuleSet.
// The Git metadata directory is excluded unless includeGit is true.
func BuiltinDefaults(includeGit bool) Source {
	source := Source{Name: DefaultSourceName}
	if !includeGit {
		source.Lines = append(source.Lines, gitDirectoryPattern)
	}
	return source
}
