package rules

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/repodoc/internal/utils"
)

// Verdict is the outcome of evaluating one path against a RuleSet.
type Verdict struct {
	// Ignored is the final ignore decision.
	Ignored bool
	// Pattern is the last matching pattern, nil when nothing matched.
	Pattern *Pattern
}

// IsIgnored reports whether the relative path is ignored by the RuleSet.
// Directory-only patterns are skipped for files; pruning of ignored ancestor
// directories is left to the caller.
func (ruleSet RuleSet) IsIgnored(relativePath string, isDirectory bool) bool {
	return ruleSet.Explain(relativePath, isDirectory).Ignored
}

// Explain evaluates the path like IsIgnored and also returns the deciding pattern.
func (ruleSet RuleSet) Explain(relativePath string, isDirectory bool) Verdict {
	var verdict Verdict
	pathSegments := utils.SplitRelativePath(relativePath)
	if len(pathSegments) == 0 {
		return verdict
	}

	for patternIndex := range ruleSet.patterns {
		pattern := &ruleSet.patterns[patternIndex]
		if pattern.DirectoryOnly && !isDirectory {
			continue
		}
		if !pattern.matchSegments(pathSegments) {
			continue
		}
		// later patterns always override earlier ones
		verdict.Ignored = !pattern.Negated
		deciding := *pattern
		verdict.Pattern = &deciding
	}

	return verdict
}

// Matches reports whether this single pattern matches the path, honoring
// DirectoryOnly but not Negated.
func (pattern Pattern) Matches(relativePath string, isDirectory bool) bool {
	if pattern.DirectoryOnly && !isDirectory {
		return false
	}
	pathSegments := utils.SplitRelativePath(relativePath)
	if len(pathSegments) == 0 {
		return false
	}
	return pattern.matchSegments(pathSegments)
}

// matchSegments applies anchoring: anchored patterns start at the first path
// segment, unanchored ones may start at any segment boundary.
func (pattern *Pattern) matchSegments(pathSegments []string) bool {
	if len(pattern.globs) == 0 {
		return false
	}
	if pattern.Anchored {
		return matchFrom(pattern.globs, pathSegments)
	}
	for startIndex := range pathSegments {
		if matchFrom(pattern.globs, pathSegments[startIndex:]) {
			return true
		}
	}
	return false
}

// matchFrom reports whether globs consume exactly pathSegments. A "**" glob
// absorbs zero or more segments; a trailing "**" requires at least one.
func matchFrom(globs []segmentGlob, pathSegments []string) bool {
	if len(globs) == 0 {
		return len(pathSegments) == 0
	}

	head := globs[0]
	if head.expression == doubleStarSegment {
		remaining := globs[1:]
		if len(remaining) == 0 {
			return len(pathSegments) > 0
		}
		for skipped := 0; skipped <= len(pathSegments); skipped++ {
			if matchFrom(remaining, pathSegments[skipped:]) {
				return true
			}
		}
		return false
	}

	if len(pathSegments) == 0 || !head.match(pathSegments[0]) {
		return false
	}
	return matchFrom(globs[1:], pathSegments[1:])
}

// match tests a single path segment.
func (glob segmentGlob) match(name string) bool {
	if !glob.wildcard {
		return name == glob.literal
	}
	isMatched, matchError := doublestar.Match(glob.expression, name)
	return matchError == nil && isMatched
}
