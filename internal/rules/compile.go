package rules

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	segmentSeparator      = "/"
	doubleStarSegment     = "**"
	negationPrefix        = "!"
	commentPrefix         = "#"
	escapedNegationPrefix = `\!`
	escapedCommentPrefix  = `\#`
	escapedTrailingSlash  = `\/`

	malformedBracketReason = "unterminated or empty bracket expression"
)

// segmentGlob is the matcher-side form of one pattern segment.
type segmentGlob struct {
	// expression is the segment rewritten for doublestar.
	expression string
	// literal holds the unescaped text when the segment has no glob meta.
	literal string
	// wildcard reports whether expression must go through the glob engine.
	wildcard bool
}

// Compile parses the defaults source followed by every other source, in order,
// into a RuleSet. Malformed lines are skipped and reported; compilation of the
// remaining lines continues.
func Compile(defaults Source, sources ...Source) (RuleSet, []*InvalidPatternError) {
	var patterns []Pattern
	var invalidPatterns []*InvalidPatternError

	allSources := make([]Source, 0, len(sources)+1)
	allSources = append(allSources, defaults)
	allSources = append(allSources, sources...)

	for sourceIndex, source := range allSources {
		for lineIndex, line := range source.Lines {
			pattern, keep, reason := compileLine(line)
			lineNumber := lineIndex + 1
			if sourceIndex == 0 {
				lineNumber = 0
			}
			if reason != "" {
				invalidPatterns = append(invalidPatterns, &InvalidPatternError{
					Source:  source.Name,
					Line:    lineNumber,
					Pattern: line,
					Reason:  reason,
				})
				continue
			}
			if !keep {
				continue
			}
			pattern.Source = source.Name
			pattern.Line = lineNumber
			patterns = append(patterns, pattern)
		}
	}

	return RuleSet{patterns: patterns}, invalidPatterns
}

// CompileLines compiles a single anonymous source without built-in defaults.
// Invalid lines are skipped; their errors are joined into the returned error.
func CompileLines(lines []string) (RuleSet, error) {
	ruleSet, invalidPatterns := Compile(Source{}, Source{Name: "rules", Lines: lines})
	if len(invalidPatterns) == 0 {
		return ruleSet, nil
	}
	joined := make([]error, 0, len(invalidPatterns))
	for _, invalidPattern := range invalidPatterns {
		joined = append(joined, invalidPattern)
	}
	return ruleSet, errors.Join(joined...)
}

// compileLine turns one raw line into a Pattern. keep is false for blank and
// comment lines; a non-empty reason marks the line as malformed.
func compileLine(rawLine string) (Pattern, bool, string) {
	line := strings.TrimSuffix(rawLine, "\r")
	line = trimTrailingSpaces(line)
	if line == "" {
		return Pattern{}, false, ""
	}
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), commentPrefix) {
		return Pattern{}, false, ""
	}

	pattern := Pattern{RawText: rawLine}

	switch {
	case strings.HasPrefix(line, escapedCommentPrefix), strings.HasPrefix(line, escapedNegationPrefix):
		line = line[1:]
	case strings.HasPrefix(line, negationPrefix):
		pattern.Negated = true
		line = line[1:]
	}

	switch {
	case strings.HasSuffix(line, escapedTrailingSlash):
		line = strings.TrimSuffix(line, escapedTrailingSlash)
	case strings.HasSuffix(line, segmentSeparator):
		pattern.DirectoryOnly = true
		line = strings.TrimRight(line, segmentSeparator)
	}

	if strings.HasPrefix(line, segmentSeparator) {
		pattern.Anchored = true
		line = strings.TrimLeft(line, segmentSeparator)
	}
	if strings.Contains(line, segmentSeparator) {
		pattern.Anchored = true
	}

	pattern.Segments = splitSegments(line)
	if len(pattern.Segments) == 0 {
		return Pattern{}, false, ""
	}

	pattern.globs = make([]segmentGlob, 0, len(pattern.Segments))
	for _, segment := range pattern.Segments {
		glob, valid := compileSegment(segment)
		if !valid {
			return Pattern{}, false, malformedBracketReason
		}
		pattern.globs = append(pattern.globs, glob)
	}

	return pattern, true, ""
}

// splitSegments splits on "/" dropping empty segments and collapsing runs of "**".
func splitSegments(text string) []string {
	var segments []string
	for _, segment := range strings.Split(text, segmentSeparator) {
		if segment == "" {
			continue
		}
		if segment == doubleStarSegment && len(segments) > 0 && segments[len(segments)-1] == doubleStarSegment {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// compileSegment rewrites one gitignore segment for doublestar. Braces and
// commas are escaped because gitignore has no alternation, and a dangling
// backslash becomes a literal one.
func compileSegment(segment string) (segmentGlob, bool) {
	if segment == doubleStarSegment {
		return segmentGlob{expression: doubleStarSegment, wildcard: true}, true
	}

	var expression strings.Builder
	var literal strings.Builder
	wildcard := false

	for index := 0; index < len(segment); index++ {
		character := segment[index]
		switch character {
		case '\\':
			if index+1 >= len(segment) {
				expression.WriteString(`\\`)
				literal.WriteByte('\\')
				continue
			}
			index++
			expression.WriteByte('\\')
			expression.WriteByte(segment[index])
			literal.WriteByte(segment[index])
		case '{', '}', ',':
			expression.WriteByte('\\')
			expression.WriteByte(character)
			literal.WriteByte(character)
		case '*', '?':
			wildcard = true
			expression.WriteByte(character)
			literal.WriteByte(character)
		case '[':
			wildcard = true
			expression.WriteByte(character)
			literal.WriteByte(character)
			// a "]" opening the class, after an optional negation, is a member
			if index+1 < len(segment) && (segment[index+1] == '!' || segment[index+1] == '^') {
				index++
				expression.WriteByte(segment[index])
				literal.WriteByte(segment[index])
			}
			if index+1 < len(segment) && segment[index+1] == ']' {
				index++
				expression.WriteString(`\]`)
				literal.WriteByte(']')
			}
		default:
			expression.WriteByte(character)
			literal.WriteByte(character)
		}
	}

	if !wildcard {
		return segmentGlob{expression: expression.String(), literal: literal.String()}, true
	}
	if !doublestar.ValidatePattern(expression.String()) {
		return segmentGlob{}, false
	}
	return segmentGlob{expression: expression.String(), wildcard: true}, true
}

// trimTrailingSpaces removes trailing spaces and tabs unless escaped by "\".
func trimTrailingSpaces(line string) string {
	for len(line) > 0 && (line[len(line)-1] == ' ' || line[len(line)-1] == '\t') {
		if len(line) >= 2 && line[len(line)-2] == '\\' {
			return line[:len(line)-2] + line[len(line)-1:]
		}
		line = line[:len(line)-1]
	}
	return line
}
