package rules_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/temirov/repodoc/internal/rules"
)

type matchCase struct {
	name        string
	lines       []string
	path        string
	isDirectory bool
	expected    bool
}

func compileForTest(t *testing.T, lines []string) rules.RuleSet {
	t.Helper()
	ruleSet, compileError := rules.CompileLines(lines)
	if compileError != nil {
		t.Fatalf("compile %q: %v", lines, compileError)
	}
	return ruleSet
}

func TestIsIgnored(t *testing.T) {
	testCases := []matchCase{
		{name: "glob at root", lines: []string{"*.log"}, path: "notes.log", expected: true},
		{name: "glob at any depth", lines: []string{"*.log"}, path: "src/deep/notes.log", expected: true},
		{name: "glob does not match other suffix", lines: []string{"*.log"}, path: "notes.txt", expected: false},
		{name: "later negation wins", lines: []string{"*.log", "!important.log"}, path: "important.log", expected: false},
		{name: "earlier negation loses", lines: []string{"!important.log", "*.log"}, path: "important.log", expected: true},
		{name: "negation leaves other matches alone", lines: []string{"*.log", "!important.log"}, path: "other.log", expected: true},
		{name: "directory only matches directory", lines: []string{"build/"}, path: "build", isDirectory: true, expected: true},
		{name: "directory only skips file", lines: []string{"build/"}, path: "build", isDirectory: false, expected: false},
		{name: "directory only nested directory", lines: []string{"build/"}, path: "pkg/build", isDirectory: true, expected: true},
		{name: "anchored matches at root", lines: []string{"/root.txt"}, path: "root.txt", expected: true},
		{name: "anchored ignores nested", lines: []string{"/root.txt"}, path: "sub/root.txt", expected: false},
		{name: "unanchored matches nested", lines: []string{"root.txt"}, path: "sub/root.txt", expected: true},
		{name: "interior slash anchors", lines: []string{"docs/*.md"}, path: "x/docs/a.md", expected: false},
		{name: "interior slash matches at root", lines: []string{"docs/*.md"}, path: "docs/a.md", expected: true},
		{name: "star does not cross slash", lines: []string{"docs/*.md"}, path: "docs/api/a.md", expected: false},
		{name: "literal is not substring", lines: []string{"log"}, path: "catalog", expected: false},
		{name: "literal is not prefix", lines: []string{"src"}, path: "src2/file.go", expected: false},
		{name: "question mark single char", lines: []string{"file?.go"}, path: "file1.go", expected: true},
		{name: "question mark needs one char", lines: []string{"file?.go"}, path: "file.go", expected: false},
		{name: "bracket class", lines: []string{"[abc].txt"}, path: "b.txt", expected: true},
		{name: "negated bracket class bang", lines: []string{"[!abc].txt"}, path: "b.txt", expected: false},
		{name: "negated bracket class caret", lines: []string{"[^abc].txt"}, path: "d.txt", expected: true},
		{name: "bracket range", lines: []string{"v[0-9].md"}, path: "v7.md", expected: true},
		{name: "leading close bracket member", lines: []string{"[]a]b"}, path: "]b", expected: true},
		{name: "leading close bracket other member", lines: []string{"[]a]b"}, path: "ab", expected: true},
		{name: "leading close bracket needs member", lines: []string{"[]a]b"}, path: "b", expected: false},
		{name: "negated leading close bracket", lines: []string{"[!]]x"}, path: "]x", expected: false},
		{name: "negated leading close bracket other", lines: []string{"[!]]x"}, path: "cx", expected: true},
		{name: "leading double star zero levels", lines: []string{"**/tmp"}, path: "tmp", isDirectory: true, expected: true},
		{name: "leading double star many levels", lines: []string{"**/tmp"}, path: "a/b/tmp", isDirectory: true, expected: true},
		{name: "trailing double star descendants", lines: []string{"logs/**"}, path: "logs/a/b.txt", expected: true},
		{name: "trailing double star not the directory itself", lines: []string{"logs/**"}, path: "logs", isDirectory: true, expected: false},
		{name: "middle double star zero levels", lines: []string{"a/**/b"}, path: "a/b", expected: true},
		{name: "middle double star many levels", lines: []string{"a/**/b"}, path: "a/x/y/b", expected: true},
		{name: "anchored double star stays anchored", lines: []string{"/a/**/b"}, path: "z/a/x/b", expected: false},
		{name: "lone double star matches all", lines: []string{"**"}, path: "any/thing.txt", expected: true},
		{name: "escaped wildcard is literal", lines: []string{`\*.txt`}, path: "a.txt", expected: false},
		{name: "escaped wildcard matches star name", lines: []string{`\*.txt`}, path: "*.txt", expected: true},
		{name: "leading dot slash normalized", lines: []string{"/root.txt"}, path: "./root.txt", expected: true},
		{name: "empty path never ignored", lines: []string{"**"}, path: "", isDirectory: true, expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ruleSet := compileForTest(t, testCase.lines)
			if result := ruleSet.IsIgnored(testCase.path, testCase.isDirectory); result != testCase.expected {
				t.Fatalf("IsIgnored(%q, dir=%v) with %q = %v, expected %v", testCase.path, testCase.isDirectory, testCase.lines, result, testCase.expected)
			}
		})
	}
}

func TestEscapedBackslashMatchesFileName(t *testing.T) {
	if filepath.Separator == '\\' {
		t.Skip("backslash is a path separator on this platform")
	}
	ruleSet := compileForTest(t, []string{`a\\b`})
	if !ruleSet.IsIgnored(`a\b`, false) {
		t.Fatalf("expected escaped backslash to match a file named a\\b")
	}
	if ruleSet.IsIgnored("a/b", false) {
		t.Fatalf("escaped backslash must not match a path separator")
	}
}

func TestNonConflictingOrderDoesNotMatter(t *testing.T) {
	forward := compileForTest(t, []string{"*.tmp", "build/", "/secret.txt"})
	reversed := compileForTest(t, []string{"/secret.txt", "build/", "*.tmp"})
	candidates := []struct {
		path        string
		isDirectory bool
	}{
		{path: "a.tmp"},
		{path: "src/b.tmp"},
		{path: "build", isDirectory: true},
		{path: "secret.txt"},
		{path: "src/secret.txt"},
		{path: "main.go"},
	}
	for _, candidate := range candidates {
		if forward.IsIgnored(candidate.path, candidate.isDirectory) != reversed.IsIgnored(candidate.path, candidate.isDirectory) {
			t.Fatalf("ordering changed the verdict for %q", candidate.path)
		}
	}
}

func TestExplainReportsDecidingPattern(t *testing.T) {
	ruleSet, _ := rules.Compile(rules.BuiltinDefaults(false), rules.Source{Name: ".gitignore", Lines: []string{"*.log", "!important.log"}})

	verdict := ruleSet.Explain("important.log", false)
	if verdict.Ignored {
		t.Fatalf("expected important.log to be kept")
	}
	if verdict.Pattern == nil || verdict.Pattern.RawText != "!important.log" || verdict.Pattern.Line != 2 {
		t.Fatalf("unexpected deciding pattern: %+v", verdict.Pattern)
	}

	verdict = ruleSet.Explain("main.go", false)
	if verdict.Ignored || verdict.Pattern != nil {
		t.Fatalf("expected no matching pattern for main.go, got %+v", verdict)
	}

	verdict = ruleSet.Explain(".git", true)
	if !verdict.Ignored || verdict.Pattern == nil || verdict.Pattern.Source != rules.DefaultSourceName {
		t.Fatalf("expected .git to be decided by the default source, got %+v", verdict)
	}
}

func TestPatternMatchesIgnoresNegation(t *testing.T) {
	ruleSet := compileForTest(t, []string{"!keep.txt", "cache/"})
	patterns := ruleSet.Patterns()
	if !patterns[0].Matches("keep.txt", false) {
		t.Fatalf("negated pattern should still report a match")
	}
	if patterns[1].Matches("cache", false) {
		t.Fatalf("directory-only pattern must not match a file")
	}
	if !patterns[1].Matches("cache", true) {
		t.Fatalf("directory-only pattern must match a directory")
	}
}

func TestZeroRuleSetIgnoresNothing(t *testing.T) {
	var ruleSet rules.RuleSet
	if ruleSet.IsIgnored("anything.txt", false) {
		t.Fatalf("zero rule set must not ignore paths")
	}
}

// TestAgreesWithGoGitMatcher cross-checks leaf-level verdicts against the
// go-git gitignore implementation for cases where both follow gitignore(5).
func TestAgreesWithGoGitMatcher(t *testing.T) {
	testCases := []matchCase{
		{name: "glob root", lines: []string{"*.log"}, path: "notes.log"},
		{name: "glob nested", lines: []string{"*.log"}, path: "src/notes.log"},
		{name: "negation later", lines: []string{"*.log", "!important.log"}, path: "important.log"},
		{name: "negation earlier", lines: []string{"!important.log", "*.log"}, path: "important.log"},
		{name: "dir only dir", lines: []string{"build/"}, path: "build", isDirectory: true},
		{name: "dir only file", lines: []string{"build/"}, path: "build"},
		{name: "anchored root", lines: []string{"/root.txt"}, path: "root.txt"},
		{name: "anchored nested", lines: []string{"/root.txt"}, path: "sub/root.txt"},
		{name: "interior slash root", lines: []string{"docs/*.md"}, path: "docs/a.md"},
		{name: "interior slash nested", lines: []string{"docs/*.md"}, path: "x/docs/a.md"},
		{name: "leading double star deep", lines: []string{"**/tmp/"}, path: "a/b/tmp", isDirectory: true},
		{name: "leading double star shallow", lines: []string{"**/tmp/"}, path: "tmp", isDirectory: true},
		{name: "trailing double star", lines: []string{"logs/**"}, path: "logs/a/b.txt"},
		{name: "middle double star", lines: []string{"a/**/b"}, path: "a/x/y/b"},
		{name: "middle double star adjacent", lines: []string{"a/**/b"}, path: "a/b"},
		{name: "class", lines: []string{"[abc].txt"}, path: "b.txt"},
		{name: "caret class", lines: []string{"[^abc].txt"}, path: "d.txt"},
		{name: "question", lines: []string{"file?.go"}, path: "file1.go"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ruleSet := compileForTest(t, testCase.lines)

			referencePatterns := make([]gitignore.Pattern, 0, len(testCase.lines))
			for _, line := range testCase.lines {
				referencePatterns = append(referencePatterns, gitignore.ParsePattern(line, nil))
			}
			reference := gitignore.NewMatcher(referencePatterns)

			expected := reference.Match(strings.Split(testCase.path, "/"), testCase.isDirectory)
			if actual := ruleSet.IsIgnored(testCase.path, testCase.isDirectory); actual != expected {
				t.Fatalf("verdict for %q with %q = %v, go-git says %v", testCase.path, testCase.lines, actual, expected)
			}
		})
	}
}
