package walker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/repodoc/internal/exclusions"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/walker"
)

func TestLoadReadsRulesFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":   "*.out\n",
		".ignore":      "!keep.out\n",
		"keep.out":     "kept",
		"drop.out":     "dropped",
		"src/main.go":  "package main\n",
		".git/HEAD":    "ref: refs/heads/main\n",
		"node_modules": "not a directory here",
	})

	testCases := []struct {
		name     string
		options  walker.LoadOptions
		expected []string
	}{
		{
			name:     "both rules files",
			options:  walker.LoadOptions{UseGitignore: true, UseIgnoreFile: true, Exclusions: exclusions.Default()},
			expected: []string{".gitignore", ".ignore", "keep.out", "node_modules", "src/main.go"},
		},
		{
			name:     "gitignore only",
			options:  walker.LoadOptions{UseGitignore: true, Exclusions: exclusions.Default()},
			expected: []string{".gitignore", ".ignore", "node_modules", "src/main.go"},
		},
		{
			name:     "no rules files",
			options:  walker.LoadOptions{Exclusions: exclusions.Default()},
			expected: []string{".gitignore", ".ignore", "drop.out", "keep.out", "node_modules", "src/main.go"},
		},
		{
			name:     "include git",
			options:  walker.LoadOptions{UseGitignore: true, UseIgnoreFile: true, IncludeGit: true, Exclusions: exclusions.Default()},
			expected: []string{".gitignore", ".ignore", "keep.out", "node_modules", ".git/HEAD", "src/main.go"},
		},
		{
			name:     "extra rules win",
			options:  walker.LoadOptions{UseGitignore: true, UseIgnoreFile: true, ExtraRules: []string{"keep.out", "src/"}, Exclusions: exclusions.Default()},
			expected: []string{".gitignore", ".ignore", "node_modules"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			options := testCase.options
			options.Root = root
			result, err := walker.Load(context.Background(), options)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if paths := relativePaths(result.Inventory); !reflect.DeepEqual(paths, testCase.expected) {
				t.Fatalf("inventory %v, expected %v", paths, testCase.expected)
			}
		})
	}
}

func TestLoadReportsUnreadableRulesFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore/placeholder.txt": "the rules file is a directory",
		"main.go":                    "package main\n",
	})

	result, err := walker.Load(context.Background(), walker.LoadOptions{Root: root, UseGitignore: true})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(result.Warnings) == 0 || result.Warnings[0].Kind != types.WarningRulesFileUnreadable {
		t.Fatalf("expected rules file warning first, got %v", result.Warnings)
	}
	if paths := relativePaths(result.Inventory); !reflect.DeepEqual(paths, []string{"main.go", ".gitignore/placeholder.txt"}) {
		t.Fatalf("unexpected inventory %v", paths)
	}
}

func TestLoadReportsInvalidPatternWithLine(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "# generated\n*.out\nbroken[\n*.tmp\n",
		"a.out":      "a",
		"b.tmp":      "b",
		"c.go":       "package c\n",
	})

	result, err := walker.Load(context.Background(), walker.LoadOptions{Root: root, UseGitignore: true})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	warning := result.Warnings[0]
	if warning.Kind != types.WarningInvalidPattern || warning.Path != ".gitignore" || warning.Line != 3 {
		t.Fatalf("unexpected warning %+v", warning)
	}
	if paths := relativePaths(result.Inventory); !reflect.DeepEqual(paths, []string{".gitignore", "c.go"}) {
		t.Fatalf("valid lines around the invalid one must apply, got %v", paths)
	}
}

func TestLoadRootNotFound(t *testing.T) {
	_, err := walker.Load(context.Background(), walker.LoadOptions{Root: filepath.Join(t.TempDir(), "absent")})
	if !errors.Is(err, walker.ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected the filesystem cause to be preserved, got %v", err)
	}
}
