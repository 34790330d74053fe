package exclusions_test

import (
	"testing"

	"github.com/temirov/repodoc/internal/exclusions"
)

func TestDefaultSet(t *testing.T) {
	set := exclusions.Default()

	directoryCases := []struct {
		name     string
		expected bool
	}{
		{name: "node_modules", expected: true},
		{name: "__pycache__", expected: true},
		{name: ".venv", expected: true},
		{name: "build", expected: true},
		{name: "src", expected: false},
		{name: "builds", expected: false},
	}
	for _, testCase := range directoryCases {
		t.Run("directory "+testCase.name, func(t *testing.T) {
			if result := set.ExcludesDirectory(testCase.name); result != testCase.expected {
				t.Fatalf("ExcludesDirectory(%q) = %v, expected %v", testCase.name, result, testCase.expected)
			}
		})
	}

	fileCases := []struct {
		name     string
		expected bool
	}{
		{name: "README.md", expected: true},
		{name: "LICENSE", expected: true},
		{name: ".DS_Store", expected: true},
		{name: "module.pyc", expected: true},
		{name: "server.log", expected: true},
		{name: "draft.txt~", expected: true},
		{name: "._resource", expected: true},
		{name: "npm-debug.log.1", expected: true},
		{name: "main.go", expected: false},
		{name: "docs.md", expected: false},
		{name: "Readme.md", expected: false},
		{name: "build", expected: false},
		{name: "tmp", expected: false},
		{name: ".DS_Store1", expected: false},
	}
	for _, testCase := range fileCases {
		t.Run("file "+testCase.name, func(t *testing.T) {
			if result := set.ExcludesFile(testCase.name); result != testCase.expected {
				t.Fatalf("ExcludesFile(%q) = %v, expected %v", testCase.name, result, testCase.expected)
			}
		})
	}
}

func TestDirectoryAndFileListsAreSeparate(t *testing.T) {
	set := exclusions.Default()
	if set.ExcludesFile("build") {
		t.Fatalf("a file named build is not covered by the directory list")
	}
	if set.ExcludesDirectory("README.md") {
		t.Fatalf("a directory named README.md is not covered by the file list")
	}
}

func TestZeroSetExcludesNothing(t *testing.T) {
	var set exclusions.Set
	if set.ExcludesDirectory("node_modules") || set.ExcludesFile("README.md") {
		t.Fatalf("zero set must not exclude anything")
	}
}

func TestMergeAddsEntries(t *testing.T) {
	extra := exclusions.New(exclusions.Lists{
		Directories:  []string{"generated", " "},
		FileNames:    []string{"secrets.yaml"},
		FileSuffixes: []string{".bak"},
		FilePrefixes: []string{"draft-"},
	})
	merged := exclusions.Default().Merge(extra)

	if !merged.ExcludesDirectory("generated") || !merged.ExcludesDirectory("node_modules") {
		t.Fatalf("merged set lost directory entries")
	}
	if !merged.ExcludesFile("secrets.yaml") || !merged.ExcludesFile("old.bak") || !merged.ExcludesFile("draft-notes.md") {
		t.Fatalf("merged set lost file entries")
	}
	if merged.ExcludesDirectory(" ") {
		t.Fatalf("blank entries must be dropped")
	}
	if exclusions.Default().ExcludesDirectory("generated") {
		t.Fatalf("merge must not modify the default set")
	}
}

func TestDefaultListsReturnsCopy(t *testing.T) {
	lists := exclusions.DefaultLists()
	lists.Directories[0] = "changed"
	if exclusions.DefaultLists().Directories[0] == "changed" {
		t.Fatalf("DefaultLists must return a fresh copy")
	}
}
