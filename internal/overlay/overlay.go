// Package overlay removes user-selected files from an already computed
// inventory. It never consults the filesystem or the rule engine, so it can
// only subtract: every result is a subset of its input.
package overlay

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const invalidGlobErrorFormat = "invalid exclude glob %q: %w"

// Edits lists the user's removals.
type Edits struct {
	// ExcludePaths are relative file or directory paths. A directory removes
	// every file beneath it.
	ExcludePaths []string
	// ExcludeGlobs are doublestar patterns matched against relative file paths.
	ExcludeGlobs []string
}

// Empty reports whether the edits remove nothing.
func (edits Edits) Empty() bool {
	return len(utils.DeduplicatePatterns(edits.ExcludePaths)) == 0 && len(utils.DeduplicatePatterns(edits.ExcludeGlobs)) == 0
}

// Apply returns a new Inventory without the files selected by edits. Groups
// left without files are dropped. The input inventory is not modified.
func Apply(inventory types.Inventory, edits Edits) (types.Inventory, error) {
	var globs []string
	for _, glob := range utils.DeduplicatePatterns(edits.ExcludeGlobs) {
		glob = utils.NormalizeRelativePath(glob)
		if !doublestar.ValidatePattern(glob) {
			return types.Inventory{}, fmt.Errorf(invalidGlobErrorFormat, glob, doublestar.ErrBadPattern)
		}
		globs = append(globs, glob)
	}
	var paths []string
	for _, path := range utils.DeduplicatePatterns(edits.ExcludePaths) {
		if normalized := utils.NormalizeRelativePath(path); normalized != "" {
			paths = append(paths, normalized)
		}
	}

	result := types.Inventory{Root: inventory.Root}
	for _, group := range inventory.Directories {
		var files []types.DirectoryEntry
		for _, file := range group.Files {
			if excludedByPath(file.RelativePath, paths) || excludedByGlob(file.RelativePath, globs) {
				continue
			}
			files = append(files, file)
		}
		if len(files) == 0 {
			continue
		}
		result.Directories = append(result.Directories, types.DirectoryGroup{Path: group.Path, Files: files})
	}
	return result, nil
}

func excludedByPath(relativePath string, paths []string) bool {
	for _, path := range paths {
		if relativePath == path || strings.HasPrefix(relativePath, path+"/") {
			return true
		}
	}
	return false
}

func excludedByGlob(relativePath string, globs []string) bool {
	for _, glob := range globs {
		if matched, _ := doublestar.Match(glob, relativePath); matched {
			return true
		}
	}
	return false
}
