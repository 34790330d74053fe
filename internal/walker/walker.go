// Package walker traverses a directory tree and builds the Inventory of
// relevant files. Every entry passes through the exclusion set first and the
// compiled rule set second; a directory excluded by either is never read.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/exclusions"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	directoryAccessDeniedMessage = "directory skipped: %v"
	entryUnreadableMessage       = "entry skipped: %v"
	symlinkDanglingMessage       = "symbolic link target cannot be resolved: %v"
	symlinkOutsideRootMessage    = "symbolic link points outside the scan root: %s"
	symlinkCycleMessage          = "symbolic link points to an ancestor directory: %s"
	symlinkTargetExcludedMessage = "symbolic link target %s is excluded by %s"

	logFieldPath   = "path"
	logFieldLayer  = "layer"
	logFieldSource = "source"
	logFieldLine   = "line"
	logFieldRule   = "rule"
)

// Options configures a single traversal.
type Options struct {
	Root       string
	Rules      rules.RuleSet
	Exclusions exclusions.Set
	// Logger receives a debug line for every excluded entry. Nil disables logging.
	Logger *zap.Logger
}

// Result is the outcome of a completed traversal.
type Result struct {
	Inventory types.Inventory
	Warnings  []types.Warning
}

type treeScanner struct {
	ctx          context.Context
	options      Options
	logger       *zap.Logger
	resolvedRoot string
	groups       []types.DirectoryGroup
	warnings     []types.Warning
}

// pendingDirectory is a subdirectory accepted for descent.
type pendingDirectory struct {
	path         string
	resolvedPath string
	relativePath string
}

// Scan walks options.Root depth-first and returns the files that survive the
// exclusion set and the rule set, grouped by directory. A directory's files
// are grouped before its subdirectories are visited, and entries are visited
// in byte order of their names. The context is checked before every
// directory visit; on cancellation the context error is returned.
func Scan(ctx context.Context, options Options) (Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absoluteRoot, resolvedRoot, rootError := resolveRoot(options.Root)
	if rootError != nil {
		return Result{}, rootError
	}

	scanner := &treeScanner{
		ctx:          ctx,
		options:      options,
		logger:       logger,
		resolvedRoot: resolvedRoot,
	}
	rootDirectory := pendingDirectory{path: absoluteRoot, resolvedPath: resolvedRoot, relativePath: utils.RootDirectoryPath}
	if walkError := scanner.walkDirectory(rootDirectory, []string{resolvedRoot}); walkError != nil {
		return Result{}, walkError
	}

	return Result{
		Inventory: types.Inventory{Root: absoluteRoot, Directories: scanner.groups},
		Warnings:  scanner.warnings,
	}, nil
}

// resolveRoot returns the absolute root and its symlink-free form.
func resolveRoot(root string) (string, string, error) {
	absoluteRoot, absError := filepath.Abs(root)
	if absError != nil {
		return "", "", &RootNotFoundError{Path: root, Err: absError}
	}
	info, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", "", &RootNotFoundError{Path: absoluteRoot, Err: statError}
	}
	if !info.IsDir() {
		return "", "", &RootNotFoundError{Path: absoluteRoot, Err: fmt.Errorf("%s is not a directory", absoluteRoot)}
	}
	resolvedRoot, evalError := filepath.EvalSymlinks(absoluteRoot)
	if evalError != nil {
		return "", "", &RootNotFoundError{Path: absoluteRoot, Err: evalError}
	}
	return absoluteRoot, resolvedRoot, nil
}

func (scanner *treeScanner) walkDirectory(directory pendingDirectory, ancestors []string) error {
	if contextError := scanner.ctx.Err(); contextError != nil {
		return contextError
	}

	entries, readError := os.ReadDir(directory.path)
	if readError != nil {
		scanner.warn(types.WarningDirectoryAccessDenied, directory.relativePath, fmt.Sprintf(directoryAccessDeniedMessage, readError))
		return nil
	}

	var files []types.DirectoryEntry
	var subdirectories []pendingDirectory

	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(directory.path, name)
		relativePath := utils.JoinRelativePath(directory.relativePath, name)

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			file, subdirectory, accepted := scanner.followSymlink(childPath, relativePath, name, ancestors)
			if !accepted {
				continue
			}
			if subdirectory != nil {
				subdirectories = append(subdirectories, *subdirectory)
				continue
			}
			files = append(files, file)
		case entry.IsDir():
			if scanner.excluded(relativePath, name, true) {
				continue
			}
			subdirectories = append(subdirectories, pendingDirectory{
				path:         childPath,
				resolvedPath: filepath.Join(directory.resolvedPath, name),
				relativePath: relativePath,
			})
		case entry.Type().IsRegular():
			if scanner.excluded(relativePath, name, false) {
				continue
			}
			info, infoError := entry.Info()
			if infoError != nil {
				scanner.warn(types.WarningEntryUnreadable, relativePath, fmt.Sprintf(entryUnreadableMessage, infoError))
				continue
			}
			files = append(files, newFileEntry(relativePath, name, info))
		default:
			scanner.logger.Debug("skipped special file", zap.String(logFieldPath, relativePath))
		}
	}

	if len(files) > 0 {
		scanner.groups = append(scanner.groups, types.DirectoryGroup{Path: directory.relativePath, Files: files})
	}

	for _, subdirectory := range subdirectories {
		childAncestors := make([]string, len(ancestors), len(ancestors)+1)
		copy(childAncestors, ancestors)
		childAncestors = append(childAncestors, subdirectory.resolvedPath)
		if walkError := scanner.walkDirectory(subdirectory, childAncestors); walkError != nil {
			return walkError
		}
	}
	return nil
}

// followSymlink resolves a link and either returns a file entry, a directory
// to descend, or rejects the link. Links are filtered by their own relative
// path before their target is checked.
func (scanner *treeScanner) followSymlink(linkPath string, relativePath string, name string, ancestors []string) (types.DirectoryEntry, *pendingDirectory, bool) {
	targetPath, evalError := filepath.EvalSymlinks(linkPath)
	if evalError != nil {
		if scanner.excluded(relativePath, name, false) {
			return types.DirectoryEntry{}, nil, false
		}
		scanner.warn(types.WarningSymlinkExcluded, relativePath, fmt.Sprintf(symlinkDanglingMessage, evalError))
		return types.DirectoryEntry{}, nil, false
	}
	targetInfo, statError := os.Stat(targetPath)
	if statError != nil {
		scanner.warn(types.WarningSymlinkExcluded, relativePath, fmt.Sprintf(symlinkDanglingMessage, statError))
		return types.DirectoryEntry{}, nil, false
	}

	isDirectory := targetInfo.IsDir()
	if scanner.excluded(relativePath, name, isDirectory) {
		return types.DirectoryEntry{}, nil, false
	}
	if !utils.IsWithinDirectory(targetPath, scanner.resolvedRoot) {
		scanner.warn(types.WarningSymlinkExcluded, relativePath, fmt.Sprintf(symlinkOutsideRootMessage, targetPath))
		return types.DirectoryEntry{}, nil, false
	}
	if targetDecision := scanner.classifyTarget(targetPath, isDirectory); targetDecision.Excluded {
		scanner.warn(types.WarningSymlinkExcluded, relativePath, fmt.Sprintf(symlinkTargetExcludedMessage, targetDecision.DecidingPath, targetDecision.Layer))
		return types.DirectoryEntry{}, nil, false
	}

	if isDirectory {
		for _, ancestor := range ancestors {
			if ancestor == targetPath {
				scanner.warn(types.WarningSymlinkExcluded, relativePath, fmt.Sprintf(symlinkCycleMessage, targetPath))
				return types.DirectoryEntry{}, nil, false
			}
		}
		return types.DirectoryEntry{}, &pendingDirectory{path: linkPath, resolvedPath: targetPath, relativePath: relativePath}, true
	}
	if !targetInfo.Mode().IsRegular() {
		scanner.logger.Debug("skipped special file", zap.String(logFieldPath, relativePath))
		return types.DirectoryEntry{}, nil, false
	}
	return newFileEntry(relativePath, name, targetInfo), nil, true
}

// classifyTarget applies the layered checks to a resolved link target under
// its own root-relative path, so a link cannot expose a pruned directory.
func (scanner *treeScanner) classifyTarget(targetPath string, isDirectory bool) Decision {
	relativeTarget, relativeError := filepath.Rel(scanner.resolvedRoot, targetPath)
	if relativeError != nil {
		return Decision{}
	}
	return Classify(scanner.options.Rules, scanner.options.Exclusions, filepath.ToSlash(relativeTarget), isDirectory)
}

// excluded applies the exclusion set and then the rule set to one entry.
func (scanner *treeScanner) excluded(relativePath string, name string, isDirectory bool) bool {
	decision := decideEntry(scanner.options.Rules, scanner.options.Exclusions, relativePath, name, isDirectory)
	if !decision.Excluded {
		return false
	}
	message := "excluded file"
	if isDirectory {
		message = "pruned directory"
	}
	fields := []zap.Field{zap.String(logFieldPath, relativePath), zap.String(logFieldLayer, string(decision.Layer))}
	if decision.Pattern != nil {
		fields = append(fields,
			zap.String(logFieldSource, decision.Pattern.Source),
			zap.Int(logFieldLine, decision.Pattern.Line),
			zap.String(logFieldRule, decision.Pattern.RawText),
		)
	}
	scanner.logger.Debug(message, fields...)
	return true
}

func (scanner *treeScanner) warn(kind types.WarningKind, relativePath string, message string) {
	scanner.warnings = append(scanner.warnings, types.Warning{Kind: kind, Path: relativePath, Message: message})
}

func newFileEntry(relativePath string, name string, info fs.FileInfo) types.DirectoryEntry {
	return types.DirectoryEntry{
		RelativePath: relativePath,
		Name:         name,
		SizeBytes:    info.Size(),
		IsDirectory:  info.IsDir(),
		ModifiedAt:   info.ModTime(),
	}
}
