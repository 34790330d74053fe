// Package utils contains general helper functions used across repodoc.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept. Blank entries are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizeRelativePath converts a path relative to the scan root into
// forward-slash form without leading "./" or "/" and without a trailing slash.
// The root itself normalizes to the empty string. Backslashes are separators
// only on platforms that use them; elsewhere they are part of a name.
func NormalizeRelativePath(relativePath string) string {
	normalizedPath := filepath.ToSlash(relativePath)
	for {
		trimmed := strings.TrimPrefix(normalizedPath, "./")
		trimmed = strings.TrimLeft(trimmed, pathSegmentSeparator)
		if trimmed == normalizedPath {
			break
		}
		normalizedPath = trimmed
	}
	normalizedPath = strings.TrimRight(normalizedPath, pathSegmentSeparator)
	if normalizedPath == RootDirectoryPath {
		return EmptyString
	}
	return normalizedPath
}

// JoinRelativePath appends name to a slash-form relative directory path.
// The root directory is represented by RootDirectoryPath.
func JoinRelativePath(relativeDirectory string, name string) string {
	if relativeDirectory == "" || relativeDirectory == RootDirectoryPath {
		return name
	}
	return relativeDirectory + pathSegmentSeparator + name
}

// SplitRelativePath returns the slash-separated segments of a normalized relative path.
func SplitRelativePath(relativePath string) []string {
	normalizedPath := NormalizeRelativePath(relativePath)
	if normalizedPath == "" {
		return nil
	}
	return strings.Split(normalizedPath, pathSegmentSeparator)
}

// IsWithinDirectory reports whether candidatePath equals directoryPath or lies beneath it.
// Both paths must be absolute and cleaned.
func IsWithinDirectory(candidatePath string, directoryPath string) bool {
	relativePath, relativeError := filepath.Rel(directoryPath, candidatePath)
	if relativeError != nil {
		return false
	}
	if relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(relativePath)
}
