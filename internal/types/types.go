// Package types defines every cross‑package data structure used by the repodoc CLI.
package types

import "time"

const (
	FormatMarkdown = "markdown"
	FormatRaw      = "raw"
	FormatJSON     = "json"
	FormatXML      = "xml"
	FormatYAML     = "yaml"
)

// WarningKind classifies a non-fatal condition met while building an inventory.
type WarningKind string

const (
	WarningRulesFileUnreadable   WarningKind = "rules_file_unreadable"
	WarningInvalidPattern        WarningKind = "invalid_pattern"
	WarningDirectoryAccessDenied WarningKind = "directory_access_denied"
	WarningSymlinkExcluded       WarningKind = "symlink_excluded"
	WarningEntryUnreadable       WarningKind = "entry_unreadable"
)

// Warning is a degraded-but-not-fatal condition attached to a scan result.
type Warning struct {
	Kind    WarningKind `json:"kind" xml:"kind,attr" yaml:"kind"`
	Path    string      `json:"path,omitempty" xml:"path,attr,omitempty" yaml:"path,omitempty"`
	Line    int         `json:"line,omitempty" xml:"line,attr,omitempty" yaml:"line,omitempty"`
	Message string      `json:"message" xml:",chardata" yaml:"message"`
}

// DirectoryEntry is one filesystem node accepted by the tree walker.
type DirectoryEntry struct {
	RelativePath string
	Name         string
	IsDirectory  bool
	SizeBytes    int64
	ModifiedAt   time.Time
}

// DirectoryGroup holds the surviving files of one directory, ordered by name.
type DirectoryGroup struct {
	Path  string
	Files []DirectoryEntry
}

// Inventory maps directories, in discovery order, to their surviving files.
type Inventory struct {
	Root        string
	Directories []DirectoryGroup
}

// FileCount returns the number of files across all groups.
func (inventory Inventory) FileCount() int {
	total := 0
	for _, group := range inventory.Directories {
		total += len(group.Files)
	}
	return total
}

// TotalBytes returns the summed size of every file in the inventory.
func (inventory Inventory) TotalBytes() int64 {
	var total int64
	for _, group := range inventory.Directories {
		for _, file := range group.Files {
			total += file.SizeBytes
		}
	}
	return total
}

// Files flattens the inventory into a single ordered slice.
func (inventory Inventory) Files() []DirectoryEntry {
	files := make([]DirectoryEntry, 0, inventory.FileCount())
	for _, group := range inventory.Directories {
		files = append(files, group.Files...)
	}
	return files
}
