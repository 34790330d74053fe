// Package exclusions holds the hard-floor denylist applied before any
// gitignore-style rule. Entries excluded here cannot be re-included by a
// negated rule.
package exclusions

import "strings"

// Set is an immutable denylist of directory names, file names, file name
// suffixes and file name prefixes. The zero value excludes nothing.
type Set struct {
	directories  map[string]struct{}
	fileNames    map[string]struct{}
	fileSuffixes []string
	filePrefixes []string
}

// Lists is the plain-slice form of a Set, used for construction and configuration.
type Lists struct {
	Directories  []string `mapstructure:"directories" yaml:"directories"`
	FileNames    []string `mapstructure:"file_names" yaml:"file_names"`
	FileSuffixes []string `mapstructure:"suffixes" yaml:"suffixes"`
	FilePrefixes []string `mapstructure:"prefixes" yaml:"prefixes"`
}

// New builds a Set from lists. Blank entries are dropped.
func New(lists Lists) Set {
	set := Set{
		directories: make(map[string]struct{}, len(lists.Directories)),
		fileNames:   make(map[string]struct{}, len(lists.FileNames)),
	}
	for _, name := range lists.Directories {
		if name = strings.TrimSpace(name); name != "" {
			set.directories[name] = struct{}{}
		}
	}
	for _, name := range lists.FileNames {
		if name = strings.TrimSpace(name); name != "" {
			set.fileNames[name] = struct{}{}
		}
	}
	set.fileSuffixes = appendUnique(nil, lists.FileSuffixes)
	set.filePrefixes = appendUnique(nil, lists.FilePrefixes)
	return set
}

// Default returns a fresh copy of the built-in denylist.
func Default() Set {
	return New(DefaultLists())
}

// ExcludesDirectory reports whether a directory with this base name is pruned.
func (set Set) ExcludesDirectory(name string) bool {
	_, excluded := set.directories[name]
	return excluded
}

// ExcludesFile reports whether a file with this base name is dropped by
// exact name, prefix or suffix.
func (set Set) ExcludesFile(name string) bool {
	if _, excluded := set.fileNames[name]; excluded {
		return true
	}
	for _, suffix := range set.fileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	for _, prefix := range set.filePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Merge returns a new Set containing the entries of both sets.
func (set Set) Merge(other Set) Set {
	lists := set.Lists()
	otherLists := other.Lists()
	lists.Directories = append(lists.Directories, otherLists.Directories...)
	lists.FileNames = append(lists.FileNames, otherLists.FileNames...)
	lists.FileSuffixes = append(lists.FileSuffixes, otherLists.FileSuffixes...)
	lists.FilePrefixes = append(lists.FilePrefixes, otherLists.FilePrefixes...)
	return New(lists)
}

// Lists returns the entries of the set as slices. Map-backed entries are
// returned in no particular order.
func (set Set) Lists() Lists {
	lists := Lists{
		FileSuffixes: append([]string(nil), set.fileSuffixes...),
		FilePrefixes: append([]string(nil), set.filePrefixes...),
	}
	for name := range set.directories {
		lists.Directories = append(lists.Directories, name)
	}
	for name := range set.fileNames {
		lists.FileNames = append(lists.FileNames, name)
	}
	return lists
}

func appendUnique(target []string, values []string) []string {
	for _, value := range values {
		if value == "" {
			continue
		}
		duplicate := false
		for _, existing := range target {
			if existing == value {
				duplicate = true
				break
			}
		}
		if !duplicate {
			target = append(target, value)
		}
	}
	return target
}
