package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	markdownTitleFormat       = "# File Documentation: %s"
	markdownGeneratedOnFormat = "**Generated on:** %s UTC"
	markdownAuthorFormat      = "**Generated by:** %s"
	markdownSourceFormat      = "**Source directory:** `%s`"
	markdownTotalFormat       = "**Total files documented:** %d"
	markdownInstructions      = "> **Instructions:** Please fill in the description for each file below. This will help team members understand the purpose and functionality of each file in the repository."
	markdownRule              = "---"
	markdownRootHeading       = "## Root Directory"
	markdownDirectoryFormat   = "## Directory: `%s`"
	markdownFileFormat        = "### `%s`"
	markdownPathFormat        = "**Path:** `%s`  "
	markdownSizeFormat        = "**Size:** %s  "
	markdownModifiedFormat    = "**Last Modified:** %s"
	unknownAuthor             = "_[Name]_"
)

var markdownFilePlaceholder = []string{
	"**Description:**",
	"",
	"_[Please describe the purpose and functionality of this file]_",
	"",
	"**Key Features:**",
	"",
	"- _[List main features or functions]_",
	"- _[Add more items as needed]_",
	"",
	"**Dependencies:**",
	"",
	"_[List any dependencies or related files]_",
	"",
	markdownRule,
	"",
}

var markdownFooter = []string{
	"## Documentation Completion Status",
	"",
	"- [ ] All file descriptions completed",
	"- [ ] All key features documented",
	"- [ ] All dependencies identified",
	"- [ ] Documentation reviewed and approved",
	"",
	"**Last updated:** _[Date]_  ",
	"**Reviewed by:** _[Name]_",
}

// RenderMarkdown renders the documentation template for one inventory: a
// header, one section per directory (root first, then by path) and a file
// block with placeholders for every file.
func RenderMarkdown(inventory types.Inventory, options Options) string {
	author := strings.TrimSpace(options.Author)
	if author == "" {
		author = unknownAuthor
	}

	lines := []string{
		fmt.Sprintf(markdownTitleFormat, filepath.Base(inventory.Root)),
		"",
		fmt.Sprintf(markdownGeneratedOnFormat, utils.FormatGenerationTime(options.generatedAt())),
		fmt.Sprintf(markdownAuthorFormat, author),
		fmt.Sprintf(markdownSourceFormat, inventory.Root),
		fmt.Sprintf(markdownTotalFormat, inventory.FileCount()),
		"",
		markdownInstructions,
		"",
		markdownRule,
		"",
	}

	for _, group := range sortedGroups(inventory.Directories) {
		if group.Path == utils.RootDirectoryPath {
			lines = append(lines, markdownRootHeading, "")
		} else {
			lines = append(lines, fmt.Sprintf(markdownDirectoryFormat, group.Path), "")
		}
		for _, file := range sortedFiles(group.Files) {
			lines = append(lines,
				fmt.Sprintf(markdownFileFormat, file.Name),
				"",
				fmt.Sprintf(markdownPathFormat, file.RelativePath),
				fmt.Sprintf(markdownSizeFormat, utils.FormatFileSize(file.SizeBytes)),
				fmt.Sprintf(markdownModifiedFormat, utils.FormatTimestamp(file.ModifiedAt)),
				"",
			)
			lines = append(lines, markdownFilePlaceholder...)
		}
	}
	lines = append(lines, markdownFooter...)
	return strings.Join(lines, "\n") + "\n"
}

// sortedGroups orders groups root first, then by path.
func sortedGroups(groups []types.DirectoryGroup) []types.DirectoryGroup {
	sorted := append([]types.DirectoryGroup(nil), groups...)
	sort.SliceStable(sorted, func(left, right int) bool {
		leftIsRoot := sorted[left].Path == utils.RootDirectoryPath
		rightIsRoot := sorted[right].Path == utils.RootDirectoryPath
		if leftIsRoot != rightIsRoot {
			return leftIsRoot
		}
		return sorted[left].Path < sorted[right].Path
	})
	return sorted
}

// sortedFiles orders files by case-insensitive name.
func sortedFiles(files []types.DirectoryEntry) []types.DirectoryEntry {
	sorted := append([]types.DirectoryEntry(nil), files...)
	sort.SliceStable(sorted, func(left, right int) bool {
		return strings.ToLower(sorted[left].Name) < strings.ToLower(sorted[right].Name)
	})
	return sorted
}
