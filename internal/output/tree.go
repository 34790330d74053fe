package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directoryNameSuffix = "/"
	fileLineFormat      = "%s%s (%s)\n"
	directoryLineFormat = "%s%s%s\n"
)

// treeNode is one directory or file in the rendered listing.
type treeNode struct {
	name     string
	file     *types.DirectoryEntry
	children []*treeNode
}

func (node *treeNode) child(name string) *treeNode {
	for _, existing := range node.children {
		if existing.file == nil && existing.name == name {
			return existing
		}
	}
	created := &treeNode{name: name}
	node.children = append(node.children, created)
	return created
}

// RenderRaw renders one inventory as a tree listing headed by its root and a summary line.
func RenderRaw(inventory types.Inventory) string {
	var builder strings.Builder
	WriteTreeRaw(&builder, inventory)
	return builder.String()
}

// WriteTreeRaw writes the tree listing of inventory to writer. Children keep
// inventory order, so a directory's files precede its subdirectories.
func WriteTreeRaw(writer io.Writer, inventory types.Inventory) {
	root := buildTree(inventory)
	fmt.Fprintln(writer, inventory.Root)
	fmt.Fprintln(writer, FormatSummaryLine(inventory))
	for index, child := range root.children {
		renderTreeNode(writer, child, "", index == len(root.children)-1)
	}
}

// FormatSummaryLine formats the file count and total size of an inventory.
func FormatSummaryLine(inventory types.Inventory) string {
	label := "files"
	if inventory.FileCount() == 1 {
		label = "file"
	}
	return fmt.Sprintf("Summary: %d %s, %s", inventory.FileCount(), label, utils.FormatFileSize(inventory.TotalBytes()))
}

func buildTree(inventory types.Inventory) *treeNode {
	root := &treeNode{}
	for _, group := range inventory.Directories {
		parent := root
		for _, segment := range utils.SplitRelativePath(group.Path) {
			parent = parent.child(segment)
		}
		for fileIndex := range group.Files {
			file := group.Files[fileIndex]
			parent.children = append(parent.children, &treeNode{name: file.Name, file: &file})
		}
	}
	return root
}

func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(writer io.Writer, node *treeNode, prefix string, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isLast)
	if node.file != nil {
		fmt.Fprintf(writer, fileLineFormat, linePrefix, node.name, utils.FormatFileSize(node.file.SizeBytes))
		return
	}
	fmt.Fprintf(writer, directoryLineFormat, linePrefix, node.name, directoryNameSuffix)
	for index, child := range node.children {
		renderTreeNode(writer, child, childPrefix, index == len(node.children)-1)
	}
}
