// Package output renders inventories as documentation templates, tree
// listings and structured documents.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "
	yamlIndent   = 2

	xmlHeader        = xml.Header
	xmlRootElement   = "inventory"
	unsupportedError = "unsupported format %q"
)

// Options carries document metadata that is not part of an inventory.
type Options struct {
	// Author is written into the markdown header.
	Author string
	// GeneratedAt is the generation time; the zero value means now.
	GeneratedAt time.Time
}

func (options Options) generatedAt() time.Time {
	if options.GeneratedAt.IsZero() {
		return time.Now()
	}
	return options.GeneratedAt
}

// inventoryDocument is the structured form shared by JSON, XML and YAML.
type inventoryDocument struct {
	XMLName     xml.Name            `json:"-" yaml:"-" xml:"inventory"`
	Root        string              `json:"root" xml:"root,attr" yaml:"root"`
	TotalFiles  int                 `json:"totalFiles" xml:"totalFiles,attr" yaml:"totalFiles"`
	TotalSize   string              `json:"totalSize" xml:"totalSize,attr" yaml:"totalSize"`
	Directories []directoryDocument `json:"directories" xml:"directory" yaml:"directories"`
}

type directoryDocument struct {
	Path  string         `json:"path" xml:"path,attr" yaml:"path"`
	Files []fileDocument `json:"files" xml:"file" yaml:"files"`
}

type fileDocument struct {
	Path         string `json:"path" xml:"path,attr" yaml:"path"`
	Name         string `json:"name" xml:"name,attr" yaml:"name"`
	SizeBytes    int64  `json:"sizeBytes" xml:"sizeBytes,attr" yaml:"sizeBytes"`
	Size         string `json:"size" xml:"size,attr" yaml:"size"`
	LastModified string `json:"lastModified" xml:"lastModified,attr" yaml:"lastModified"`
}

// Render renders inventories in the requested format. Markdown and raw
// output concatenate one section per inventory; structured formats emit a
// single document for one inventory and a list otherwise.
func Render(format string, inventories []types.Inventory, options Options) (string, error) {
	switch strings.ToLower(format) {
	case types.FormatMarkdown:
		sections := make([]string, 0, len(inventories))
		for _, inventory := range inventories {
			sections = append(sections, RenderMarkdown(inventory, options))
		}
		return strings.Join(sections, "\n\n"), nil
	case types.FormatRaw:
		var builder strings.Builder
		for _, inventory := range inventories {
			builder.WriteString(RenderRaw(inventory))
		}
		return builder.String(), nil
	case types.FormatJSON:
		return RenderJSON(inventories)
	case types.FormatXML:
		return RenderXML(inventories)
	case types.FormatYAML:
		return RenderYAML(inventories)
	default:
		return "", fmt.Errorf(unsupportedError, format)
	}
}

// IsSupportedFormat reports whether Render accepts format.
func IsSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case types.FormatMarkdown, types.FormatRaw, types.FormatJSON, types.FormatXML, types.FormatYAML:
		return true
	}
	return false
}

// RenderJSON marshals inventories as indented JSON.
func RenderJSON(inventories []types.Inventory) (string, error) {
	documents := buildDocuments(inventories)
	var encoded []byte
	var jsonEncodeError error
	if len(documents) == 1 {
		encoded, jsonEncodeError = json.MarshalIndent(documents[0], indentPrefix, indentSpacer)
	} else {
		encoded, jsonEncodeError = json.MarshalIndent(documents, indentPrefix, indentSpacer)
	}
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded) + "\n", nil
}

// RenderXML marshals inventories as an XML document.
func RenderXML(inventories []types.Inventory) (string, error) {
	documents := buildDocuments(inventories)
	var value interface{}
	if len(documents) == 1 {
		value = documents[0]
	} else {
		value = struct {
			XMLName     xml.Name            `xml:"results"`
			Inventories []inventoryDocument `xml:"inventory"`
		}{Inventories: documents}
	}
	encoded, xmlMarshalError := xml.MarshalIndent(value, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded) + "\n", nil
}

// RenderYAML marshals inventories as YAML.
func RenderYAML(inventories []types.Inventory) (string, error) {
	documents := buildDocuments(inventories)
	var builder strings.Builder
	encoder := yaml.NewEncoder(&builder)
	encoder.SetIndent(yamlIndent)
	var encodeError error
	if len(documents) == 1 {
		encodeError = encoder.Encode(documents[0])
	} else {
		encodeError = encoder.Encode(documents)
	}
	if encodeError != nil {
		return "", encodeError
	}
	if closeError := encoder.Close(); closeError != nil {
		return "", closeError
	}
	return builder.String(), nil
}

func buildDocuments(inventories []types.Inventory) []inventoryDocument {
	documents := make([]inventoryDocument, 0, len(inventories))
	for _, inventory := range inventories {
		document := inventoryDocument{
			XMLName:     xml.Name{Local: xmlRootElement},
			Root:        inventory.Root,
			TotalFiles:  inventory.FileCount(),
			TotalSize:   utils.FormatFileSize(inventory.TotalBytes()),
			Directories: make([]directoryDocument, 0, len(inventory.Directories)),
		}
		for _, group := range inventory.Directories {
			directory := directoryDocument{Path: group.Path, Files: make([]fileDocument, 0, len(group.Files))}
			for _, file := range group.Files {
				directory.Files = append(directory.Files, fileDocument{
					Path:         file.RelativePath,
					Name:         file.Name,
					SizeBytes:    file.SizeBytes,
					Size:         utils.FormatFileSize(file.SizeBytes),
					LastModified: utils.FormatTimestamp(file.ModifiedAt),
				})
			}
			document.Directories = append(document.Directories, directory)
		}
		documents = append(documents, document)
	}
	return documents
}
