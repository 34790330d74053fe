// Package config loads rules files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	byteOrderMark          = "\ufeff"
	maximumRuleLineBytes   = 1024 * 1024
	initialRuleBufferBytes = 64 * 1024

	readRulesFileErrorFormat   = "read rules file %s: %w"
	rulesFileUnreadableMessage = "rules file unreadable, continuing without it: %v"
)

// RuleFileOptions selects which rules files at the scan root are consulted.
type RuleFileOptions struct {
	UseGitignore  bool
	UseIgnoreFile bool
}

// LoadRuleLines reads a rules file and returns its raw lines in file order.
// Blank lines and comments are kept so line numbers stay accurate. A missing
// file yields no lines and no error.
//
// #nosec G304
func LoadRuleLines(rulesFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(rulesFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(readRulesFileErrorFormat, rulesFilePath, openFileError)
	}
	defer func() {
		_ = fileHandle.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialRuleBufferBytes), maximumRuleLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		lines = append(lines, line)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(readRulesFileErrorFormat, rulesFilePath, scanError)
	}
	return lines, nil
}

// LoadRuleSources reads the enabled rules files from rootDirectoryPath,
// .gitignore before .ignore. A file that exists but cannot be read is
// reported as a warning and skipped.
func LoadRuleSources(rootDirectoryPath string, options RuleFileOptions) ([]rules.Source, []types.Warning) {
	var fileNames []string
	if options.UseGitignore {
		fileNames = append(fileNames, utils.GitIgnoreFileName)
	}
	if options.UseIgnoreFile {
		fileNames = append(fileNames, utils.IgnoreFileName)
	}

	var sources []rules.Source
	var warnings []types.Warning
	for _, fileName := range fileNames {
		lines, loadError := LoadRuleLines(filepath.Join(rootDirectoryPath, fileName))
		if loadError != nil {
			warnings = append(warnings, types.Warning{
				Kind:    types.WarningRulesFileUnreadable,
				Path:    fileName,
				Message: fmt.Sprintf(rulesFileUnreadableMessage, loadError),
			})
			continue
		}
		if len(lines) == 0 {
			continue
		}
		sources = append(sources, rules.Source{Name: fileName, Lines: lines})
	}
	return sources, warnings
}
