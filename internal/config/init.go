package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/repodoc/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `generate:
  format: markdown
  output: file_documentation.md
  author: ""
  clipboard: false
  paths:
    exclude: []
    use_gitignore: true
    use_ignore: true
    include_git: false
  overlay:
    exclude: []
    exclude_globs: []
list:
  format: raw
  paths:
    exclude: []
    use_gitignore: true
    use_ignore: true
    include_git: false
defaults:
  directories: []
  file_names: []
  suffixes: []
  prefixes: []
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// ErrConfigurationExists is returned when init would overwrite a file without Force.
var ErrConfigurationExists = errors.New("configuration file already exists")

// InitializeConfiguration writes the default configuration to the requested
// target and returns the written path.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := initDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if options.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, openError := os.OpenFile(destinationPath, flags, 0o600)
	if openError != nil {
		if errors.Is(openError, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrConfigurationExists, destinationPath)
		}
		return "", fmt.Errorf("open configuration %s: %w", destinationPath, openError)
	}
	if _, writeError := file.WriteString(defaultConfigurationTemplate); writeError != nil {
		_ = file.Close()
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}
	if closeError := file.Close(); closeError != nil {
		return "", fmt.Errorf("close configuration %s: %w", destinationPath, closeError)
	}
	return destinationPath, nil
}

// initDestination resolves the file path for options.Target, creating the
// global configuration directory when needed.
func initDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, getwdError := os.Getwd()
			if getwdError != nil {
				return "", fmt.Errorf("determine working directory: %w", getwdError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf("resolve home directory: %w", homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if mkdirError := os.MkdirAll(configurationDirectory, 0o755); mkdirError != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, mkdirError)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
