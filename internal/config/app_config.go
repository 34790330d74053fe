package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/repodoc/internal/exclusions"
	"github.com/temirov/repodoc/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Generate CommandConfiguration `mapstructure:"generate"`
	List     CommandConfiguration `mapstructure:"list"`
	// Defaults lists entries added to the built-in exclusion set.
	Defaults exclusions.Lists `mapstructure:"defaults"`
}

// CommandConfiguration defines options shared by the generate and list commands.
type CommandConfiguration struct {
	Format    string               `mapstructure:"format"`
	Output    string               `mapstructure:"output"`
	Author    string               `mapstructure:"author"`
	Clipboard *bool                `mapstructure:"clipboard"`
	Paths     PathConfiguration    `mapstructure:"paths"`
	Overlay   OverlayConfiguration `mapstructure:"overlay"`
}

// PathConfiguration configures the rules applied during traversal.
type PathConfiguration struct {
	// Exclude holds extra gitignore-style rule lines compiled after the rules files.
	Exclude       []string `mapstructure:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore"`
	IncludeGit    *bool    `mapstructure:"include_git"`
}

// OverlayConfiguration lists files removed from the inventory after the scan.
type OverlayConfiguration struct {
	Exclude      []string `mapstructure:"exclude"`
	ExcludeGlobs []string `mapstructure:"exclude_globs"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The local file is the explicit path when given, otherwise .repodoc.yaml in
// the working directory. Missing files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Scalar settings are replaced; exclusion-set additions accumulate.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Generate = result.Generate.merge(override.Generate)
	result.List = result.List.merge(override.List)
	result.Defaults = exclusions.Lists{
		Directories:  mergeLists(config.Defaults.Directories, override.Defaults.Directories),
		FileNames:    mergeLists(config.Defaults.FileNames, override.Defaults.FileNames),
		FileSuffixes: mergeLists(config.Defaults.FileSuffixes, override.Defaults.FileSuffixes),
		FilePrefixes: mergeLists(config.Defaults.FilePrefixes, override.Defaults.FilePrefixes),
	}
	return result
}

// ExclusionSet returns the built-in exclusion set extended with the configured additions.
func (config ApplicationConfiguration) ExclusionSet() exclusions.Set {
	return exclusions.Default().Merge(exclusions.New(config.Defaults))
}

func (config CommandConfiguration) merge(override CommandConfiguration) CommandConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Author != "" {
		result.Author = override.Author
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Paths = result.Paths.merge(override.Paths)
	result.Overlay = result.Overlay.merge(override.Overlay)
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = utils.DeduplicatePatterns(override.Exclude)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.IncludeGit != nil {
		result.IncludeGit = cloneBool(override.IncludeGit)
	}
	return result
}

func (config OverlayConfiguration) merge(override OverlayConfiguration) OverlayConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = utils.DeduplicatePatterns(override.Exclude)
	}
	if len(override.ExcludeGlobs) > 0 {
		result.ExcludeGlobs = utils.DeduplicatePatterns(override.ExcludeGlobs)
	}
	return result
}

// BoolOrDefault dereferences value, falling back to fallback when unset.
func BoolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func mergeLists(base []string, additions []string) []string {
	combined := make([]string, 0, len(base)+len(additions))
	combined = append(combined, base...)
	combined = append(combined, additions...)
	return utils.DeduplicatePatterns(combined)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
