package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/repodoc/internal/config"
	"github.com/temirov/repodoc/internal/output"
	"github.com/temirov/repodoc/internal/overlay"
	"github.com/temirov/repodoc/internal/utils"
	"github.com/temirov/repodoc/internal/walker"
)

const (
	formatFlagName       = "format"
	outputFlagName       = "output"
	outputShorthand      = "o"
	authorFlagName       = "author"
	excludeFlagName      = "exclude"
	excludeShorthand     = "x"
	excludeGlobFlagName  = "exclude-glob"
	excludeRuleFlagName  = "exclude-rule"
	excludeRuleShorthand = "e"
	noGitignoreFlagName  = "no-gitignore"
	noIgnoreFlagName     = "no-ignore"
	includeGitFlagName   = "git"
	clipboardFlagName    = "clipboard"

	formatFlagDescription           = "output format: markdown, raw, json, xml or yaml"
	outputFlagDescription           = "output file, - for standard output"
	authorFlagDescription           = "author written into the document header"
	excludeFlagDescription          = "remove a file or directory from the result"
	excludeGlobFlagDescription      = "remove files matching a glob from the result"
	excludeRuleFlagDescription      = "extra gitignore-style rule applied after the rules files"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeGitFlagDescription       = "include git directory"
	clipboardFlagDescription        = "copy the rendered output to the clipboard"

	standardOutputPath = "-"
)

// scanFlags holds the flags shared by commands that scan a tree.
type scanFlags struct {
	format            string
	extraRules        []string
	overlayPaths      []string
	overlayGlobs      []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
	clipboard         bool
}

// scanSettings is the effective configuration of one scanning command after
// configuration files and flags are combined.
type scanSettings struct {
	format        string
	extraRules    []string
	useGitignore  bool
	useIgnoreFile bool
	includeGit    bool
	edits         overlay.Edits
	clipboard     bool
}

// addRuleFlags registers the flags that shape the rule set.
func addRuleFlags(command *cobra.Command, flags *scanFlags) {
	command.Flags().StringArrayVarP(&flags.extraRules, excludeRuleFlagName, excludeRuleShorthand, nil, excludeRuleFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.includeGit, includeGitFlagName, false, includeGitFlagDescription)
}

// addScanFlags registers rule, overlay, format and clipboard flags.
func addScanFlags(command *cobra.Command, flags *scanFlags, defaultFormat string) {
	addRuleFlags(command, flags)
	command.Flags().StringVar(&flags.format, formatFlagName, defaultFormat, formatFlagDescription)
	command.Flags().StringArrayVarP(&flags.overlayPaths, excludeFlagName, excludeShorthand, nil, excludeFlagDescription)
	command.Flags().StringArrayVar(&flags.overlayGlobs, excludeGlobFlagName, nil, excludeGlobFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.clipboard, clipboardFlagName, false, clipboardFlagDescription)
}

// resolveRuleSettings merges configured rule options with flags. A flag wins
// only when it was given on the command line; extra rules from flags follow
// the configured ones.
func resolveRuleSettings(command *cobra.Command, flags scanFlags, configured config.CommandConfiguration) scanSettings {
	changed := command.Flags().Changed

	settings := scanSettings{
		useGitignore:  config.BoolOrDefault(configured.Paths.UseGitignore, true),
		useIgnoreFile: config.BoolOrDefault(configured.Paths.UseIgnoreFile, true),
		includeGit:    config.BoolOrDefault(configured.Paths.IncludeGit, false),
		extraRules:    append(append([]string{}, configured.Paths.Exclude...), flags.extraRules...),
	}
	if changed(noGitignoreFlagName) {
		settings.useGitignore = !flags.disableGitignore
	}
	if changed(noIgnoreFlagName) {
		settings.useIgnoreFile = !flags.disableIgnoreFile
	}
	if changed(includeGitFlagName) {
		settings.includeGit = flags.includeGit
	}
	return settings
}

// resolveScanSettings extends resolveRuleSettings with format, overlay and
// clipboard settings. Overlay flags extend the configured lists.
func resolveScanSettings(command *cobra.Command, flags scanFlags, configured config.CommandConfiguration) (scanSettings, error) {
	changed := command.Flags().Changed

	settings := resolveRuleSettings(command, flags, configured)
	settings.format = flags.format
	if !changed(formatFlagName) && configured.Format != "" {
		settings.format = configured.Format
	}
	settings.format = strings.ToLower(settings.format)
	if !output.IsSupportedFormat(settings.format) {
		return scanSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}

	settings.clipboard = config.BoolOrDefault(configured.Clipboard, false)
	if changed(clipboardFlagName) {
		settings.clipboard = flags.clipboard
	}
	settings.edits = overlay.Edits{
		ExcludePaths: utils.DeduplicatePatterns(append(append([]string{}, configured.Overlay.Exclude...), flags.overlayPaths...)),
		ExcludeGlobs: utils.DeduplicatePatterns(append(append([]string{}, configured.Overlay.ExcludeGlobs...), flags.overlayGlobs...)),
	}
	return settings, nil
}

// loadOptions builds walker options for root from settings.
func (app *application) loadOptions(root string, settings scanSettings) walker.LoadOptions {
	return walker.LoadOptions{
		Root:          root,
		UseGitignore:  settings.useGitignore,
		UseIgnoreFile: settings.useIgnoreFile,
		IncludeGit:    settings.includeGit,
		ExtraRules:    settings.extraRules,
		Exclusions:    app.configuration.ExclusionSet(),
		Logger:        app.logger,
	}
}
