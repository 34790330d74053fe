package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/repodoc/internal/output"
	"github.com/temirov/repodoc/internal/overlay"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
	"github.com/temirov/repodoc/internal/walker"
)

const (
	generateUse              = "generate [directory]"
	generateAlias            = "g"
	generateShortDescription = "write the documentation template (" + generateAlias + ")"
	generateLongDescription  = `Scan a directory and write a markdown documentation template with one
section per directory and a placeholder block per relevant file.
Use --format to emit raw, json, xml or yaml instead.`
	generateUsageExample = `  # Document the current directory into file_documentation.md
  repodoc generate

  # Leave tests out and print to standard output
  repodoc generate ./service --exclude-glob '**/*_test.go' -o -`

	generateSuccessMessage = "Documentation template generated successfully!\nFile saved to: %s\nFiles documented: %d\n"
	writeOutputErrorFormat = "write %s: %w"
)

// generateFlags extends scanFlags with document-only options.
type generateFlags struct {
	scanFlags
	outputPath string
	author     string
}

// newGenerateCommand returns the generate subcommand.
func (app *application) newGenerateCommand() *cobra.Command {
	var flags generateFlags

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := defaultPath
			if len(arguments) == 1 {
				directory = arguments[0]
			}
			return app.runGenerate(command, directory, flags)
		},
	}

	addScanFlags(generateCommand, &flags.scanFlags, types.FormatMarkdown)
	generateCommand.Flags().StringVarP(&flags.outputPath, outputFlagName, outputShorthand, "", outputFlagDescription)
	generateCommand.Flags().StringVar(&flags.author, authorFlagName, "", authorFlagDescription)
	return generateCommand
}

func (app *application) runGenerate(command *cobra.Command, directory string, flags generateFlags) error {
	configured := app.configuration.Generate
	settings, settingsError := resolveScanSettings(command, flags.scanFlags, configured)
	if settingsError != nil {
		return settingsError
	}
	outputPath := resolveOutputPath(command, flags.outputPath, configured.Output)
	author := flags.author
	if !command.Flags().Changed(authorFlagName) {
		author = configured.Author
	}

	root, rootError := resolveRootPath(directory)
	if rootError != nil {
		return rootError
	}
	result, loadError := walker.Load(command.Context(), app.loadOptions(root, settings))
	if loadError != nil {
		return loadError
	}
	app.logWarnings(root, result.Warnings)

	inventory, overlayError := overlay.Apply(result.Inventory, settings.edits)
	if overlayError != nil {
		return overlayError
	}
	rendered, renderError := output.Render(settings.format, []types.Inventory{inventory}, output.Options{
		Author:      author,
		GeneratedAt: app.now(),
	})
	if renderError != nil {
		return renderError
	}

	if outputPath == standardOutputPath {
		if _, writeError := fmt.Fprint(command.OutOrStdout(), rendered); writeError != nil {
			return writeError
		}
	} else {
		absoluteOutputPath, absoluteError := filepath.Abs(outputPath)
		if absoluteError != nil {
			return fmt.Errorf(writeOutputErrorFormat, outputPath, absoluteError)
		}
		if writeError := os.WriteFile(absoluteOutputPath, []byte(rendered), 0o644); writeError != nil {
			return fmt.Errorf(writeOutputErrorFormat, absoluteOutputPath, writeError)
		}
		fmt.Fprintf(command.OutOrStdout(), generateSuccessMessage, absoluteOutputPath, inventory.FileCount())
	}

	return app.copyToClipboard(settings.clipboard, rendered)
}

// resolveOutputPath returns the flag value when given, else the configured
// path, else the default file name.
func resolveOutputPath(command *cobra.Command, flagValue string, configured string) string {
	if command.Flags().Changed(outputFlagName) && flagValue != "" {
		return flagValue
	}
	if configured != "" {
		return configured
	}
	return utils.DefaultOutputFileName
}
