package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repodoc/internal/output"
	"github.com/temirov/repodoc/internal/overlay"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/walker"
)

const (
	listUse              = "list [directories...]"
	listAlias            = "l"
	listShortDescription = "print the relevant files of one or more directories (" + listAlias + ")"
	listLongDescription  = `Scan each directory and print its relevant files grouped by directory.
Directories are scanned concurrently; results keep the order of the arguments.`
	listUsageExample = `  # Tree view of the current directory
  repodoc list

  # JSON for two services
  repodoc list ./api ./worker --format json`
)

// newListCommand returns the list subcommand.
func (app *application) newListCommand() *cobra.Command {
	var flags scanFlags

	listCommand := &cobra.Command{
		Use:     listUse,
		Aliases: []string{listAlias},
		Short:   listShortDescription,
		Long:    listLongDescription,
		Example: listUsageExample,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return app.runList(command, arguments, flags)
		},
	}

	addScanFlags(listCommand, &flags, types.FormatRaw)
	return listCommand
}

func (app *application) runList(command *cobra.Command, directories []string, flags scanFlags) error {
	settings, settingsError := resolveScanSettings(command, flags, app.configuration.List)
	if settingsError != nil {
		return settingsError
	}

	roots := make([]string, len(directories))
	for index, directory := range directories {
		root, rootError := resolveRootPath(directory)
		if rootError != nil {
			return rootError
		}
		roots[index] = root
	}

	results := make([]walker.Result, len(roots))
	group, groupContext := errgroup.WithContext(command.Context())
	for index, root := range roots {
		group.Go(func() error {
			result, loadError := walker.Load(groupContext, app.loadOptions(root, settings))
			if loadError != nil {
				return loadError
			}
			results[index] = result
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return waitError
	}

	inventories := make([]types.Inventory, 0, len(results))
	for index, result := range results {
		app.logWarnings(roots[index], result.Warnings)
		inventory, overlayError := overlay.Apply(result.Inventory, settings.edits)
		if overlayError != nil {
			return overlayError
		}
		inventories = append(inventories, inventory)
	}

	rendered, renderError := output.Render(settings.format, inventories, output.Options{GeneratedAt: app.now()})
	if renderError != nil {
		return renderError
	}
	if _, writeError := fmt.Fprint(command.OutOrStdout(), rendered); writeError != nil {
		return writeError
	}
	return app.copyToClipboard(settings.clipboard, rendered)
}
