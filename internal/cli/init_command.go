package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/repodoc/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a starter configuration file"
	initLongDescription  = `Write a configuration file with every supported setting. By default the file
is .repodoc.yaml in the working directory; --global writes
~/.repodoc/config.yaml instead.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the global configuration instead of the local one"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initSuccessFormat         = "Configuration written to %s\n"
)

// newInitCommand returns the init subcommand.
func newInitCommand() *cobra.Command {
	var global, force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, destinationPath)
			return writeError
		},
	}

	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
