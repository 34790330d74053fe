// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/config"
	"github.com/temirov/repodoc/internal/services/clipboard"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	configFlagName         = "config"
	verboseFlagName        = "verbose"
	versionTemplate        = "repodoc version: {{.Version}}\n"
	defaultPath            = "."
	rootUse                = "repodoc"
	rootShortDescription   = "repodoc command line interface"
	rootLongDescription    = `repodoc scans a repository and lists the files worth documenting.
Version control metadata, dependency and build directories, caches, logs and
top-level boilerplate documents are always skipped. Rules from .gitignore and
.ignore at the scanned root, plus any --exclude-rule lines, narrow the result
further with gitignore semantics.`
	configFlagDescription  = "configuration file (default ./.repodoc.yaml)"
	verboseFlagDescription = "log every excluded entry"

	warningKindField = "kind"
	warningPathField = "path"
	warningLineField = "line"
	warningRootField = "root"

	invalidFormatMessage       = "invalid format value '%s'"
	loadConfigurationErrorText = "load configuration: %w"
	loggerErrorFormat          = "create logger: %w"
)

// dependencies are the collaborators a command tree is built with.
type dependencies struct {
	clipboard clipboard.Copier
	now       func() time.Time
	// loggerOverride, when set, replaces the logger built from --verbose.
	loggerOverride *zap.Logger
}

// application holds state shared by every subcommand of one invocation.
type application struct {
	dependencies
	configurationPath string
	verbose           bool
	configuration     config.ApplicationConfiguration
	logger            *zap.Logger
}

// Execute runs the repodoc application. An interrupt cancels any running scan.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCommand := newRootCommand(dependencies{clipboard: clipboard.NewService(), now: time.Now})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// newRootCommand builds the root Cobra command.
func newRootCommand(deps dependencies) *cobra.Command {
	if deps.now == nil {
		deps.now = time.Now
	}
	app := &application{dependencies: deps}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return app.prepare(command)
		},
		PersistentPostRun: func(command *cobra.Command, arguments []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.AddCommand(
		app.newGenerateCommand(),
		app.newListCommand(),
		app.newCheckCommand(),
		newInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// prepare builds the logger and loads configuration before a subcommand runs.
func (app *application) prepare(command *cobra.Command) error {
	if app.loggerOverride != nil {
		app.logger = app.loggerOverride
	} else {
		logger, loggerError := utils.NewApplicationLogger(app.verbose)
		if loggerError != nil {
			return fmt.Errorf(loggerErrorFormat, loggerError)
		}
		app.logger = logger
	}
	if command.Name() == initUse {
		return nil
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: app.configurationPath})
	if configurationError != nil {
		return fmt.Errorf(loadConfigurationErrorText, configurationError)
	}
	app.configuration = configuration
	return nil
}

// logWarnings reports scan warnings for one root.
func (app *application) logWarnings(root string, warnings []types.Warning) {
	for _, warning := range warnings {
		fields := []zap.Field{
			zap.String(warningRootField, root),
			zap.String(warningKindField, string(warning.Kind)),
			zap.String(warningPathField, warning.Path),
		}
		if warning.Line > 0 {
			fields = append(fields, zap.Int(warningLineField, warning.Line))
		}
		app.logger.Warn(warning.Message, fields...)
	}
}

// copyToClipboard copies rendered output when requested.
func (app *application) copyToClipboard(enabled bool, rendered string) error {
	if !enabled || app.clipboard == nil {
		return nil
	}
	return app.clipboard.Copy(rendered)
}

// resolveRootPath converts an input directory to a clean absolute path.
func resolveRootPath(input string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(input)
	if absolutePathError != nil {
		return "", fmt.Errorf("abs failed for '%s': %w", input, absolutePathError)
	}
	return filepath.Clean(absolutePath), nil
}
