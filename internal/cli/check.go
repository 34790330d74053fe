package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/repodoc/internal/walker"
)

const (
	checkUse              = "check <directory> <paths...>"
	checkShortDescription = "explain why paths are included or excluded"
	checkLongDescription  = `Report, for each path relative to the directory, whether a scan would keep
it and which layer decided. A trailing slash marks a path as a directory; a
path that exists as a directory under the root is treated as one as well.`
	checkUsageExample = `  repodoc check . build/ src/main.go logs/today.log`

	checkIncludedVerdict = "included"
	checkExcludedVerdict = "excluded"
	checkDefaultSetText  = "default exclusion set"
	checkNoRuleText      = "no matching rule"
	checkPrunedFormat    = "%s (pruned at %s)"
	checkRuleFormat      = "%s:%d: %s"
	checkLineFormat      = "%s\t%s\t%s\n"
)

// newCheckCommand returns the check subcommand.
func (app *application) newCheckCommand() *cobra.Command {
	var flags scanFlags

	checkCommand := &cobra.Command{
		Use:     checkUse,
		Short:   checkShortDescription,
		Long:    checkLongDescription,
		Example: checkUsageExample,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runCheck(command, arguments[0], arguments[1:], flags)
		},
	}

	addRuleFlags(checkCommand, &flags)
	return checkCommand
}

func (app *application) runCheck(command *cobra.Command, directory string, paths []string, flags scanFlags) error {
	settings := resolveRuleSettings(command, flags, app.configuration.List)
	root, rootError := resolveRootPath(directory)
	if rootError != nil {
		return rootError
	}
	loadOptions := app.loadOptions(root, settings)
	ruleSet, warnings, prepareError := walker.PrepareRules(loadOptions)
	if prepareError != nil {
		return prepareError
	}
	app.logWarnings(root, warnings)

	for _, candidate := range paths {
		isDirectory := strings.HasSuffix(candidate, "/") || isDirectoryUnder(root, candidate)
		decision := walker.Classify(ruleSet, loadOptions.Exclusions, candidate, isDirectory)
		verdict := checkIncludedVerdict
		if decision.Excluded {
			verdict = checkExcludedVerdict
		}
		if _, writeError := fmt.Fprintf(command.OutOrStdout(), checkLineFormat, verdict, candidate, describeDecision(candidate, decision)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// describeDecision names the layer or rule that settled a decision.
func describeDecision(candidate string, decision walker.Decision) string {
	detail := checkNoRuleText
	switch {
	case decision.Layer == walker.LayerDefaultSet:
		detail = checkDefaultSetText
	case decision.Pattern != nil:
		detail = fmt.Sprintf(checkRuleFormat, decision.Pattern.Source, decision.Pattern.Line, decision.Pattern.RawText)
	}
	if decision.Pruned(candidate) {
		detail = fmt.Sprintf(checkPrunedFormat, detail, decision.DecidingPath+"/")
	}
	return detail
}

func isDirectoryUnder(root string, relativePath string) bool {
	info, statError := os.Stat(filepath.Join(root, filepath.FromSlash(relativePath)))
	return statError == nil && info.IsDir()
}
