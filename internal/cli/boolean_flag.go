package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleTypeName        = "bool"
	toggleImplicitValue   = "true"
	toggleAcceptedValues  = "true, false, yes, no, on, off, 1, 0"
	toggleInvalidFormat   = "invalid value %q for --%s; accepted values: %s"
	longFlagPrefix        = "--"
	flagTerminator        = "--"
	flagAssignmentFormat  = "--%s=%s"
	flagAssignmentLiteral = "="
)

var toggleLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

// parseToggle maps a user supplied literal to a boolean. An empty value means true.
func parseToggle(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	value, known := toggleLiterals[normalized]
	return value, known
}

// toggleFlag is a pflag.Value that accepts the literals in toggleLiterals.
type toggleFlag struct {
	name   string
	target *bool
}

func (flag *toggleFlag) Set(input string) error {
	value, known := parseToggle(input)
	if !known {
		return fmt.Errorf(toggleInvalidFormat, input, flag.name, toggleAcceptedValues)
	}
	*flag.target = value
	return nil
}

func (flag *toggleFlag) String() string {
	if flag == nil || flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string { return toggleTypeName }

// registerBooleanFlag adds a flag that may be given bare (--git), with an
// assignment (--git=no) or followed by a separate literal (--git off).
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	registered := flagSet.VarPF(&toggleFlag{name: name, target: target}, name, "", usage)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleImplicitValue
}

// normalizeBooleanFlagArguments joins "--flag literal" pairs into
// "--flag=literal" for every boolean flag in the command tree, since pflag
// would otherwise read the literal as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	toggles := collectBooleanFlagNames(command, map[string]struct{}{})
	if len(toggles) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == flagTerminator {
			return append(normalized, arguments[index:]...)
		}
		name, isLongFlag := strings.CutPrefix(argument, longFlagPrefix)
		if isLongFlag && !strings.Contains(name, flagAssignmentLiteral) && index+1 < len(arguments) {
			if _, isToggle := toggles[name]; isToggle {
				next := arguments[index+1]
				if _, known := parseToggle(next); known && next != "" && !strings.HasPrefix(next, "-") {
					normalized = append(normalized, fmt.Sprintf(flagAssignmentFormat, name, next))
					index++
					continue
				}
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, names map[string]struct{}) map[string]struct{} {
	record := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == toggleTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(record)
	command.Flags().VisitAll(record)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, names)
	}
	return names
}
