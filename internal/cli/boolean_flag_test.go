package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "default_false", arguments: []string{}, expected: false},
		{name: "default_true", defaultValue: true, arguments: []string{}, expected: true},
		{name: "bare_flag", arguments: []string{"--git"}, expected: true},
		{name: "assignment_false", defaultValue: true, arguments: []string{"--git=false"}, expected: false},
		{name: "separate_no", defaultValue: true, arguments: []string{"--git", "no"}, expected: false},
		{name: "separate_on", arguments: []string{"--git", "on"}, expected: true},
		{name: "non_literal_left_positional", arguments: []string{"--git", "src"}, expected: true},
		{name: "invalid_assignment", arguments: []string{"--git=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "toggle-test"}
			value := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &value, "git", testCase.defaultValue, "include git directory")
			parseError := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("expected parse error for %v", testCase.arguments)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected parse error: %v", parseError)
			}
			if value != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, value)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsWalksSubcommands(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "root"}
	var verbose, clipboard bool
	var format string
	registerBooleanFlag(root.PersistentFlags(), &verbose, "verbose", false, "")
	child := &cobra.Command{Use: "list"}
	registerBooleanFlag(child.Flags(), &clipboard, "clipboard", false, "")
	child.Flags().StringVar(&format, "format", "raw", "")
	root.AddCommand(child)

	arguments := []string{"list", "--verbose", "yes", "--clipboard", "off", "--format", "json", "--", "--clipboard", "on"}
	expected := []string{"list", "--verbose=yes", "--clipboard=off", "--format", "json", "--", "--clipboard", "on"}
	if normalized := normalizeBooleanFlagArguments(root, arguments); !reflect.DeepEqual(normalized, expected) {
		t.Fatalf("normalized = %v, expected %v", normalized, expected)
	}
}
