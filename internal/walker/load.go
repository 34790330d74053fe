package walker

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/config"
	"github.com/temirov/repodoc/internal/exclusions"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/types"
)

// LoadOptions describes a scan driven by the rules files found at the root.
type LoadOptions struct {
	Root          string
	UseGitignore  bool
	UseIgnoreFile bool
	// IncludeGit keeps the .git directory, which is excluded by default.
	IncludeGit bool
	// ExtraRules are compiled after the rules files, so they win on conflict.
	ExtraRules []string
	Exclusions exclusions.Set
	Logger     *zap.Logger
}

// PrepareRules validates the root, reads its rules files and compiles them.
// Unreadable rules files and malformed lines are returned as warnings.
func PrepareRules(options LoadOptions) (rules.RuleSet, []types.Warning, error) {
	absoluteRoot, _, rootError := resolveRoot(options.Root)
	if rootError != nil {
		return rules.RuleSet{}, nil, rootError
	}

	sources, warnings := config.LoadRuleSources(absoluteRoot, config.RuleFileOptions{
		UseGitignore:  options.UseGitignore,
		UseIgnoreFile: options.UseIgnoreFile,
	})
	if len(options.ExtraRules) > 0 {
		sources = append(sources, rules.Source{Name: rules.CommandLineSourceName, Lines: options.ExtraRules})
	}

	ruleSet, invalidPatterns := rules.Compile(rules.BuiltinDefaults(options.IncludeGit), sources...)
	for _, invalidPattern := range invalidPatterns {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarningInvalidPattern,
			Path:    invalidPattern.Source,
			Line:    invalidPattern.Line,
			Message: invalidPattern.Error(),
		})
	}
	return ruleSet, warnings, nil
}

// Load compiles the rules for options.Root and scans it. Rule warnings
// precede traversal warnings in the result.
func Load(ctx context.Context, options LoadOptions) (Result, error) {
	ruleSet, ruleWarnings, prepareError := PrepareRules(options)
	if prepareError != nil {
		return Result{}, prepareError
	}
	result, scanError := Scan(ctx, Options{
		Root:       options.Root,
		Rules:      ruleSet,
		Exclusions: options.Exclusions,
		Logger:     options.Logger,
	})
	if scanError != nil {
		return Result{}, scanError
	}
	result.Warnings = append(ruleWarnings, result.Warnings...)
	return result, nil
}
