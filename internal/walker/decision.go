package walker

import (
	"strings"

	"github.com/temirov/repodoc/internal/exclusions"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/utils"
)

// Layer names the filter that excluded an entry.
type Layer string

const (
	// LayerNone means no layer excluded the entry.
	LayerNone Layer = ""
	// LayerDefaultSet is the built-in exclusion set.
	LayerDefaultSet Layer = "default_set"
	// LayerRules is the compiled rule set.
	LayerRules Layer = "rules"
)

// Decision describes why a relative path is or is not part of an inventory.
type Decision struct {
	Excluded bool
	Layer    Layer
	// DecidingPath is the path whose check settled the verdict. It differs
	// from the candidate when an ancestor directory was pruned.
	DecidingPath string
	// Pattern is the last rule that matched DecidingPath, nil when none did.
	// It may be a negated rule that kept the path.
	Pattern *rules.Pattern
}

// Pruned reports whether the decision was made on an ancestor of relativePath.
func (decision Decision) Pruned(relativePath string) bool {
	return decision.Excluded && decision.DecidingPath != utils.NormalizeRelativePath(relativePath)
}

// Classify applies the same layered checks as Scan to a single relative
// path: every ancestor directory first, then the path itself. The path does
// not need to exist.
func Classify(ruleSet rules.RuleSet, exclusionSet exclusions.Set, relativePath string, isDirectory bool) Decision {
	segments := utils.SplitRelativePath(relativePath)
	if len(segments) == 0 {
		return Decision{}
	}
	for index := 0; index < len(segments)-1; index++ {
		ancestorPath := strings.Join(segments[:index+1], "/")
		if decision := decideEntry(ruleSet, exclusionSet, ancestorPath, segments[index], true); decision.Excluded {
			return decision
		}
	}
	return decideEntry(ruleSet, exclusionSet, strings.Join(segments, "/"), segments[len(segments)-1], isDirectory)
}

func decideEntry(ruleSet rules.RuleSet, exclusionSet exclusions.Set, relativePath string, name string, isDirectory bool) Decision {
	if isDirectory && exclusionSet.ExcludesDirectory(name) || !isDirectory && exclusionSet.ExcludesFile(name) {
		return Decision{Excluded: true, Layer: LayerDefaultSet, DecidingPath: relativePath}
	}
	verdict := ruleSet.Explain(relativePath, isDirectory)
	if verdict.Ignored {
		return Decision{Excluded: true, Layer: LayerRules, DecidingPath: relativePath, Pattern: verdict.Pattern}
	}
	return Decision{DecidingPath: relativePath, Pattern: verdict.Pattern}
}
