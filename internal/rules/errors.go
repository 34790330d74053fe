package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern indicates a structurally malformed pattern line.
var ErrInvalidPattern = errors.New("invalid pattern")

const invalidPatternErrorFormat = "%s:%d: %v %q: %s"

// InvalidPatternError reports one skipped rules-file line.
type InvalidPatternError struct {
	Source  string
	Line    int
	Pattern string
	Reason  string
}

// Error implements error.
func (invalidPatternError *InvalidPatternError) Error() string {
	return fmt.Sprintf(invalidPatternErrorFormat, invalidPatternError.Source, invalidPatternError.Line, ErrInvalidPattern, invalidPatternError.Pattern, invalidPatternError.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidPattern).
func (invalidPatternError *InvalidPatternError) Unwrap() error {
	return ErrInvalidPattern
}
