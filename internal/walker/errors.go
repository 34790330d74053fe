package walker

import (
	"errors"
	"fmt"
)

// ErrRootNotFound indicates that the scan root is missing or is not a directory.
var ErrRootNotFound = errors.New("root directory not found")

const rootNotFoundErrorFormat = "%v: %s"

// RootNotFoundError is returned when the scan cannot start.
type RootNotFoundError struct {
	Path string
	Err  error
}

// Error implements error.
func (rootNotFoundError *RootNotFoundError) Error() string {
	message := fmt.Sprintf(rootNotFoundErrorFormat, ErrRootNotFound, rootNotFoundError.Path)
	if rootNotFoundError.Err != nil {
		message += ": " + rootNotFoundError.Err.Error()
	}
	return message
}

// Is reports a match against ErrRootNotFound.
func (rootNotFoundError *RootNotFoundError) Is(target error) bool {
	return target == ErrRootNotFound
}

// Unwrap returns the underlying filesystem error, if any.
func (rootNotFoundError *RootNotFoundError) Unwrap() error {
	return rootNotFoundError.Err
}
