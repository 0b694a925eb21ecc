package software

import (
	"errors"
	"fmt"
)

var errUnknownExecutable = errors.New("unknown executable type")

// ConstructionError is returned by New for an entry that cannot exist.
type ConstructionError struct {
	Message string
}

func (e *ConstructionError) Error() string { return e.Message }

// DirectoryNotFoundError is returned when a Dynamic directory is missing.
type DirectoryNotFoundError struct {
	Directory string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("Directory specified '%s' does not exist. Please specify a valid path.", e.Directory)
}

// NoMatchingExecutableError is returned when no file in a Dynamic directory
// matches its regex.
type NoMatchingExecutableError struct {
	Directory string
	Pattern   string
}

func (e *NoMatchingExecutableError) Error() string {
	return fmt.Sprintf("Could not find any file in directory '%s' matching regex pattern '%s'", e.Directory, e.Pattern)
}

// InvalidPatternError wraps a regex that failed to compile.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("Invalid regex '%s': %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// NoVersionMatchError is returned when a version regex finds nothing.
// The message carries the literal pattern and text.
type NoVersionMatchError struct {
	Pattern string
	Text    string
}

func (e *NoVersionMatchError) Error() string {
	return fmt.Sprintf("Could not find match for regex '/%s/' in text '%s'", e.Pattern, e.Text)
}

// IsLocationError reports whether err came from Locate.
func IsLocationError(err error) bool {
	var dnf *DirectoryNotFoundError
	var nme *NoMatchingExecutableError
	return errors.As(err, &dnf) || errors.As(err, &nme)
}
