package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned for every action on a platform
	// family without a backend. No process is launched.
	ErrUnsupportedPlatform = errors.New("Unsupported operating system")

	// ErrBackendUnavailable means none of the tools of a platform could be launched.
	ErrBackendUnavailable = errors.New("no volume backend available")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("failed to parse volume")
)

// LaunchError reports that an external program could not be started
// (binary missing, permission denied, ...).
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return e.Err.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ParseError reports tool output that did not have the expected shape.
type ParseError struct {
	Tool   string
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse volume from %s output %q", e.Tool, e.Output)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsLaunchError reports whether err (or anything it wraps) is a *LaunchError.
func IsLaunchError(err error) bool {
	var le *LaunchError
	return errors.As(err, &le)
}
