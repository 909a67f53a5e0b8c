// Package ilauncher defines extensible interfaces for process launcher implementations.
// Each launcher (e.g., exec, dryrun) must implement Launcher.
package ilauncher

import (
	"context"
	"fmt"
	"strings"
)

// Command is a concrete external program invocation.
type Command struct {
	Program string   `json:"program" yaml:"program"`
	Args    []string `json:"args" yaml:"args"`
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Launcher represents a pluggable process launch implementation.
type Launcher interface {
	// Method returns the unique name the launcher is registered under.
	Method() string

	// Start launches the command and returns as soon as the process is
	// running. It never waits for the process to finish.
	Start(cmd Command) error

	// Output runs the command to completion and returns its stdout.
	// A process that could not be started yields a *interfaces.LaunchError;
	// a process that ran and exited non-zero returns its stdout together
	// with the exit error.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// launcherRegistry stores all registered launchers by method name.
var launcherRegistry = map[string]Launcher{}

// RegisterLauncher adds a new launcher to the registry.
func RegisterLauncher(l Launcher) {
	if _, exists := launcherRegistry[l.Method()]; exists {
		panic(fmt.Sprintf("launcher already registered: %s", l.Method()))
	}
	launcherRegistry[l.Method()] = l
}

// GetLauncher retrieves a previously registered launcher by method name.
func GetLauncher(method string) (Launcher, error) {
	l, ok := launcherRegistry[method]
	if !ok {
		return nil, fmt.Errorf("unknown launcher method: %s", method)
	}
	return l, nil
}
