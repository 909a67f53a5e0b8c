// Package launchtest provides an in-memory ilauncher.Launcher for tests.
package launchtest

import (
	"context"
	"errors"
	"os/exec"
	"sync"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
)

// ErrNotFound mimics a missing binary.
var ErrNotFound = exec.ErrNotFound

// ErrExit stands in for a process that ran and exited non-zero.
var ErrExit = errors.New("exit status 1")

// Fake records every command and answers from canned per-program results.
type Fake struct {
	mu      sync.Mutex
	started []ilauncher.Command
	queried []ilauncher.Command

	// Missing lists programs that cannot be launched.
	Missing map[string]bool
	// Outputs maps a program to the stdout returned by Output.
	Outputs map[string]string
	// Failing maps a program to ErrExit for Output, keeping its stdout.
	Failing map[string]bool
	// OnStart, if set, is called for every successfully started command.
	OnStart func(cmd ilauncher.Command)
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Missing: map[string]bool{},
		Outputs: map[string]string{},
		Failing: map[string]bool{},
	}
}

func (f *Fake) Method() string { return "fake" }

func (f *Fake) Start(cmd ilauncher.Command) error {
	f.mu.Lock()
	f.started = append(f.started, cmd)
	missing := f.Missing[cmd.Program]
	hook := f.OnStart
	f.mu.Unlock()

	if missing {
		return &interfaces.LaunchError{Program: cmd.Program, Err: ErrNotFound}
	}
	if hook != nil {
		hook(cmd)
	}
	return nil
}

func (f *Fake) Output(_ context.Context, cmd ilauncher.Command) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = append(f.queried, cmd)

	if f.Missing[cmd.Program] {
		return nil, &interfaces.LaunchError{Program: cmd.Program, Err: ErrNotFound}
	}
	out := []byte(f.Outputs[cmd.Program])
	if f.Failing[cmd.Program] {
		return out, ErrExit
	}
	return out, nil
}

// SetMissing marks program as not installed (or installed again).
func (f *Fake) SetMissing(program string, missing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Missing[program] = missing
}

// SetOutput replaces the canned stdout of program.
func (f *Fake) SetOutput(program, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[program] = out
}

// Started returns a copy of every command passed to Start.
func (f *Fake) Started() []ilauncher.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ilauncher.Command(nil), f.started...)
}

// Queried returns a copy of every command passed to Output.
func (f *Fake) Queried() []ilauncher.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ilauncher.Command(nil), f.queried...)
}

// Calls returns the total number of Start and Output calls.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.started) + len(f.queried)
}
