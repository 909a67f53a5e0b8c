// Package launchcli contains the launchers that run external commands on
// behalf of the platform backends. The exec launcher starts processes
// fire-and-forget and reaps them in the background; the dryrun launcher only
// logs state-changing commands.
package launchcli

import (
	"context"
	"errors"
	"os/exec"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/logging"
)

// MethodExec is the registry name of the exec launcher.
const MethodExec = "exec"

type execLauncher struct{}

func init() {
	ilauncher.RegisterLauncher(&execLauncher{})
}

// Method returns the unique identifier for this launcher.
func (l *execLauncher) Method() string {
	return MethodExec
}

// Start launches the command without waiting for it. The process is placed
// in its own process group so it survives the daemon being interrupted.
func (l *execLauncher) Start(c ilauncher.Command) error {
	cmd := exec.Command(c.Program, c.Args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return &interfaces.LaunchError{Program: c.Program, Err: err}
	}

	pid := cmd.Process.Pid
	logging.Log.Debugf("[launch] started '%s' (PID %d)", c, pid)

	go func() {
		err := cmd.Wait()
		if err != nil {
			logging.Log.Debugf("[launch] '%s' (PID %d) exited: %v", c.Program, pid, err)
			return
		}
		logging.Log.Debugf("[launch] '%s' (PID %d) exited", c.Program, pid)
	}()

	return nil
}

// Output runs the command and waits for its stdout.
func (l *execLauncher) Output(ctx context.Context, c ilauncher.Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, err
	}
	return nil, &interfaces.LaunchError{Program: c.Program, Err: err}
}
