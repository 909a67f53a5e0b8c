// Package platform maps logical power actions to the external commands of
// each operating system family and registers one interfaces.Platform per
// family. The family is chosen once at start (see Select).
package platform

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
)

// Platform families.
const (
	FamilyWindows     = "windows"
	FamilyLinux       = "linux"
	FamilyMacOS       = "macos"
	FamilyUnsupported = "unsupported"
)

// Action is a logical power action.
type Action string

const (
	ActionShutdown       Action = "shutdown"
	ActionRestart        Action = "restart"
	ActionCancelShutdown Action = "cancel_shutdown"
	ActionSleep          Action = "sleep"
)

// DefaultShutdownDelay is the grace period before a requested shutdown.
const DefaultShutdownDelay = 60 * time.Second

// Options are the parameters shared by every command of a family.
type Options struct {
	ShutdownDelay time.Duration
}

// CommandFor returns the command that performs action on family.
// The unsupported family and unknown names yield ErrUnsupportedPlatform.
func CommandFor(family string, action Action, opts Options) (ilauncher.Command, error) {
	var table map[Action]ilauncher.Command
	switch family {
	case FamilyWindows:
		table = windowsCommands(opts)
	case FamilyLinux:
		table = linuxCommands(opts)
	case FamilyMacOS:
		table = macosCommands(opts)
	default:
		return ilauncher.Command{}, interfaces.ErrUnsupportedPlatform
	}

	cmd, ok := table[action]
	if !ok {
		return ilauncher.Command{}, fmt.Errorf("unknown power action %q", action)
	}
	return cmd, nil
}

func delaySeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

func windowsCommands(opts Options) map[Action]ilauncher.Command {
	return map[Action]ilauncher.Command{
		ActionShutdown:       {Program: "shutdown", Args: []string{"/s", "/t", strconv.Itoa(delaySeconds(opts.ShutdownDelay))}},
		ActionRestart:        {Program: "shutdown", Args: []string{"/r", "/t", "0"}},
		ActionCancelShutdown: {Program: "shutdown", Args: []string{"/a"}},
		ActionSleep:          {Program: "rundll32.exe", Args: []string{"powrprof.dll,SetSuspendState", "0,1,0"}},
	}
}

// linux shutdown(8) only takes whole minutes, so the delay is rounded up.
func linuxCommands(opts Options) map[Action]ilauncher.Command {
	when := "now"
	if secs := delaySeconds(opts.ShutdownDelay); secs > 0 {
		when = "+" + strconv.Itoa((secs+59)/60)
	}
	return map[Action]ilauncher.Command{
		ActionShutdown:       {Program: "shutdown", Args: []string{"-h", when}},
		ActionRestart:        {Program: "shutdown", Args: []string{"-r", "now"}},
		ActionCancelShutdown: {Program: "shutdown", Args: []string{"-c"}},
		ActionSleep:          {Program: "systemctl", Args: []string{"suspend"}},
	}
}

// The delayed macOS shutdown runs in a helper shell; cancel kills it by its
// command line.
func macosCommands(opts Options) map[Action]ilauncher.Command {
	helper := fmt.Sprintf("sleep %d && osascript", delaySeconds(opts.ShutdownDelay))
	return map[Action]ilauncher.Command{
		ActionShutdown:       {Program: "sh", Args: []string{"-c", helper + ` -e 'tell app "System Events" to shut down'`}},
		ActionRestart:        {Program: "shutdown", Args: []string{"-r", "now"}},
		ActionCancelShutdown: {Program: "pkill", Args: []string{"-f", helper}},
		ActionSleep:          {Program: "pmset", Args: []string{"sleepnow"}},
	}
}
