package volume

import (
	"context"
	"fmt"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/logging"
)

// AppleScript reads and writes the macOS output volume through osascript.
type AppleScript struct {
	launcher ilauncher.Launcher
}

// NewAppleScript returns an AppleScript backend that runs osascript through l.
func NewAppleScript(l ilauncher.Launcher) *AppleScript {
	return &AppleScript{launcher: l}
}

var osascriptGet = ilauncher.Command{Program: "osascript", Args: []string{"-e", "output volume of (get volume settings)"}}

func osascriptSet(level int) ilauncher.Command {
	return ilauncher.Command{Program: "osascript", Args: []string{"-e", fmt.Sprintf("set volume output volume %d", level)}}
}

func (a *AppleScript) GetVolume(ctx context.Context) (int, error) {
	out, err := a.launcher.Output(ctx, osascriptGet)
	if err != nil {
		if interfaces.IsLaunchError(err) {
			return 0, err
		}
		logging.Log.Debugf("[volume] osascript exited with error: %v", err)
	}
	return ParseOsascript(string(out))
}

func (a *AppleScript) SetVolume(_ context.Context, level int) error {
	return a.launcher.Start(osascriptSet(level))
}
