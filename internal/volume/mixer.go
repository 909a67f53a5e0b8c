package volume

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/logging"
)

// Mixer drives the PulseAudio/PipeWire `pactl` tool and falls back to ALSA's
// `amixer` when pactl cannot be launched.
type Mixer struct {
	launcher ilauncher.Launcher
}

// NewMixer returns a Mixer that runs its tools through l.
func NewMixer(l ilauncher.Launcher) *Mixer {
	return &Mixer{launcher: l}
}

var (
	pactlGet  = ilauncher.Command{Program: "pactl", Args: []string{"get-sink-volume", "@DEFAULT_SINK@"}}
	amixerGet = ilauncher.Command{Program: "amixer", Args: []string{"get", "Master"}}
)

func pactlSet(level int) ilauncher.Command {
	return ilauncher.Command{Program: "pactl", Args: []string{"set-sink-volume", "@DEFAULT_SINK@", strconv.Itoa(level) + "%"}}
}

func amixerSet(level int) ilauncher.Command {
	return ilauncher.Command{Program: "amixer", Args: []string{"set", "Master", strconv.Itoa(level) + "%"}}
}

// GetVolume queries pactl, or amixer if pactl is not installed.
func (m *Mixer) GetVolume(ctx context.Context) (int, error) {
	out, pErr := m.launcher.Output(ctx, pactlGet)
	if pErr == nil || !interfaces.IsLaunchError(pErr) {
		if pErr != nil {
			logging.Log.Debugf("[volume] pactl exited with error: %v", pErr)
		}
		return ParsePactl(string(out))
	}

	logging.Log.Debugf("[volume] pactl unavailable (%v), falling back to amixer", pErr)
	out, aErr := m.launcher.Output(ctx, amixerGet)
	if aErr != nil && interfaces.IsLaunchError(aErr) {
		return 0, fmt.Errorf("%w (pactl: %v; amixer: %v)", interfaces.ErrBackendUnavailable, pErr, aErr)
	}
	if aErr != nil {
		logging.Log.Debugf("[volume] amixer exited with error: %v", aErr)
	}
	return ParseAmixer(string(out))
}

// SetVolume launches pactl, or amixer if pactl is not installed. It does not
// wait for the tool to finish.
func (m *Mixer) SetVolume(_ context.Context, level int) error {
	pErr := m.launcher.Start(pactlSet(level))
	if pErr == nil {
		return nil
	}

	logging.Log.Debugf("[volume] pactl unavailable (%v), falling back to amixer", pErr)
	if aErr := m.launcher.Start(amixerSet(level)); aErr != nil {
		return fmt.Errorf("%w (pactl: %v; amixer: %v)", interfaces.ErrBackendUnavailable, pErr, aErr)
	}
	return nil
}
