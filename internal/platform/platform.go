package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/volume"
)

// Auto selects the family of the running operating system.
const Auto = "auto"

// Detect maps a GOOS value to a platform family.
func Detect(goos string) string {
	switch goos {
	case "windows":
		return FamilyWindows
	case "linux":
		return FamilyLinux
	case "darwin":
		return FamilyMacOS
	default:
		return FamilyUnsupported
	}
}

// Select builds the platform registered under name, or the detected one for
// "auto" and "".
func Select(name string, opts interfaces.PlatformOptions) (interfaces.Platform, error) {
	if name == "" || name == Auto {
		name = Detect(runtime.GOOS)
	}
	if opts.Launcher == nil {
		return nil, fmt.Errorf("platform %s: no launcher configured", name)
	}

	factory, err := interfaces.GetPlatform(name)
	if err != nil {
		return nil, err
	}
	p, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", name, err)
	}
	logging.Log.Infof("[platform] using %s (launcher %s)", p.Family(), opts.Launcher.Method())
	return p, nil
}

type platform struct {
	family string
	power  interfaces.PowerBackend
	volume interfaces.VolumeBackend
}

func (p *platform) Family() string                   { return p.family }
func (p *platform) Power() interfaces.PowerBackend   { return p.power }
func (p *platform) Volume() interfaces.VolumeBackend { return p.volume }

// commandPower performs power actions by launching the family's commands.
type commandPower struct {
	family   string
	opts     Options
	launcher ilauncher.Launcher
}

func (c *commandPower) run(ctx context.Context, action Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd, err := CommandFor(c.family, action, c.opts)
	if err != nil {
		return err
	}
	logging.Log.Debugf("[platform] %s: %s", action, cmd)
	return c.launcher.Start(cmd)
}

func (c *commandPower) Shutdown(ctx context.Context) error {
	return c.run(ctx, ActionShutdown)
}

func (c *commandPower) Restart(ctx context.Context) error {
	return c.run(ctx, ActionRestart)
}

func (c *commandPower) CancelShutdown(ctx context.Context) error {
	return c.run(ctx, ActionCancelShutdown)
}

func (c *commandPower) Sleep(ctx context.Context) error {
	return c.run(ctx, ActionSleep)
}

// unsupportedPower rejects every action without launching anything.
type unsupportedPower struct{}

func (unsupportedPower) Shutdown(context.Context) error {
	return interfaces.ErrUnsupportedPlatform
}

func (unsupportedPower) Restart(context.Context) error {
	return interfaces.ErrUnsupportedPlatform
}

func (unsupportedPower) CancelShutdown(context.Context) error {
	return interfaces.ErrUnsupportedPlatform
}

func (unsupportedPower) Sleep(context.Context) error {
	return interfaces.ErrUnsupportedPlatform
}

func commandFactory(family string, newVolume func(ilauncher.Launcher) interfaces.VolumeBackend) interfaces.PlatformFactory {
	return func(opts interfaces.PlatformOptions) (interfaces.Platform, error) {
		return &platform{
			family: family,
			power: &commandPower{
				family:   family,
				opts:     Options{ShutdownDelay: opts.ShutdownDelay},
				launcher: opts.Launcher,
			},
			volume: newVolume(opts.Launcher),
		}, nil
	}
}

func init() {
	interfaces.RegisterPlatform(FamilyWindows, commandFactory(FamilyWindows, func(ilauncher.Launcher) interfaces.VolumeBackend {
		return volume.NewEndpoint()
	}))
	interfaces.RegisterPlatform(FamilyLinux, commandFactory(FamilyLinux, func(l ilauncher.Launcher) interfaces.VolumeBackend {
		return volume.NewMixer(l)
	}))
	interfaces.RegisterPlatform(FamilyMacOS, commandFactory(FamilyMacOS, func(l ilauncher.Launcher) interfaces.VolumeBackend {
		return volume.NewAppleScript(l)
	}))
	interfaces.RegisterPlatform(FamilyUnsupported, func(interfaces.PlatformOptions) (interfaces.Platform, error) {
		return &platform{
			family: FamilyUnsupported,
			power:  unsupportedPower{},
			volume: volume.Unsupported{},
		}, nil
	})
}
