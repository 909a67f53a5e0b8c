// Package interfaces defines extensible interfaces for platform backend implementations.
// Each platform family (windows, linux, macos, ...) provides a Platform made of
// a PowerBackend and a VolumeBackend.
package interfaces

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mfulz/powergeist/interfaces/ilauncher"
)

// PowerBackend performs the logical power actions of one platform family.
// Every method only launches the external command; success means "launched",
// not "took effect".
type PowerBackend interface {
	Shutdown(ctx context.Context) error
	Restart(ctx context.Context) error
	CancelShutdown(ctx context.Context) error
	Sleep(ctx context.Context) error
}

// VolumeBackend reads and writes the system output volume as a percentage.
//
// GetVolume may return values outside [0,100] if the underlying tool reports
// them; clamping is the caller's job. SetVolume receives an already clamped
// level.
type VolumeBackend interface {
	GetVolume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, level int) error
}

// Platform bundles the backends of one platform family.
type Platform interface {
	// Family returns the platform family name (e.g. "linux").
	Family() string
	Power() PowerBackend
	Volume() VolumeBackend
}

// PlatformOptions carries everything a factory needs to build a Platform.
type PlatformOptions struct {
	Launcher ilauncher.Launcher
	// ShutdownDelay is the grace period before a requested shutdown.
	ShutdownDelay time.Duration
}

// PlatformFactory builds a Platform for the given options.
type PlatformFactory func(opts PlatformOptions) (Platform, error)

var registeredPlatforms = make(map[string]PlatformFactory)

// RegisterPlatform adds a new platform family to the global registry under a unique name.
func RegisterPlatform(family string, factory PlatformFactory) {
	if _, exists := registeredPlatforms[family]; exists {
		panic(fmt.Sprintf("platform already registered: %s", family))
	}
	registeredPlatforms[family] = factory
}

// GetPlatform retrieves a previously registered platform factory by family name.
func GetPlatform(family string) (PlatformFactory, error) {
	f, ok := registeredPlatforms[family]
	if !ok {
		return nil, fmt.Errorf("no platform registered with name: %s", family)
	}
	return f, nil
}

// Platforms returns the sorted names of all registered platform families.
func Platforms() []string {
	names := make([]string, 0, len(registeredPlatforms))
	for name := range registeredPlatforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
