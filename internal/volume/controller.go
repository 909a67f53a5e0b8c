// Package volume implements system output volume control on top of a
// platform specific interfaces.VolumeBackend. All levels are integer
// percentages in [0,100].
package volume

import (
	"context"
	"fmt"

	"github.com/mfulz/powergeist/interfaces"
)

const (
	MinLevel = 0
	MaxLevel = 100
)

// Clamp limits level to [MinLevel, MaxLevel].
func Clamp(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// Controller adds clamping and relative adjustment to a VolumeBackend.
// It holds no state of its own.
type Controller struct {
	backend interfaces.VolumeBackend
}

// NewController wraps the given backend.
func NewController(backend interfaces.VolumeBackend) *Controller {
	return &Controller{backend: backend}
}

// Get returns the current level, clamped into [0,100].
func (c *Controller) Get(ctx context.Context) (int, error) {
	level, err := c.backend.GetVolume(ctx)
	if err != nil {
		return 0, err
	}
	return Clamp(level), nil
}

// Set clamps level and writes it. It returns the level actually requested
// from the backend.
func (c *Controller) Set(ctx context.Context, level int) (int, error) {
	level = Clamp(level)
	if err := c.backend.SetVolume(ctx, level); err != nil {
		return 0, err
	}
	return level, nil
}

// Adjust reads the current level, adds delta and writes the clamped result.
// The read and the write are two separate backend calls; a concurrent
// external change in between is overwritten.
func (c *Controller) Adjust(ctx context.Context, delta int) (int, error) {
	current, err := c.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("read current volume: %w", err)
	}
	// A delta past the full range saturates anyway; capping it keeps current+delta from overflowing.
	delta = min(max(delta, -MaxLevel), MaxLevel)
	return c.Set(ctx, current+delta)
}
