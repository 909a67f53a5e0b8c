package volume

import (
	"context"

	"github.com/mfulz/powergeist/interfaces"
)

// Unsupported is the volume backend of platforms without any mixer.
type Unsupported struct{}

func (Unsupported) GetVolume(context.Context) (int, error) {
	return 0, interfaces.ErrUnsupportedPlatform
}

func (Unsupported) SetVolume(context.Context, int) error {
	return interfaces.ErrUnsupportedPlatform
}
