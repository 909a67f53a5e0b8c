//go:build !windows

package volume

import (
	"context"
	"fmt"

	"github.com/mfulz/powergeist/interfaces"
)

// Endpoint is the native Windows audio endpoint backend. On other systems
// every call fails with ErrBackendUnavailable.
type Endpoint struct{}

func NewEndpoint() *Endpoint {
	return &Endpoint{}
}

func (e *Endpoint) GetVolume(_ context.Context) (int, error) {
	return 0, fmt.Errorf("%w: native audio endpoint requires windows", interfaces.ErrBackendUnavailable)
}

func (e *Endpoint) SetVolume(_ context.Context, _ int) error {
	return fmt.Errorf("%w: native audio endpoint requires windows", interfaces.ErrBackendUnavailable)
}
