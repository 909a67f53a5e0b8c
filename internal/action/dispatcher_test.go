package action

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/internal/launchcli/launchtest"
	"github.com/mfulz/powergeist/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubPower struct {
	err   error
	calls []string
}

func (s *stubPower) do(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubPower) Shutdown(context.Context) error       { return s.do("shutdown") }
func (s *stubPower) Restart(context.Context) error        { return s.do("restart") }
func (s *stubPower) CancelShutdown(context.Context) error { return s.do("cancel") }
func (s *stubPower) Sleep(context.Context) error          { return s.do("sleep") }

type stubVolume struct {
	mu     sync.Mutex
	level  int
	getErr error
	setErr error
}

func (s *stubVolume) GetVolume(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level, s.getErr
}

func (s *stubVolume) SetVolume(_ context.Context, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.level = level
	return nil
}

type stubPlatform struct {
	power  *stubPower
	volume *stubVolume
}

func (s *stubPlatform) Family() string                   { return "stub" }
func (s *stubPlatform) Power() interfaces.PowerBackend   { return s.power }
func (s *stubPlatform) Volume() interfaces.VolumeBackend { return s.volume }

func newStub(level int) *stubPlatform {
	return &stubPlatform{power: &stubPower{}, volume: &stubVolume{level: level}}
}

func TestDispatch_PowerMessages(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Shutdown(), "Shutdown command executed"},
		{Restart(), "Restart command executed"},
		{CancelShutdown(), "Shutdown cancelled"},
		{Sleep(), "Sleep command executed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.req.Kind), func(t *testing.T) {
			out := NewDispatcher(newStub(0)).Dispatch(context.Background(), tt.req)
			assert.True(t, out.Succeeded)
			assert.Equal(t, tt.want, out.Message)
			assert.Nil(t, out.Value)
			assert.NoError(t, out.Err)
		})
	}
}

func TestDispatch_PowerLaunchFailure(t *testing.T) {
	launchErr := &interfaces.LaunchError{Program: "shutdown", Err: exec.ErrNotFound}
	tests := []struct {
		req    Request
		prefix string
	}{
		{Shutdown(), "Failed to execute shutdown: "},
		{Restart(), "Failed to execute restart: "},
		{CancelShutdown(), "Failed to cancel shutdown: "},
		{Sleep(), "Failed to execute sleep: "},
	}
	for _, tt := range tests {
		p := newStub(0)
		p.power.err = launchErr

		out := NewDispatcher(p).Dispatch(context.Background(), tt.req)
		assert.False(t, out.Succeeded)
		assert.Equal(t, tt.prefix+exec.ErrNotFound.Error(), out.Message)
		assert.True(t, interfaces.IsLaunchError(out.Err))
	}
}

func TestDispatch_VolumeMessages(t *testing.T) {
	ctx := context.Background()
	p := newStub(40)
	d := NewDispatcher(p)

	out := d.Dispatch(ctx, VolumeGet())
	require.True(t, out.Succeeded)
	assert.Equal(t, "Volume is 40%", out.Message)
	require.NotNil(t, out.Value)
	assert.Equal(t, 40, *out.Value)

	out = d.Dispatch(ctx, VolumeSet(37))
	assert.Equal(t, "Volume set to 37%", out.Message)
	assert.Equal(t, 37, *out.Value)

	out = d.Dispatch(ctx, VolumeAdjust(2))
	assert.Equal(t, "Volume increased to 39%", out.Message)
	assert.Equal(t, 39, *out.Value)

	out = d.Dispatch(ctx, VolumeAdjust(-10))
	assert.Equal(t, "Volume decreased to 29%", out.Message)
	assert.Equal(t, 29, *out.Value)

	out = d.Dispatch(ctx, VolumeAdjust(0))
	assert.Equal(t, "Volume unchanged at 29%", out.Message)

	out = d.Dispatch(ctx, VolumeSet(250))
	assert.Equal(t, "Volume set to 100%", out.Message)
	out = d.Dispatch(ctx, VolumeAdjust(5))
	assert.Equal(t, "Volume increased to 100%", out.Message)
	assert.Equal(t, 100, p.volume.level)
}

func TestDispatch_VolumeFailures(t *testing.T) {
	ctx := context.Background()
	parseErr := &interfaces.ParseError{Tool: "amixer", Output: "?"}

	p := newStub(10)
	p.volume.getErr = parseErr
	d := NewDispatcher(p)

	out := d.Dispatch(ctx, VolumeGet())
	assert.False(t, out.Succeeded)
	assert.Contains(t, out.Message, "Failed to get volume: ")
	assert.ErrorIs(t, out.Err, interfaces.ErrParse)
	assert.Nil(t, out.Value)

	out = d.Dispatch(ctx, VolumeAdjust(3))
	assert.Contains(t, out.Message, "Failed to increase volume: ")
	out = d.Dispatch(ctx, VolumeAdjust(-3))
	assert.Contains(t, out.Message, "Failed to decrease volume: ")

	p.volume.setErr = errors.New("permission denied")
	out = d.Dispatch(ctx, VolumeSet(20))
	assert.Equal(t, "Failed to set volume: permission denied", out.Message)
}

func TestDispatch_UnknownKind(t *testing.T) {
	out := NewDispatcher(newStub(0)).Dispatch(context.Background(), Request{Kind: "hibernate"})
	assert.False(t, out.Succeeded)
	assert.Equal(t, "Unknown action", out.Message)
	assert.ErrorIs(t, out.Err, ErrUnknownAction)
}

func TestDispatch_UnsupportedPlatform(t *testing.T) {
	fake := launchtest.New()
	p, err := platform.Select(platform.FamilyUnsupported, interfaces.PlatformOptions{Launcher: fake})
	require.NoError(t, err)
	d := NewDispatcher(p)

	for _, req := range []Request{
		Shutdown(), Restart(), CancelShutdown(), Sleep(),
		VolumeGet(), VolumeSet(50), VolumeAdjust(2), VolumeAdjust(-2),
	} {
		out := d.Dispatch(context.Background(), req)
		assert.False(t, out.Succeeded, req.Kind)
		assert.Equal(t, "Unsupported operating system", out.Message, req.Kind)
		assert.ErrorIs(t, out.Err, interfaces.ErrUnsupportedPlatform)
	}
	assert.Zero(t, fake.Calls())
}

func TestDispatch_CancelWithoutPendingShutdown(t *testing.T) {
	fake := launchtest.New()
	p, err := platform.Select(platform.FamilyLinux, interfaces.PlatformOptions{Launcher: fake})
	require.NoError(t, err)

	out := NewDispatcher(p).Dispatch(context.Background(), CancelShutdown())
	assert.True(t, out.Succeeded)
	assert.Equal(t, "Shutdown cancelled", out.Message)
}

func TestDispatch_ObserverAndRequestID(t *testing.T) {
	var events []Event
	d := NewDispatcher(newStub(12), WithObserver(func(e Event) { events = append(events, e) }))

	ctx := WithRequestID(context.Background(), "req-1")
	d.Dispatch(ctx, VolumeSet(30))
	d.Dispatch(context.Background(), Sleep())

	require.Len(t, events, 2)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, KindVolumeSet, events[0].Action)
	assert.Equal(t, 30, *events[0].Volume)
	assert.NotEmpty(t, events[1].RequestID)
	assert.NotEqual(t, "req-1", events[1].RequestID)
	assert.Nil(t, events[1].Volume)
}

func TestDispatch_LogsAtBoundary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(newStub(0), WithLogger(zap.New(core).Sugar()))

	d.Dispatch(WithRequestID(context.Background(), "abc"), Restart())

	p := newStub(0)
	p.power.err = interfaces.ErrUnsupportedPlatform
	NewDispatcher(p, WithLogger(zap.New(core).Sugar())).Dispatch(context.Background(), Restart())

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "Restart command executed", entries[0].ContextMap()["message"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}
