package volume

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is an exact in-memory backend, like the native endpoint.
type memBackend struct {
	level   int
	getErr  error
	setErr  error
	sets    []int
	getCall int
}

func (m *memBackend) GetVolume(context.Context) (int, error) {
	m.getCall++
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.level, nil
}

func (m *memBackend) SetVolume(_ context.Context, level int) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets = append(m.sets, level)
	m.level = level
	return nil
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5))
	assert.Equal(t, 0, Clamp(0))
	assert.Equal(t, 37, Clamp(37))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, 100, Clamp(250))
}

func TestController_SetThenGet(t *testing.T) {
	ctx := context.Background()
	for v := -50; v <= 200; v++ {
		c := NewController(&memBackend{level: 50})

		set, err := c.Set(ctx, v)
		require.NoError(t, err)
		got, err := c.Get(ctx)
		require.NoError(t, err)

		assert.Equal(t, Clamp(v), set, "set(%d)", v)
		assert.Equal(t, Clamp(v), got, "get after set(%d)", v)
	}
}

func TestController_SetOutOfRangeMatchesBounds(t *testing.T) {
	ctx := context.Background()

	low, high := &memBackend{}, &memBackend{}
	_, err := NewController(low).Set(ctx, -5)
	require.NoError(t, err)
	_, err = NewController(high).Set(ctx, 150)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, low.sets)
	assert.Equal(t, []int{100}, high.sets)
}

func TestController_Adjust(t *testing.T) {
	ctx := context.Background()
	for _, c := range []int{0, 1, 50, 99, 100} {
		for _, d := range []int{-150, -10, -2, -1, 0, 1, 2, 10, 150} {
			backend := &memBackend{level: c}
			got, err := NewController(backend).Adjust(ctx, d)
			require.NoError(t, err)
			assert.Equal(t, Clamp(c+d), got, "adjust(%d) from %d", d, c)
			assert.Equal(t, Clamp(c+d), backend.level)
		}
	}
}

func TestController_AdjustSaturatesExtremeDeltas(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		current, delta, want int
	}{
		{50, math.MaxInt, 100},
		{0, math.MaxInt, 100},
		{100, math.MaxInt, 100},
		{50, math.MinInt, 0},
		{100, math.MinInt, 0},
		{50, -math.MaxInt, 0},
	}
	for _, tt := range tests {
		backend := &memBackend{level: tt.current}
		got, err := NewController(backend).Adjust(ctx, tt.delta)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "adjust(%d) from %d", tt.delta, tt.current)
		assert.Equal(t, tt.want, backend.level)
	}
}

func TestController_GetClampsBackendValue(t *testing.T) {
	got, err := NewController(&memBackend{level: 153}).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestController_AdjustReadFailure(t *testing.T) {
	backend := &memBackend{getErr: &interfaces.ParseError{Tool: "pactl", Output: "?"}}
	_, err := NewController(backend).Adjust(context.Background(), 2)

	assert.ErrorIs(t, err, interfaces.ErrParse)
	assert.Empty(t, backend.sets)
}

func TestController_SetFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewController(&memBackend{setErr: boom}).Set(context.Background(), 10)
	assert.ErrorIs(t, err, boom)
}

func TestUnsupported(t *testing.T) {
	c := NewController(Unsupported{})

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedPlatform)
	_, err = c.Set(context.Background(), 10)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedPlatform)
	_, err = c.Adjust(context.Background(), 10)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedPlatform)
}
