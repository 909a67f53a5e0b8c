package volume

import (
	"testing"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePactl(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want int
	}{
		{"stereo", "Volume: front-left: 27525 /  42% / -22.63 dB,   front-right: 27525 /  42% / -22.63 dB\n        balance 0.00\n", 42},
		{"mono", "Volume: mono: 65536 / 100% / 0.00 dB\n", 100},
		{"boosted", "Volume: front-left: 98304 / 150% / 10.57 dB\n", 150},
		{"zero", "Volume: front-left: 0 /   0% / -inf dB\n", 0},
		{"tab separated", "Volume:\t7%", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePactl(tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePactl_Invalid(t *testing.T) {
	for _, out := range []string{
		"",
		"Connection failure: Connection refused\n",
		"Volume: front-left: 27525 / x% / -22.63 dB",
	} {
		_, err := ParsePactl(out)
		assert.ErrorIs(t, err, interfaces.ErrParse, "output %q", out)
	}
}

func TestParseAmixer(t *testing.T) {
	out := "Simple mixer control 'Master',0\n" +
		"  Capabilities: pvolume pswitch pswitch-joined\n" +
		"  Playback channels: Front Left - Front Right\n" +
		"  Limits: Playback 0 - 65536\n" +
		"  Mono:\n" +
		"  Front Left: Playback 24248 [37%] [on]\n" +
		"  Front Right: Playback 24248 [37%] [on]\n"

	got, err := ParseAmixer(out)
	require.NoError(t, err)
	assert.Equal(t, 37, got)

	got, err = ParseAmixer("  Mono: Playback 31 [48%] [-33.00dB] [on]\n")
	require.NoError(t, err)
	assert.Equal(t, 48, got)
}

func TestParseAmixer_Invalid(t *testing.T) {
	for _, out := range []string{
		"",
		"amixer: Unable to find simple control 'Master',0\n",
		"  Front Left: Playback [on]\n",
		"  Mono: [off",
	} {
		_, err := ParseAmixer(out)
		assert.ErrorIs(t, err, interfaces.ErrParse, "output %q", out)
	}
}

func TestParseOsascript(t *testing.T) {
	got, err := ParseOsascript("63\n")
	require.NoError(t, err)
	assert.Equal(t, 63, got)

	_, err = ParseOsascript("missing value\n")
	assert.ErrorIs(t, err, interfaces.ErrParse)

	var pe *interfaces.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "osascript", pe.Tool)
}

func TestScalarToLevel(t *testing.T) {
	tests := []struct {
		scalar float32
		want   int
	}{
		{0, 0},
		{1, 100},
		{0.374, 37},
		{0.375, 38},
		{0.0051, 1},
		{0.004, 0},
		{0.999, 100},
		{0.42, 42},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scalarToLevel(tt.scalar), "scalar %v", tt.scalar)
	}
}

func TestLevelToScalarRoundTrip(t *testing.T) {
	assert.Equal(t, float32(0), levelToScalar(0))
	assert.Equal(t, float32(1), levelToScalar(100))
	assert.InDelta(t, 0.37, levelToScalar(37), 1e-6)

	for level := MinLevel; level <= MaxLevel; level++ {
		assert.Equal(t, level, scalarToLevel(levelToScalar(level)), "level %d", level)
	}
}
