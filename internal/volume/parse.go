package volume

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mfulz/powergeist/interfaces"
)

// ParsePactl extracts the first percentage from `pactl get-sink-volume` output:
//
//	Volume: front-left: 27525 /  42% / -22.63 dB,   front-right: ...
func ParsePactl(out string) (int, error) {
	percent := strings.IndexByte(out, '%')
	if percent < 0 {
		return 0, &interfaces.ParseError{Tool: "pactl", Output: out}
	}
	before := out[:percent]
	start := strings.LastIndexFunc(before, unicode.IsSpace) + 1
	v, err := strconv.Atoi(before[start:])
	if err != nil {
		return 0, &interfaces.ParseError{Tool: "pactl", Output: out}
	}
	return v, nil
}

// ParseAmixer extracts the first bracketed percentage from `amixer get Master` output:
//
//	Mono: Playback 31 [48%] [-33.00dB] [on]
func ParseAmixer(out string) (int, error) {
	open := strings.IndexByte(out, '[')
	if open < 0 {
		return 0, &interfaces.ParseError{Tool: "amixer", Output: out}
	}
	rest := out[open+1:]
	percent := strings.IndexByte(rest, '%')
	if percent < 0 {
		return 0, &interfaces.ParseError{Tool: "amixer", Output: out}
	}
	v, err := strconv.Atoi(rest[:percent])
	if err != nil {
		return 0, &interfaces.ParseError{Tool: "amixer", Output: out}
	}
	return v, nil
}

// ParseOsascript parses the plain integer printed by
// `osascript -e "output volume of (get volume settings)"`.
func ParseOsascript(out string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, &interfaces.ParseError{Tool: "osascript", Output: out}
	}
	return v, nil
}

// scalarToLevel converts a native endpoint scalar in [0.0,1.0] to a percent,
// rounding to the nearest integer.
func scalarToLevel(scalar float32) int {
	return int(math.Round(float64(scalar) * 100))
}

// levelToScalar is the inverse of scalarToLevel for a clamped level.
func levelToScalar(level int) float32 {
	return float32(level) / 100
}
