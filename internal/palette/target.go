package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidBGR is returned when a B,G,R triple cannot be parsed or is out of range.
var ErrInvalidBGR = errors.New("invalid BGR color")

// Target is a resolved color specification ready for detection.
type Target struct {
	// Name is the lower-cased palette name, empty for dynamic targets.
	Name   string
	Color  BGR
	Bounds Bounds
}

// Named reports whether the target came from the palette.
func (t Target) Named() bool {
	return t.Name != ""
}

// Label is the human-readable description drawn on frames.
func (t Target) Label() string {
	if t.Named() {
		return t.Name
	}
	return fmt.Sprintf("bgr(%d,%d,%d)", t.Color.B, t.Color.G, t.Color.R)
}

// FilePrefix is the prefix used for recording file names.
func (t Target) FilePrefix() string {
	if t.Named() {
		return t.Name
	}
	return "detection"
}

// NamedTarget resolves a palette name into a Target.
func NamedTarget(name string) (Target, error) {
	b, err := ResolveNamed(name)
	if err != nil {
		return Target{}, err
	}
	return Target{Name: strings.ToLower(name), Bounds: b}, nil
}

// DynamicTarget derives a Target from a single color.
func DynamicTarget(c BGR) Target {
	return Target{Color: c, Bounds: ResolveDynamic(c)}
}

// ParseSpec accepts either a palette name or a "B,G,R" triple.
func ParseSpec(spec string) (Target, error) {
	spec = strings.TrimSpace(spec)
	if strings.Contains(spec, ",") {
		c, err := ParseBGR(spec)
		if err != nil {
			return Target{}, err
		}
		return DynamicTarget(c), nil
	}
	return NamedTarget(spec)
}

// ParseBGR parses a "B,G,R" triple with each channel in [0,255].
func ParseBGR(s string) (BGR, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return BGR{}, fmt.Errorf("%w: %q: want 3 channels, got %d", ErrInvalidBGR, s, len(parts))
	}

	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return BGR{}, fmt.Errorf("%w: %q: %v", ErrInvalidBGR, s, err)
		}
		if v < 0 || v > MaxChannel {
			return BGR{}, fmt.Errorf("%w: %q: channel %d out of range [0,255]", ErrInvalidBGR, s, v)
		}
		ch[i] = uint8(v)
	}

	return BGR{B: ch[0], G: ch[1], R: ch[2]}, nil
}
