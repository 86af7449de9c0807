// Package palette maps color specifications to HSV threshold bounds.
//
// Hue uses the OpenCV 8-bit scale [0,179]; saturation and value use [0,255].
package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColorName is matched by errors returned for names outside the palette.
var ErrInvalidColorName = errors.New("invalid color name")

// HSV is a single hue/saturation/value triple.
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// Bounds is an inclusive per-channel threshold box in HSV space.
type Bounds struct {
	Lower HSV `json:"lower"`
	Upper HSV `json:"upper"`
}

// Contains reports whether c falls inside the box on every channel.
func (b Bounds) Contains(c HSV) bool {
	return c.H >= b.Lower.H && c.H <= b.Upper.H &&
		c.S >= b.Lower.S && c.S <= b.Upper.S &&
		c.V >= b.Lower.V && c.V <= b.Upper.V
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d,%d]-[%d,%d,%d]",
		b.Lower.H, b.Lower.S, b.Lower.V, b.Upper.H, b.Upper.S, b.Upper.V)
}

// webColors lists the palette in its canonical order.
var webColors = [...]string{
	"aqua", "black", "blue", "fuchsia", "gray", "green",
	"lime", "maroon", "navy", "olive", "purple", "red",
	"silver", "teal", "white", "yellow",
}

// webColorLimits holds hand-tuned bounds per palette entry. The achromatic
// entries use an upper hue of 180 and are distinguished by value alone.
var webColorLimits = map[string]Bounds{
	"aqua":    {HSV{85, 70, 50}, HSV{95, 255, 255}},
	"black":   {HSV{0, 0, 0}, HSV{180, 255, 30}},
	"blue":    {HSV{105, 70, 50}, HSV{135, 255, 255}},
	"fuchsia": {HSV{145, 70, 50}, HSV{155, 255, 255}},
	"gray":    {HSV{0, 0, 40}, HSV{180, 30, 150}},
	"green":   {HSV{45, 70, 50}, HSV{75, 255, 255}},
	"lime":    {HSV{45, 150, 50}, HSV{75, 255, 255}},
	"maroon":  {HSV{0, 70, 20}, HSV{10, 255, 150}},
	"navy":    {HSV{105, 70, 20}, HSV{135, 255, 150}},
	"olive":   {HSV{20, 70, 20}, HSV{30, 255, 150}},
	"purple":  {HSV{145, 70, 20}, HSV{155, 255, 150}},
	"red":     {HSV{0, 70, 50}, HSV{10, 255, 255}},
	"silver":  {HSV{0, 0, 150}, HSV{180, 30, 200}},
	"teal":    {HSV{85, 70, 20}, HSV{95, 255, 150}},
	"white":   {HSV{0, 0, 200}, HSV{180, 30, 255}},
	"yellow":  {HSV{25, 70, 50}, HSV{35, 255, 255}},
}

// InvalidColorNameError reports a name that is not part of the palette.
type InvalidColorNameError struct {
	Name string
}

func (e *InvalidColorNameError) Error() string {
	return fmt.Sprintf("invalid color %q. Choose from: %s", e.Name, strings.Join(Names(), ", "))
}

// Is makes errors.Is(err, ErrInvalidColorName) succeed.
func (e *InvalidColorNameError) Is(target error) bool {
	return target == ErrInvalidColorName
}

// Names returns the 16 palette names in canonical order.
func Names() []string {
	names := make([]string, len(webColors))
	copy(names, webColors[:])
	return names
}

// IsName reports whether name (case-insensitive) is a palette entry.
func IsName(name string) bool {
	_, ok := webColorLimits[strings.ToLower(name)]
	return ok
}

// ResolveNamed returns the pre-tuned bounds for a palette color name.
// Matching is case-insensitive.
func ResolveNamed(name string) (Bounds, error) {
	b, ok := webColorLimits[strings.ToLower(name)]
	if !ok {
		return Bounds{}, &InvalidColorNameError{Name: name}
	}
	return b, nil
}
