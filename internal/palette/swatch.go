package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch returns the "#rrggbb" color at the center of the box, for previews.
func (b Bounds) Swatch() string {
	hue := float64(b.Lower.H+b.Upper.H) / 2 * 2
	sat := float64(b.Lower.S+b.Upper.S) / 2 / MaxChannel
	val := float64(b.Lower.V+b.Upper.V) / 2 / MaxChannel

	return colorful.Hsv(math.Mod(hue, 360), sat, val).Clamped().Hex()
}
