package palette

import (
	"gocv.io/x/gocv"
)

// Dynamic threshold parameters.
const (
	// HueTolerance widens the hue of the target color in both directions.
	HueTolerance = 10
	// SaturationFloor is the lower saturation and value bound.
	SaturationFloor = 100
	// MaxHue is the largest hue on the 8-bit scale.
	MaxHue = 179
	// MaxChannel is the largest saturation or value.
	MaxChannel = 255
)

// BGR is an 8-bit color in blue-green-red channel order.
type BGR struct {
	B uint8 `json:"b"`
	G uint8 `json:"g"`
	R uint8 `json:"r"`
}

// HSV converts the color to the 8-bit HSV scale used by OpenCV
// (hue 0-179, saturation and value 0-255). The conversion goes through
// CvtColor so the result agrees pixel for pixel with detector masks.
func (c BGR) HSV() HSV {
	px := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		1, 1, gocv.MatTypeCV8UC3,
	)
	defer px.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(px, &hsv, gocv.ColorBGRToHSV); err != nil || hsv.Empty() {
		return HSV{}
	}

	v := hsv.GetVecbAt(0, 0)
	return HSV{H: int(v[0]), S: int(v[1]), V: int(v[2])}
}

// ResolveDynamic derives bounds around a single color by widening its hue
// by HueTolerance. Saturation and value bounds are fixed; hue is clamped
// to [0, MaxHue].
func ResolveDynamic(c BGR) Bounds {
	hue := c.HSV().H

	return Bounds{
		Lower: HSV{H: max(0, hue-HueTolerance), S: SaturationFloor, V: SaturationFloor},
		Upper: HSV{H: min(MaxHue, hue+HueTolerance), S: MaxChannel, V: MaxChannel},
	}
}
