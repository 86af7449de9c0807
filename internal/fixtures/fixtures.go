// Package fixtures builds synthetic BGR frames for tests.
package fixtures

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/palette"
)

// Frame dimensions matching the capture configuration.
const (
	Width  = 640
	Height = 480
)

// BlankFrame returns an all-black 640x480 BGR frame.
// The caller is responsible for closing the returned Mat.
func BlankFrame() gocv.Mat {
	return gocv.NewMatWithSize(Height, Width, gocv.MatTypeCV8UC3)
}

// SolidFrame returns a 640x480 frame filled with c.
func SolidFrame(c palette.BGR) gocv.Mat {
	frame := BlankFrame()
	frame.SetTo(Scalar(c))
	return frame
}

// FrameWithRects returns a black frame with each rectangle filled with c.
func FrameWithRects(c palette.BGR, rects ...image.Rectangle) gocv.Mat {
	frame := BlankFrame()
	for _, r := range rects {
		PaintRect(&frame, r, c)
	}
	return frame
}

// PaintRect fills r (Max exclusive) on frame with c.
func PaintRect(frame *gocv.Mat, r image.Rectangle, c palette.BGR) {
	roi := frame.Region(r)
	defer roi.Close()
	roi.SetTo(Scalar(c))
}

// Sequence returns n blank frames. Close them with CloseAll.
func Sequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		f := BlankFrame()
		frames = append(frames, &f)
	}
	return frames
}

// CloseAll closes every frame in frames.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// Scalar converts a BGR color to a gocv scalar in channel order.
func Scalar(c palette.BGR) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}
