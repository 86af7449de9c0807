package detector

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/palette"
)

// ErrNilFrame is returned by ColorDetector when given a nil frame.
var ErrNilFrame = errors.New("frame is nil")

// Detect thresholds a BGR frame against bounds in HSV space and returns the
// bounding rectangle of every external contour whose area exceeds minArea.
//
// Algorithm:
// 1. Convert the frame from BGR to HSV
// 2. Mask pixels inside bounds on all three channels (inclusive, no hue wrap)
// 3. Find external contours with simple chain approximation
// 4. Drop contours with area <= minArea
// 5. Return the bounding rectangles of the rest
//
// An empty frame yields an empty result. A frame OpenCV cannot convert,
// such as a single-channel Mat, yields an error.
func Detect(frame gocv.Mat, bounds palette.Bounds, minArea float64) (Result, error) {
	result := Result{Rects: []image.Rectangle{}}

	if frame.Empty() {
		return result, nil
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV); err != nil {
		return result, fmt.Errorf("convert to hsv: %w", err)
	}

	mask := gocv.NewMat()
	defer mask.Close()
	if err := gocv.InRangeWithScalar(hsv, scalar(bounds.Lower), scalar(bounds.Upper), &mask); err != nil {
		return result, fmt.Errorf("threshold: %w", err)
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		if gocv.ContourArea(contour) <= minArea {
			continue
		}
		result.Rects = append(result.Rects, gocv.BoundingRect(contour))
	}

	return result, nil
}

func scalar(c palette.HSV) gocv.Scalar {
	return gocv.NewScalar(float64(c.H), float64(c.S), float64(c.V), 0)
}

// ColorDetector implements Detector for a fixed threshold box.
type ColorDetector struct {
	bounds  palette.Bounds
	minArea float64
}

// NewColorDetector creates a ColorDetector. A minArea below zero falls back
// to DefaultMinArea.
func NewColorDetector(bounds palette.Bounds, minArea float64) *ColorDetector {
	if minArea < 0 {
		minArea = DefaultMinArea
	}
	return &ColorDetector{
		bounds:  bounds,
		minArea: minArea,
	}
}

// Bounds returns the threshold box the detector was built with.
func (d *ColorDetector) Bounds() palette.Bounds {
	return d.bounds
}

// MinArea returns the area threshold.
func (d *ColorDetector) MinArea() float64 {
	return d.minArea
}

// Detect runs color detection on frame.
func (d *ColorDetector) Detect(frame *gocv.Mat) (Result, error) {
	if frame == nil {
		return Result{}, ErrNilFrame
	}
	return Detect(*frame, d.bounds, d.minArea)
}

// Close is a no-op; the detector holds no native resources between frames.
func (d *ColorDetector) Close() error {
	return nil
}
