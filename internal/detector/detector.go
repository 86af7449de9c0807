// Package detector finds regions of a target color in video frames.
package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// DefaultMinArea is the contour area a region must exceed to be reported.
const DefaultMinArea = 5.0

// Result holds the bounding rectangles of the qualifying regions in one frame.
// Order follows contour extraction and carries no meaning.
type Result struct {
	Rects []image.Rectangle `json:"rects"`
}

// Len returns the number of detected regions.
func (r Result) Len() int {
	return len(r.Rects)
}

// Empty reports whether no region was detected.
func (r Result) Empty() bool {
	return len(r.Rects) == 0
}

// Detector defines the interface for per-frame region detection.
type Detector interface {
	// Detect analyzes a video frame and returns the detected regions.
	// Returns an empty Result if nothing qualifies.
	Detect(frame *gocv.Mat) (Result, error)

	// Close releases any resources held by the detector.
	Close() error
}
