// Package overlay draws detection results and status text onto frames.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/detector"
)

// Drawing parameters. Colors are RGBA; gocv writes them in BGR order.
var (
	BoxColor   = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	RecColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	LabelColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

const (
	BoxThickness  = 2
	TextThickness = 2
	RecScale      = 1.0
	LabelScale    = 0.7
)

var (
	// Palette sessions draw REC higher than single-color sessions.
	recOriginNamed   = image.Pt(10, 20)
	recOriginDynamic = image.Pt(10, 30)
	labelOrigin      = image.Pt(10, 60)
)

// Status describes the text drawn on top of each frame.
type Status struct {
	Recording bool
	// Named is set for palette targets and moves REC to recOriginNamed.
	Named bool
	// Label is drawn as "Detecting: <label>" when non-empty.
	Label string
}

// Annotate draws one rectangle per detected region plus the status text.
// The frame is modified in place. Drawing continues past a failed call;
// every failure is reported in the joined error.
func Annotate(frame *gocv.Mat, result detector.Result, status Status) error {
	var errs []error

	for _, r := range result.Rects {
		if err := gocv.RectangleWithParams(frame, r, BoxColor, BoxThickness, gocv.Line8, 0); err != nil {
			errs = append(errs, fmt.Errorf("rectangle %v: %w", r, err))
		}
	}

	if status.Recording {
		origin := recOriginDynamic
		if status.Named {
			origin = recOriginNamed
		}
		if err := gocv.PutText(frame, "REC", origin, gocv.FontHersheySimplex, RecScale, RecColor, TextThickness); err != nil {
			errs = append(errs, fmt.Errorf("rec text: %w", err))
		}
	}

	if status.Label != "" {
		if err := gocv.PutText(frame, "Detecting: "+status.Label, labelOrigin, gocv.FontHersheySimplex, LabelScale, LabelColor, TextThickness); err != nil {
			errs = append(errs, fmt.Errorf("label text: %w", err))
		}
	}

	return errors.Join(errs...)
}
