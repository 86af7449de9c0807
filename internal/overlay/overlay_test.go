package overlay

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/detector"
	"github.com/ayusman/colorwatch/internal/fixtures"
)

// litPixels counts non-black pixels of frame inside r.
func litPixels(t *testing.T, frame gocv.Mat, r image.Rectangle) int {
	t.Helper()

	roi := frame.Region(r)
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	return gocv.CountNonZero(gray)
}

func TestAnnotate_Boxes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := fixtures.BlankFrame()
	defer frame.Close()

	box := image.Rect(200, 200, 300, 280)
	if err := Annotate(&frame, detector.Result{Rects: []image.Rectangle{box}}, Status{}); err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	v := frame.GetVecbAt(240, box.Min.X)
	if v[0] != 0 || v[1] != 255 || v[2] != 0 {
		t.Errorf("left edge pixel = %v, want green (0,255,0) in BGR", v)
	}

	if n := litPixels(t, frame, image.Rect(210, 210, 290, 270)); n != 0 {
		t.Errorf("rectangle interior has %d lit pixels, want 0", n)
	}
}

func TestAnnotate_Status(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	recArea := image.Rect(0, 0, 120, 40)
	labelArea := image.Rect(0, 42, 400, 75)

	tests := []struct {
		name      string
		status    Status
		wantRec   bool
		wantLabel bool
	}{
		{name: "idle without label", status: Status{}},
		{name: "recording", status: Status{Recording: true}, wantRec: true},
		{name: "label only", status: Status{Label: "lime"}, wantLabel: true},
		{name: "recording with label", status: Status{Recording: true, Label: "navy"}, wantRec: true, wantLabel: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := fixtures.BlankFrame()
			defer frame.Close()

			if err := Annotate(&frame, detector.Result{}, tt.status); err != nil {
				t.Fatalf("Annotate() error = %v", err)
			}

			if got := litPixels(t, frame, recArea) > 0; got != tt.wantRec {
				t.Errorf("REC drawn = %v, want %v", got, tt.wantRec)
			}
			if got := litPixels(t, frame, labelArea) > 0; got != tt.wantLabel {
				t.Errorf("label drawn = %v, want %v", got, tt.wantLabel)
			}
		})
	}
}

func TestAnnotate_RecPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	// Above the dynamic baseline's glyph tops, and below the named baseline.
	top := image.Rect(0, 0, 120, 5)
	below := image.Rect(0, 25, 120, 34)

	tests := []struct {
		name      string
		named     bool
		wantTop   bool
		wantBelow bool
	}{
		{name: "palette target", named: true, wantTop: true},
		{name: "single color target", named: false, wantBelow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := fixtures.BlankFrame()
			defer frame.Close()

			if err := Annotate(&frame, detector.Result{}, Status{Recording: true, Named: tt.named}); err != nil {
				t.Fatalf("Annotate() error = %v", err)
			}

			if got := litPixels(t, frame, top) > 0; got != tt.wantTop {
				t.Errorf("REC in rows 0-4 = %v, want %v", got, tt.wantTop)
			}
			if got := litPixels(t, frame, below) > 0; got != tt.wantBelow {
				t.Errorf("REC in rows 25-33 = %v, want %v", got, tt.wantBelow)
			}
		})
	}
}
