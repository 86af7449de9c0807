package recorder

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func TestOutputPath(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)

	tests := []struct {
		name   string
		dir    string
		prefix string
		want   string
	}{
		{"named color", "output", "lime", filepath.Join("output", "lime_20240309_070501.mp4")},
		{"dynamic color", "output", "detection", filepath.Join("output", "detection_20240309_070501.mp4")},
		{"current dir", "", "red", "red_20240309_070501.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.dir, tt.prefix, ts); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendGoCV, false},
		{"gocv", BackendGoCV, false},
		{" FFmpeg ", BackendFFmpeg, false},
		{"gstreamer", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBackend) {
					t.Errorf("ParseBackend(%q) error = %v, want ErrUnknownBackend", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBackend(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}.withDefaults()

	if opts.Backend != BackendGoCV {
		t.Errorf("Backend = %q, want %q", opts.Backend, BackendGoCV)
	}
	if opts.FPS != DefaultFPS {
		t.Errorf("FPS = %f, want %f", opts.FPS, DefaultFPS)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Prefix != "detection" {
		t.Errorf("Prefix = %q, want detection", opts.Prefix)
	}
	if opts.Now == nil {
		t.Error("Now should default to time.Now")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(Options{Dir: t.TempDir(), Backend: "vhs"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open() error = %v, want ErrUnknownBackend", err)
	}
}

func writeFrames(t *testing.T, rec Recorder, n int) {
	t.Helper()

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	for i := 0; i < n; i++ {
		frame.SetTo(gocv.NewScalar(float64(i*20), 128, 255, 0))
		if err := rec.Write(frame); err != nil {
			t.Fatalf("Write() frame %d error = %v", i, err)
		}
	}
}

func testBackend(t *testing.T, backend Backend) {
	dir := filepath.Join(t.TempDir(), "output")
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	rec, err := Open(Options{
		Dir:     dir,
		Prefix:  "lime",
		Backend: backend,
		Now:     func() time.Time { return fixed },
	})
	if err != nil {
		t.Skipf("skipping test - %s encoder not available: %v", backend, err)
	}

	if want := OutputPath(dir, "lime", fixed); rec.Path() != want {
		t.Errorf("Path() = %q, want %q", rec.Path(), want)
	}

	writeFrames(t, rec, 10)
	if rec.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", rec.Frames())
	}

	small := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer small.Close()
	if err := rec.Write(small); !errors.Is(err, ErrFrameSize) {
		t.Errorf("Write() of wrong size error = %v, want ErrFrameSize", err)
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if err := rec.Write(frame); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}

	info, err := os.Stat(rec.Path())
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestGoCVRecorder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that writes video files")
	}
	testBackend(t, BackendGoCV)
}

func TestFFmpegRecorder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that writes video files")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("skipping test - ffmpeg not installed")
	}
	testBackend(t, BackendFFmpeg)
}

func TestMockRecorder(t *testing.T) {
	rec := NewMockRecorder("")
	defer rec.Release()

	var got Options
	open := MockOpener(rec, &got)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	r, err := open(Options{Dir: "out", Prefix: "teal", Now: func() time.Time { return fixed }})
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	if got.FPS != DefaultFPS {
		t.Errorf("FPS = %f, want default %f", got.FPS, DefaultFPS)
	}
	if want := OutputPath("out", "teal", fixed); r.Path() != want {
		t.Errorf("Path() = %q, want %q", r.Path(), want)
	}

	writeFrames(t, r, 3)
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}

	r.Close()
	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if err := r.Write(frame); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}
}
