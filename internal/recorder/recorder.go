// Package recorder persists annotated frames to video files.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"
)

// Default recording settings
const (
	DefaultFPS    = 20.0
	DefaultWidth  = 640
	DefaultHeight = 480
	// Codec is the FourCC used by the gocv backend.
	Codec = "mp4v"
	// Extension is the container extension of every recording.
	Extension = ".mp4"
	// timestampLayout formats the recording start time in file names.
	timestampLayout = "20060102_150405"
)

var (
	// ErrClosed is returned when writing to a recorder that has been closed.
	ErrClosed = errors.New("recorder is closed")
	// ErrFrameSize is returned when a frame does not match the configured size.
	ErrFrameSize = errors.New("frame size does not match recorder")
	// ErrUnknownBackend is returned for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown recorder backend")
)

// Backend selects the encoder implementation.
type Backend string

const (
	// BackendGoCV writes through OpenCV's VideoWriter.
	BackendGoCV Backend = "gocv"
	// BackendFFmpeg pipes raw frames into an ffmpeg process.
	BackendFFmpeg Backend = "ffmpeg"
)

// ParseBackend validates a backend name. An empty name selects BackendGoCV.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "":
		return BackendGoCV, nil
	case BackendGoCV, BackendFFmpeg:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Recorder accepts annotated frames while recording is active.
type Recorder interface {
	// Write appends one frame to the output.
	Write(frame gocv.Mat) error
	// Close flushes and releases the output. Calling Close twice is a no-op.
	Close() error
	// Path returns the output file path.
	Path() string
	// Frames returns the number of frames written so far.
	Frames() int
}

// Options configures a new Recorder.
type Options struct {
	Dir     string
	Prefix  string
	Backend Backend
	FPS     float64
	Width   int
	Height  int
	// Now is used for the file name timestamp; defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = BackendGoCV
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Prefix == "" {
		o.Prefix = "detection"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// OutputPath returns "<dir>/<prefix>_<YYYYmmdd_HHMMSS>.mp4".
func OutputPath(dir, prefix string, t time.Time) string {
	return filepath.Join(dir, prefix+"_"+t.Format(timestampLayout)+Extension)
}

// Opener creates a Recorder; Open is the production implementation.
type Opener func(opts Options) (Recorder, error)

// Open creates the output directory and starts a recorder for opts.
func Open(opts Options) (Recorder, error) {
	opts = opts.withDefaults()

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	path := OutputPath(opts.Dir, opts.Prefix, opts.Now())

	var (
		rec Recorder
		err error
	)
	switch opts.Backend {
	case BackendGoCV:
		rec, err = newGoCVRecorder(path, opts.FPS, opts.Width, opts.Height)
	case BackendFFmpeg:
		rec, err = newFFmpegRecorder(path, opts.FPS, opts.Width, opts.Height)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Str("backend", string(opts.Backend)).
		Float64("fps", opts.FPS).
		Int("width", opts.Width).
		Int("height", opts.Height).
		Msg("recorder opened")

	return rec, nil
}

func checkFrame(frame gocv.Mat, width, height int) error {
	if frame.Cols() != width || frame.Rows() != height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, frame.Cols(), frame.Rows(), width, height)
	}
	return nil
}
