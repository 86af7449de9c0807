// Package app runs the capture, detect, annotate, record and display loop.
package app

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ayusman/colorwatch/internal/capture"
	"github.com/ayusman/colorwatch/internal/detector"
	"github.com/ayusman/colorwatch/internal/display"
	"github.com/ayusman/colorwatch/internal/palette"
	"github.com/ayusman/colorwatch/internal/recorder"
	"github.com/ayusman/colorwatch/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	CameraID    int
	Save        bool
	OutputDir   string
	Backend     recorder.Backend
	WindowTitle string
	// Store, when set, catalogs every recorder session.
	Store *store.Store
	// Publisher, when set, receives one Event per processed frame.
	Publisher Publisher
}

// Event describes the detection outcome of one frame.
type Event struct {
	Color     string            `json:"color"`
	Frame     int               `json:"frame"`
	Rects     []image.Rectangle `json:"rects"`
	Recording bool              `json:"recording"`
	Timestamp int64             `json:"timestamp"`
}

// Publisher receives per-frame events. Publish must not block.
type Publisher interface {
	Publish(ev Event)
}

// RecordingState gates whether annotated frames reach the recorder.
// The zero value is off.
type RecordingState bool

// Toggle flips the state.
func (s *RecordingState) Toggle() {
	*s = !*s
}

// Active reports whether recording is on.
func (s RecordingState) Active() bool {
	return bool(s)
}

// App wires the collaborators of a detection session together.
type App struct {
	config       Config
	camera       capture.Camera
	newDisplay   func(title string) display.Display
	openRecorder recorder.Opener
	now          func() time.Time
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.WindowTitle == "" {
		config.WindowTitle = display.DefaultTitle
	}
	if config.Backend == "" {
		config.Backend = recorder.BackendGoCV
	}

	return &App{
		config:       config,
		camera:       capture.NewCamera(config.CameraID),
		newDisplay:   display.NewWindow,
		openRecorder: recorder.Open,
		now:          time.Now,
	}
}

// SetCamera replaces the capture source.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDisplayFactory replaces the function that opens a display per session.
func (a *App) SetDisplayFactory(fn func(title string) display.Display) {
	a.newDisplay = fn
}

// SetRecorderOpener replaces the function that opens recorders.
func (a *App) SetRecorderOpener(open recorder.Opener) {
	a.openRecorder = open
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// RunAll runs one full session per palette color, in palette order.
// Quitting a session moves on to the next color; an error stops the batch.
func (a *App) RunAll() error {
	for _, name := range palette.Names() {
		target, err := palette.NamedTarget(name)
		if err != nil {
			return err
		}
		if _, err := a.Run(target); err != nil {
			return fmt.Errorf("session %s: %w", name, err)
		}
	}
	return nil
}

// Run opens the camera, runs the detection loop for target until the quit
// key is pressed, and releases every resource it acquired.
func (a *App) Run(target palette.Target) (Summary, error) {
	det := detector.NewColorDetector(target.Bounds, detector.DefaultMinArea)
	defer det.Close()

	return a.RunWithDetector(target, det)
}

// RunWithDetector is Run with an explicit detector.
func (a *App) RunWithDetector(target palette.Target, det detector.Detector) (summary Summary, err error) {
	if err := a.camera.Open(); err != nil {
		return summary, err
	}
	defer func() {
		if cerr := a.camera.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("error closing camera")
		}
	}()

	s := &session{
		target:    target,
		detector:  det,
		publisher: a.config.Publisher,
		now:       a.now,
	}

	if a.config.Save {
		rec, oerr := a.openRecorder(recorder.Options{
			Dir:     a.config.OutputDir,
			Prefix:  target.FilePrefix(),
			Backend: a.config.Backend,
			FPS:     recorder.DefaultFPS,
			Width:   capture.DefaultWidth,
			Height:  capture.DefaultHeight,
			Now:     a.now,
		})
		if oerr != nil {
			return summary, fmt.Errorf("failed to open recorder: %w", oerr)
		}
		s.recorder = rec
		s.recordingID = a.catalogStart(rec, target)

		defer func() {
			summary.RecordingPath = rec.Path()
			summary.RecordedFrames = rec.Frames()
			if cerr := a.finishRecorder(rec, s.recordingID); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}()
	}

	win := a.newDisplay(a.config.WindowTitle)
	s.display = win
	defer func() {
		if cerr := win.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("error closing display")
		}
	}()

	log.Info().
		Str("color", target.Label()).
		Str("bounds", target.Bounds.String()).
		Bool("save", a.config.Save).
		Msgf("Detecting %s objects. Press '%c' to quit, '%c' to toggle recording.",
			target.Label(), display.KeyQuit, display.KeyRecord)

	err = s.loop(a.camera)
	summary.Frames = s.frames
	summary.Recording = s.recording.Active()

	log.Info().Str("color", target.Label()).Int("frames", s.frames).Msg("session ended")
	return summary, err
}

// catalogStart registers rec in the store and returns its ID, or "" when
// there is no store or the insert fails.
func (a *App) catalogStart(rec recorder.Recorder, target palette.Target) string {
	if a.config.Store == nil {
		return ""
	}

	id := uuid.NewString()
	err := a.config.Store.Recordings().Create(&store.Recording{
		ID:        id,
		Color:     target.Label(),
		Path:      rec.Path(),
		Backend:   string(a.config.Backend),
		FPS:       recorder.DefaultFPS,
		Width:     capture.DefaultWidth,
		Height:    capture.DefaultHeight,
		StartedAt: a.now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("path", rec.Path()).Msg("failed to catalog recording")
		return ""
	}
	return id
}

// finishRecorder closes rec exactly once and records its final frame count.
func (a *App) finishRecorder(rec recorder.Recorder, id string) error {
	err := rec.Close()
	if err != nil {
		err = fmt.Errorf("failed to close recorder: %w", err)
	}

	log.Info().Str("path", rec.Path()).Int("frames", rec.Frames()).Msg("recorder closed")

	if a.config.Store != nil && id != "" {
		if ferr := a.config.Store.Recordings().Finish(id, rec.Frames(), a.now()); ferr != nil {
			log.Warn().Err(ferr).Str("id", id).Msg("failed to update recording")
		}
	}
	return err
}
