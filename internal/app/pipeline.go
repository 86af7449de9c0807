package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/capture"
	"github.com/ayusman/colorwatch/internal/detector"
	"github.com/ayusman/colorwatch/internal/display"
	"github.com/ayusman/colorwatch/internal/overlay"
	"github.com/ayusman/colorwatch/internal/palette"
	"github.com/ayusman/colorwatch/internal/recorder"
)

// Summary reports what a finished session did.
type Summary struct {
	Frames         int
	Recording      bool
	RecordingPath  string
	RecordedFrames int
}

// session is the state of one detection run. Everything here is touched
// only by the loop goroutine.
type session struct {
	target      palette.Target
	detector    detector.Detector
	recorder    recorder.Recorder
	recordingID string
	display     display.Display
	publisher   Publisher
	now         func() time.Time

	recording RecordingState
	frames    int
}

// loop is the main detection loop.
//
// Loop logic:
// 1. Block until the camera delivers a frame
// 2. Detect regions with the bounds resolved at startup
// 3. Draw rectangles and status text
// 4. Forward the annotated frame to the recorder while recording
// 5. Show the frame and poll one key
// 6. Quit key ends the loop; toggle key flips recording when saving is enabled
func (s *session) loop(cam capture.Camera) error {
	for {
		frame, err := cam.ReadFrame()
		if err != nil {
			return fmt.Errorf("capture: %w", err)
		}

		quit, err := s.step(frame)
		frame.Close()

		if err != nil || quit {
			return err
		}
	}
}

// step processes one frame and reports whether the quit key was pressed.
func (s *session) step(frame *gocv.Mat) (bool, error) {
	result, err := s.detector.Detect(frame)
	if err != nil {
		return true, fmt.Errorf("detect: %w", err)
	}
	s.frames++

	err = overlay.Annotate(frame, result, overlay.Status{
		Recording: s.recording.Active(),
		Named:     s.target.Named(),
		Label:     s.target.Label(),
	})
	if err != nil {
		return true, fmt.Errorf("annotate: %w", err)
	}

	if s.recording.Active() && s.recorder != nil {
		if err := s.recorder.Write(*frame); err != nil {
			return true, fmt.Errorf("record: %w", err)
		}
	}

	if err := s.display.Show(*frame); err != nil {
		return true, fmt.Errorf("display: %w", err)
	}

	s.publish(result)

	switch s.display.PollKey() {
	case display.KeyQuit:
		return true, nil
	case display.KeyRecord:
		if s.recorder != nil {
			s.recording.Toggle()
			msg := "recording stopped"
			if s.recording.Active() {
				msg = "recording started"
			}
			log.Info().Str("color", s.target.Label()).Str("path", s.recorder.Path()).Msg(msg)
		}
	}

	return false, nil
}

func (s *session) publish(result detector.Result) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(Event{
		Color:     s.target.Label(),
		Frame:     s.frames,
		Rects:     result.Rects,
		Recording: s.recording.Active(),
		Timestamp: s.now().UnixMilli(),
	})
}
