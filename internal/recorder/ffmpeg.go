package recorder

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"gocv.io/x/gocv"
)

// ffmpegRecorder pipes raw BGR frames into an ffmpeg process that encodes H.264.
type ffmpegRecorder struct {
	path   string
	width  int
	height int
	pipe   *io.PipeWriter
	done   chan error
	frames int
	closed bool
	mu     sync.Mutex
}

func newFFmpegRecorder(path string, fps float64, width, height int) (*ffmpegRecorder, error) {
	pr, pw := io.Pipe()

	stream := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "bgr24",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       strconv.FormatFloat(fps, 'f', -1, 64),
	}).
		Output(path, ffmpeg.KwArgs{
			"vcodec":  "libx264",
			"pix_fmt": "yuv420p",
		}).
		OverWriteOutput().
		WithInput(pr).
		WithErrorOutput(log.With().Str("component", "ffmpeg").Logger())

	done := make(chan error, 1)
	go func() {
		err := stream.Run()
		// Unblock any pending Write if ffmpeg exits early.
		pr.CloseWithError(fmt.Errorf("ffmpeg exited: %v", err))
		done <- err
	}()

	return &ffmpegRecorder{
		path:   path,
		width:  width,
		height: height,
		pipe:   pw,
		done:   done,
	}, nil
}

func (r *ffmpegRecorder) Write(frame gocv.Mat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if err := checkFrame(frame, r.width, r.height); err != nil {
		return err
	}
	if frame.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%w: want 8-bit 3-channel frame", ErrFrameSize)
	}
	if _, err := r.pipe.Write(frame.ToBytes()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	r.frames++
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (r *ffmpegRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	r.pipe.Close()
	if err := <-r.done; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

func (r *ffmpegRecorder) Path() string {
	return r.path
}

func (r *ffmpegRecorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
