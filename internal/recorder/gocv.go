package recorder

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// gocvRecorder encodes frames with OpenCV's VideoWriter.
type gocvRecorder struct {
	path   string
	width  int
	height int
	writer *gocv.VideoWriter
	frames int
	mu     sync.Mutex
}

func newGoCVRecorder(path string, fps float64, width, height int) (*gocvRecorder, error) {
	writer, err := gocv.VideoWriterFile(path, Codec, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open video writer: %w", err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("failed to open video writer for %s", path)
	}

	return &gocvRecorder{
		path:   path,
		width:  width,
		height: height,
		writer: writer,
	}, nil
}

func (r *gocvRecorder) Write(frame gocv.Mat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return ErrClosed
	}
	if err := checkFrame(frame, r.width, r.height); err != nil {
		return err
	}
	if err := r.writer.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	r.frames++
	return nil
}

func (r *gocvRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return nil
	}

	err := r.writer.Close()
	r.writer = nil
	return err
}

func (r *gocvRecorder) Path() string {
	return r.path
}

func (r *gocvRecorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
