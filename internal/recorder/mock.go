package recorder

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockRecorder keeps written frames in memory for tests.
type MockRecorder struct {
	path     string
	frames   []gocv.Mat
	writeErr error
	closes   int
	mu       sync.Mutex
}

// NewMockRecorder creates a MockRecorder reporting path as its output.
func NewMockRecorder(path string) *MockRecorder {
	return &MockRecorder{path: path}
}

// MockOpener returns an Opener that hands out rec and records the options used.
func MockOpener(rec *MockRecorder, got *Options) Opener {
	return func(opts Options) (Recorder, error) {
		opts = opts.withDefaults()
		if got != nil {
			*got = opts
		}
		rec.mu.Lock()
		rec.path = OutputPath(opts.Dir, opts.Prefix, opts.Now())
		rec.mu.Unlock()
		return rec, nil
	}
}

// SetWriteError makes subsequent writes fail with err.
func (m *MockRecorder) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Write stores a clone of frame.
func (m *MockRecorder) Write(frame gocv.Mat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closes > 0 {
		return ErrClosed
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.frames = append(m.frames, frame.Clone())
	return nil
}

// Close counts calls; frames stay available until Release.
func (m *MockRecorder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closes++
	return nil
}

// Release frees the stored frames.
func (m *MockRecorder) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.frames {
		f.Close()
	}
	m.frames = nil
}

// Path returns the configured output path.
func (m *MockRecorder) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Frames returns the number of frames written.
func (m *MockRecorder) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// Frame returns the i-th written frame.
func (m *MockRecorder) Frame(i int) gocv.Mat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames[i]
}

// Closes returns how many times Close was called.
func (m *MockRecorder) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
