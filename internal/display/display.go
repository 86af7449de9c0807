// Package display shows annotated frames and polls the keyboard.
package display

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Key codes recognized by the detection loop.
const (
	KeyQuit   = 'q'
	KeyRecord = 'r'
	// KeyNone is what PollKey returns when no key was pressed within the timeout.
	KeyNone = 0xFF
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "Color Detection"

// PollDelayMs is how long PollKey waits for a key press.
const PollDelayMs = 1

// Display renders frames to the user and reports key presses.
type Display interface {
	Show(frame gocv.Mat) error
	// PollKey waits briefly for a key and returns its low byte, or KeyNone.
	PollKey() int
	Close() error
}

// windowDisplay is an OpenCV HighGUI window.
type windowDisplay struct {
	window *gocv.Window
	mu     sync.Mutex
}

// NewWindow opens a HighGUI window with the given title.
func NewWindow(title string) Display {
	if title == "" {
		title = DefaultTitle
	}
	return &windowDisplay{window: gocv.NewWindow(title)}
}

func (d *windowDisplay) Show(frame gocv.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.window == nil {
		return nil
	}
	if err := d.window.IMShow(frame); err != nil {
		return fmt.Errorf("imshow: %w", err)
	}
	return nil
}

func (d *windowDisplay) PollKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.window == nil {
		return KeyNone
	}
	return d.window.WaitKey(PollDelayMs) & 0xFF
}

func (d *windowDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.window == nil {
		return nil
	}
	err := d.window.Close()
	d.window = nil
	return err
}
