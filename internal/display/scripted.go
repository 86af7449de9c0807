package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// ScriptedDisplay replays a fixed sequence of key presses, one per PollKey.
// Once the script runs out it keeps returning KeyQuit so loops terminate.
type ScriptedDisplay struct {
	keys   []int
	index  int
	shown  int
	last   gocv.Mat
	closed bool
	err    error
	mu     sync.Mutex
}

// NewScriptedDisplay creates a display that answers PollKey from keys.
func NewScriptedDisplay(keys ...int) *ScriptedDisplay {
	return &ScriptedDisplay{keys: keys, last: gocv.NewMat()}
}

// SetShowError makes every following Show fail with err.
func (d *ScriptedDisplay) SetShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Show counts the frame and keeps a copy of the most recent one.
func (d *ScriptedDisplay) Show(frame gocv.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	frame.CopyTo(&d.last)
	d.shown++
	return nil
}

func (d *ScriptedDisplay) PollKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index >= len(d.keys) {
		return KeyQuit
	}
	k := d.keys[d.index]
	d.index++
	return k
}

// Close marks the display closed. The last frame stays readable until Release.
func (d *ScriptedDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Release frees the copy of the last shown frame.
func (d *ScriptedDisplay) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last.Close()
}

// Shown returns how many frames were shown.
func (d *ScriptedDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Last returns the most recently shown frame.
func (d *ScriptedDisplay) Last() gocv.Mat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Closed reports whether Close was called.
func (d *ScriptedDisplay) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
