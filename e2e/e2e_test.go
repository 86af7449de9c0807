package e2e

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/ayusman/colorwatch/internal/app"
	"github.com/ayusman/colorwatch/internal/capture"
	"github.com/ayusman/colorwatch/internal/display"
	"github.com/ayusman/colorwatch/internal/fixtures"
	"github.com/ayusman/colorwatch/internal/palette"
	"github.com/ayusman/colorwatch/internal/recorder"
	"github.com/ayusman/colorwatch/internal/server"
	"github.com/ayusman/colorwatch/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	hub := server.NewHub()
	srv := server.New(server.Config{Store: s, Hub: hub, MediaDir: tmpDir})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("ResolveColor", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/colors/blue")
		if err != nil {
			t.Fatalf("get color error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	// Subscribe to the detection feed before the session starts.
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/detections"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("detection client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A blue object moving across four frames.
	var frames []*gocv.Mat
	var want []image.Rectangle
	for i := 0; i < 4; i++ {
		r := image.Rect(50+i*100, 120, 130+i*100, 200)
		f := fixtures.FrameWithRects(palette.BGR{B: 255}, r)
		frames = append(frames, &f)
		want = append(want, r)
	}
	defer fixtures.CloseAll(frames)

	cam := capture.NewMockCamera(frames, false)
	win := display.NewScriptedDisplay(display.KeyRecord, display.KeyNone, display.KeyRecord)
	defer win.Release()
	rec := recorder.NewMockRecorder("")
	defer rec.Release()

	application := app.New(app.Config{
		Save:      true,
		OutputDir: tmpDir,
		Store:     s,
		Publisher: hub,
	})
	application.SetCamera(cam)
	application.SetDisplayFactory(func(string) display.Display { return win })
	application.SetRecorderOpener(recorder.MockOpener(rec, nil))

	target, err := palette.ParseSpec("Blue")
	if err != nil {
		t.Fatalf("ParseSpec() error = %v", err)
	}

	var summary app.Summary
	t.Run("RunSession", func(t *testing.T) {
		summary, err = application.Run(target)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if summary.Frames != 4 {
			t.Errorf("frames = %d, want 4", summary.Frames)
		}
		// Toggled on after frame 1, off after frame 3.
		if summary.RecordedFrames != 2 {
			t.Errorf("recorded frames = %d, want 2", summary.RecordedFrames)
		}
		if rec.Closes() != 1 {
			t.Errorf("recorder closes = %d, want 1", rec.Closes())
		}
	})

	t.Run("DetectionFeed", func(t *testing.T) {
		for i, r := range want {
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			var ev app.Event
			if err := conn.ReadJSON(&ev); err != nil {
				t.Fatalf("event %d: read error = %v", i, err)
			}
			if ev.Color != "blue" || ev.Frame != i+1 {
				t.Errorf("event %d = %+v", i, ev)
			}
			if len(ev.Rects) != 1 || ev.Rects[0] != r {
				t.Errorf("event %d rects = %v, want [%v]", i, ev.Rects, r)
			}
		}
	})

	t.Run("RecordingCataloged", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/recordings?color=blue")
		if err != nil {
			t.Fatalf("list recordings error = %v", err)
		}
		defer resp.Body.Close()

		var listed struct {
			Recordings []struct {
				ID      string `json:"id"`
				Path    string `json:"path"`
				Frames  int    `json:"frames"`
				EndedAt string `json:"ended_at"`
			} `json:"recordings"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
			t.Fatalf("decode error = %v", err)
		}

		if len(listed.Recordings) != 1 {
			t.Fatalf("recordings = %d, want 1", len(listed.Recordings))
		}
		got := listed.Recordings[0]
		if got.Path != summary.RecordingPath || got.Frames != 2 || got.EndedAt == "" {
			t.Errorf("recording = %+v, want path %s with 2 frames", got, summary.RecordingPath)
		}
	})
}
