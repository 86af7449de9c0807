package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colorwatch.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Output.Save {
		t.Error("saving should be off by default")
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("Output.Dir = %q, want output", cfg.Output.Dir)
	}
	if cfg.Recorder.Backend != "gocv" {
		t.Errorf("Recorder.Backend = %q, want gocv", cfg.Recorder.Backend)
	}
	if cfg.Window.Title != "Color Detection" {
		t.Errorf("Window.Title = %q", cfg.Window.Title)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
camera:
  device: 2
output:
  save: true
  dir: /tmp/videos
recorder:
  backend: ffmpeg
store:
  path: /tmp/colorwatch.db
http:
  addr: ":8080"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.Device != 2 {
		t.Errorf("Camera.Device = %d, want 2", cfg.Camera.Device)
	}
	if !cfg.Output.Save || cfg.Output.Dir != "/tmp/videos" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Recorder.Backend != "ffmpeg" {
		t.Errorf("Recorder.Backend = %q, want ffmpeg", cfg.Recorder.Backend)
	}
	if cfg.Store.Path != "/tmp/colorwatch.db" || cfg.HTTP.Addr != ":8080" {
		t.Errorf("Store/HTTP = %+v %+v", cfg.Store, cfg.HTTP)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// Unset fields keep defaults.
	if cfg.Window.Title != "Color Detection" {
		t.Errorf("Window.Title = %q, want default", cfg.Window.Title)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative device", "camera:\n  device: -1\n"},
		{"unknown backend", "recorder:\n  backend: vhs\n"},
		{"save without dir", "output:\n  save: true\n  dir: \"\"\n"},
		{"bad log format", "log:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}
	if _, err := Load(writeConfig(t, "camera: [1, 2\n")); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}
