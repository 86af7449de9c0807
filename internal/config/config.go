// Package config loads runtime settings from YAML with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/colorwatch/internal/display"
	"github.com/ayusman/colorwatch/internal/logging"
	"github.com/ayusman/colorwatch/internal/recorder"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings. Detection sensitivity is fixed and not part of it.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Output   OutputConfig   `yaml:"output"`
	Recorder RecorderConfig `yaml:"recorder"`
	Window   WindowConfig   `yaml:"window"`
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
}

type CameraConfig struct {
	Device int `yaml:"device"`
}

type OutputConfig struct {
	// Save enables the recorder; recording still starts only on the toggle key.
	Save bool   `yaml:"save"`
	Dir  string `yaml:"dir"`
}

type RecorderConfig struct {
	Backend string `yaml:"backend"`
}

type WindowConfig struct {
	Title string `yaml:"title"`
}

type StoreConfig struct {
	// Path of the SQLite recording catalog; empty disables it.
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	// Addr of the status server; empty disables it.
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with sensible default values.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir: "output",
		},
		Recorder: RecorderConfig{
			Backend: string(recorder.BackendGoCV),
		},
		Window: WindowConfig{
			Title: display.DefaultTitle,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads path over the defaults. A missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Camera.Device < 0 {
		return fmt.Errorf("%w: camera.device must be >= 0, got %d", ErrInvalidConfig, c.Camera.Device)
	}
	if _, err := recorder.ParseBackend(c.Recorder.Backend); err != nil {
		return fmt.Errorf("%w: recorder.backend: %v", ErrInvalidConfig, err)
	}
	if c.Output.Save && c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is required when output.save is set", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q", ErrInvalidConfig, logging.FormatConsole, logging.FormatJSON)
	}
	return nil
}
