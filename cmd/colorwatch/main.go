package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ayusman/colorwatch/internal/app"
	"github.com/ayusman/colorwatch/internal/config"
	"github.com/ayusman/colorwatch/internal/logging"
	"github.com/ayusman/colorwatch/internal/palette"
	"github.com/ayusman/colorwatch/internal/recorder"
	"github.com/ayusman/colorwatch/internal/server"
	"github.com/ayusman/colorwatch/internal/store"
)

// defaultColor is the B,G,R triple used when no color is given (yellow).
const defaultColor = "0,255,255"

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options is the parsed command line.
type options struct {
	configPath string
	color      string
	all        bool
	cfg        config.Config
}

// parseArgs builds the runtime configuration: defaults, then the config
// file, then any flag given explicitly on the command line.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("colorwatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		color      = fs.String("color", defaultColor, "palette color name or B,G,R triple")
		all        = fs.Bool("all", false, "run one session per palette color")
		save       = fs.Bool("save", false, "enable recording (toggle with 'r')")
		out        = fs.String("out", "", "directory for recordings")
		device     = fs.Int("device", 0, "camera device index")
		backend    = fs.String("backend", "", "recorder backend: gocv or ffmpeg")
		addr       = fs.String("http", "", "status server address, e.g. :8080")
		dbPath     = fs.String("db", "", "SQLite recording catalog path")
		logLevel   = fs.String("log-level", "", "log level: debug, info, warn, error")
	)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return options{}, err
		}
		cfg = loaded
	}

	colorSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			colorSet = true
		case "save":
			cfg.Output.Save = *save
		case "out":
			cfg.Output.Dir = *out
		case "device":
			cfg.Camera.Device = *device
		case "backend":
			cfg.Recorder.Backend = *backend
		case "http":
			cfg.HTTP.Addr = *addr
		case "db":
			cfg.Store.Path = *dbPath
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	if *all && colorSet {
		return options{}, errors.New("-color cannot be combined with -all")
	}

	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	return options{
		configPath: *configPath,
		color:      *color,
		all:        *all,
		cfg:        cfg,
	}, nil
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	cfg := opts.cfg

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	// Resolve the color before touching the camera so a bad name fails fast.
	var target palette.Target
	if !opts.all {
		target, err = palette.ParseSpec(opts.color)
		if err != nil {
			return err
		}
	}

	backend, err := recorder.ParseBackend(cfg.Recorder.Backend)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.New(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer st.Close()
		log.Info().Str("path", cfg.Store.Path).Msg("recording catalog opened")
	}

	appCfg := app.Config{
		CameraID:    cfg.Camera.Device,
		Save:        cfg.Output.Save,
		OutputDir:   cfg.Output.Dir,
		Backend:     backend,
		WindowTitle: cfg.Window.Title,
		Store:       st,
	}

	if cfg.HTTP.Addr != "" {
		hub := server.NewHub()
		appCfg.Publisher = hub

		srv := server.New(server.Config{
			MediaDir: cfg.Output.Dir,
			Store:    st,
			Hub:      hub,
		})
		go func() {
			if err := srv.ListenAndServe(cfg.HTTP.Addr); err != nil {
				log.Error().Err(err).Msg("status server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("status server shutdown")
			}
		}()
	}

	a := app.New(appCfg)

	if opts.all {
		return a.RunAll()
	}

	summary, err := a.Run(target)
	if err != nil {
		return err
	}
	if summary.RecordingPath != "" {
		log.Info().
			Str("path", summary.RecordingPath).
			Int("frames", summary.RecordedFrames).
			Msg("recording saved")
	}
	return nil
}
