package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/directory"
	"github.com/five82/roster/internal/logging"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/state"
	"github.com/five82/roster/internal/ui"
)

// Options configure the roster application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roster/prefs.toml
	Overrides  config.Overrides

	// Stderr receives startup warnings printed before the TUI takes over
	// the terminal. Nil means os.Stderr.
	Stderr io.Writer
}

// Run boots the roster TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, closeLog, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	err = ui.Run(uiOpts)
	uiOpts.Logger.Info("stopped", "error", err)
	return err
}

// setup loads configuration and builds everything the UI needs.
func setup(ctx context.Context, opts Options) (ui.Options, func() error, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}

	// Logging is best effort: on error the logger discards and the TUI still runs.
	logger, closeLog, logErr := logging.New(logging.Options{
		Path:  cfg.LogFile,
		Level: cfg.LogLevel,
	})
	if logErr != nil {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintf(stderr, "roster: logging disabled: %v\n", logErr)
	}

	client, err := directory.NewClient(directory.Options{
		Endpoint: cfg.Endpoint,
		Results:  cfg.Results,
		Logger:   logger.Named("directory"),
	})
	if err != nil {
		_ = closeLog()
		return ui.Options{}, nil, fmt.Errorf("init directory client: %w", err)
	}

	logger.Info("starting", "endpoint", client.Endpoint(), "results", cfg.Results, "log_level", cfg.LogLevel)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	return ui.Options{
		Context:   ctx,
		Fetcher:   client,
		Store:     &state.Store{},
		Logger:    logger,
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	}, closeLog, nil
}
