package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/five82/roster/internal/app"
	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/prefs"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp(app.Run).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "roster: %v\n", err)
		return 1
	}
	return 0
}

// newApp builds the CLI. runFn receives the parsed options.
func newApp(runFn func(context.Context, app.Options) error) *cli.App {
	return &cli.App{
		Name:    "roster",
		Usage:   "Browse a random user directory in the terminal",
		Version: Version,
		Flags:   flags(),
		Action: func(c *cli.Context) error {
			return runFn(c.Context, optionsFromContext(c))
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
			EnvVars: []string{"ROSTER_CONFIG"},
			Value:   config.DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "prefs",
			Usage:   "preferences file path",
			EnvVars: []string{"ROSTER_PREFS"},
			Value:   prefs.DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Aliases: []string{"e"},
			Usage:   "directory service URL (env ROSTER_ENDPOINT)",
		},
		&cli.IntFlag{
			Name:    "results",
			Aliases: []string{"n"},
			Usage:   "number of users to fetch (env ROSTER_RESULTS)",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "log file path (env ROSTER_LOG_FILE)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: trace, debug, info, warn, error, off (env ROSTER_LOG_LEVEL)",
		},
	}
}

// optionsFromContext maps flags to app options. Only flags given on the
// command line become overrides; ROSTER_* variables are read by config.Load.
func optionsFromContext(c *cli.Context) app.Options {
	opts := app.Options{
		ConfigPath: c.String("config"),
		PrefsPath:  c.String("prefs"),
		Overrides: config.Overrides{
			Endpoint: c.String("endpoint"),
			LogFile:  c.String("log-file"),
			LogLevel: c.String("log-level"),
		},
	}
	if c.IsSet("results") {
		n := c.Int("results")
		opts.Overrides.Results = &n
	}
	return opts
}
