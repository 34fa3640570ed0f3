// Package logging builds roster's hclog logger. The TUI owns the terminal,
// so output goes to a file and never to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configure New.
type Options struct {
	Path  string // log file; empty discards output
	Level string // trace, debug, info, warn, error, off
}

// New opens (appending) the log file and returns a logger writing to it
// together with a close func. When the file cannot be opened the logger
// discards output and err explains why; the returned logger is always usable.
func New(opts Options) (hclog.Logger, func() error, error) {
	var (
		out     io.Writer = io.Discard
		closeFn           = func() error { return nil }
		openErr error
	)

	if path := strings.TrimSpace(opts.Path); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			openErr = err
		} else {
			out = f
			closeFn = f.Close
		}
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "roster",
		Level:  ParseLevel(opts.Level),
		Output: out,
	})
	return logger, closeFn, openErr
}

// ParseLevel maps a config level name to an hclog level, defaulting to Info.
func ParseLevel(level string) hclog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return hclog.Trace
	case "debug":
		return hclog.Debug
	case "warn", "warning":
		return hclog.Warn
	case "error":
		return hclog.Error
	case "off":
		return hclog.Off
	default:
		return hclog.Info
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
