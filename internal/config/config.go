package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings roster needs at startup.
type Config struct {
	Endpoint string `env:"ROSTER_ENDPOINT"`
	Results  int    `env:"ROSTER_RESULTS"`
	LogFile  string `env:"ROSTER_LOG_FILE"`
	LogLevel string `env:"ROSTER_LOG_LEVEL"`
}

// Overrides come from command-line flags and win over file and env values.
// Empty strings and a nil Results are ignored.
type Overrides struct {
	Endpoint string
	Results  *int
	LogFile  string
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/roster/config.toml"
	defaultEndpoint   = "https://randomuser.me/api/"
	defaultResults    = 100
	defaultLogFile    = "~/.local/state/roster/roster.log"
	defaultLogLevel   = "info"

	// maxResults is the largest page the directory service will generate.
	maxResults = 5000
)

var validLevels = []string{"trace", "debug", "info", "warn", "error", "off"}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	return Config{
		Endpoint: defaultEndpoint,
		Results:  defaultResults,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
	}
}

// Load reads the config file at path (or the default location), then applies
// ROSTER_* environment variables, then overrides. A missing file is not an
// error.
func Load(path string, overrides Overrides) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.apply(overrides)

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the unexpanded default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint string `toml:"endpoint"`
		Results  *int   `toml:"results"`
		LogFile  string `toml:"log_file"`
		LogLevel string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if raw.Results != nil {
		cfg.Results = *raw.Results
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func (c *Config) apply(o Overrides) {
	if v := strings.TrimSpace(o.Endpoint); v != "" {
		c.Endpoint = v
	}
	if o.Results != nil {
		c.Results = *o.Results
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) normalize() error {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}

	if c.Results <= 0 || c.Results > maxResults {
		return fmt.Errorf("results must be between 1 and %d, got %d", maxResults, c.Results)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if !slices.Contains(validLevels, c.LogLevel) {
		return fmt.Errorf("log_level %q is not one of %s", c.LogLevel, strings.Join(validLevels, ", "))
	}

	logFile := strings.TrimSpace(c.LogFile)
	if logFile == "" {
		logFile = defaultLogFile
	}
	expanded, err := expandPath(logFile)
	if err != nil {
		return fmt.Errorf("log_file: %w", err)
	}
	c.LogFile = expanded
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
