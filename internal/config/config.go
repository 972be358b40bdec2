// Package config loads textbuddy settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"textbuddy/internal/logging"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables consulted by Load.
const (
	EnvConfig   = "TEXTBUDDY_CONFIG"
	EnvLogLevel = "TEXTBUDDY_LOG_LEVEL"
	EnvPrompt   = "TEXTBUDDY_PROMPT"
	EnvNoColor  = "NO_COLOR"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidColor  = errors.New("invalid color mode")
	ErrInvalidFormat = errors.New("invalid print format")
)

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds every user-tunable setting.
type Config struct {
	Prompt      string   `yaml:"prompt"`
	LogLevel    string   `yaml:"log_level"`
	LogFile     string   `yaml:"log_file"`
	Color       string   `yaml:"color"`
	LockTimeout Duration `yaml:"lock_timeout"`
	Format      string   `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:      "command: ",
		LogLevel:    "warn",
		Color:       ColorAuto,
		LockTimeout: Duration(3 * time.Second),
		Format:      "table",
	}
}

// DefaultPath returns $TEXTBUDDY_CONFIG, or config.yaml under the user config dir.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "textbuddy", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "textbuddy", "config.yaml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error when path was not given explicitly.
// Values are not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		c.Prompt = v
	}
	if os.Getenv(EnvNoColor) != "" {
		c.Color = ColorNever
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
	}
	switch strings.ToLower(c.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
	switch strings.ToLower(c.Format) {
	case "table", "plain", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive, got %s", time.Duration(c.LockTimeout))
	}
	return nil
}
