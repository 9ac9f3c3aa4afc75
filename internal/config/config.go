// Package config loads the termbridge YAML configuration and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"termbridge"
	"termbridge/internal/logger"
)

// Environment overrides.
const (
	EnvLogPath  = "TERMBRIDGE_LOG_PATH"
	EnvLogLevel = "TERMBRIDGE_LOG_LEVEL"
	EnvStrict   = "TERMBRIDGE_STRICT"
)

// Config is the on-disk configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Terminal TerminalConfig `yaml:"terminal"`
	Strict   StrictConfig   `yaml:"strict"`
	Theme    string         `yaml:"theme"`
}

type LogConfig struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type TerminalConfig struct {
	Mouse          bool `yaml:"mouse"`
	BracketedPaste bool `yaml:"bracketed_paste"`
	FocusEvents    bool `yaml:"focus_events"`
}

// StrictConfig turns the silent fallbacks into errors.
type StrictConfig struct {
	Styles bool `yaml:"styles"`
	Layout bool `yaml:"layout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Theme: "dark",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Terminal: TerminalConfig{
			Mouse:          true,
			BracketedPaste: true,
			FocusEvents:    true,
		},
	}
}

// Load reads path over the defaults, then applies the environment. An
// empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	if _, ok := termbridge.ThemeByName(cfg.Theme); !ok {
		return nil, fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogPath); ok {
		c.Log.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvStrict); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Strict.Styles = strict
		c.Strict.Layout = strict
	}
	return nil
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Path:       c.Log.Path,
		Level:      c.Log.Level,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

// Options maps the configuration onto session options.
func (c *Config) Options(log *slog.Logger) termbridge.Options {
	theme, _ := termbridge.ThemeByName(c.Theme)
	return termbridge.Options{
		Logger:         log,
		Theme:          theme,
		StrictStyles:   c.Strict.Styles,
		StrictLayout:   c.Strict.Layout,
		Mouse:          c.Terminal.Mouse,
		BracketedPaste: c.Terminal.BracketedPaste,
		FocusEvents:    c.Terminal.FocusEvents,
	}
}
