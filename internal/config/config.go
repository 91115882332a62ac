// Package config loads tool configuration from an optional YAML file with
// environment variable overrides on top.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tool configuration.
type Config struct {
	DBPath      string       `yaml:"db_path"`
	DefaultView string       `yaml:"default_view"`
	Log         LogConfig    `yaml:"log"`
	Export      ExportConfig `yaml:"export"`
}

// LogConfig controls the structured logger. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ExportConfig overrides SVG export geometry. Zero values keep the
// renderer's defaults.
type ExportConfig struct {
	Width      int `yaml:"width"`
	LabelWidth int `yaml:"label_width"`
	LaneHeight int `yaml:"lane_height"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DBPath:      defaultDBPath(),
		DefaultView: "main",
		Log:         LogConfig{Level: "warn"},
	}
}

// Load reads configuration from path, falling back to the default location
// and then to defaults when no file exists. Environment variables override
// file values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = defaultConfigPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// no file is fine
	default:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OKBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OKBOARD_VIEW"); v != "" {
		cfg.DefaultView = v
	}
	if v := os.Getenv("OKBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OKBOARD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("OKBOARD_EXPORT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.Width = n
		}
	}
}

// SlogLevel maps the configured level string onto a slog.Level, defaulting
// to warn for unknown values.
func (c Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".okboard", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "okboard.db"
	}
	return filepath.Join(home, ".okboard", "okboard.db")
}
