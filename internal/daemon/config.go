// Package daemon manages the tracker daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Tracker   TrackerConfig   `toml:"tracker"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TrackerConfig carries tracker-wide defaults.
type TrackerConfig struct {
	// DefaultPar is the daily point target for new profiles.
	DefaultPar int `toml:"default_par"`
	// DataDir overrides the database location.
	DataDir string `toml:"data_dir"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := trackerHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8977,
			CORSOrigins: []string{"*"},
		},
		Tracker: TrackerConfig{
			DefaultPar: 2,
			DataDir:    homeDir,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "partrack.log"),
		},
	}
}

// LoadConfig reads config from ~/.partrack/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(trackerHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Tracker.DefaultPar <= 0 {
		cfg.Tracker.DefaultPar = 2
	}
	if cfg.Tracker.DataDir == "" {
		cfg.Tracker.DataDir = trackerHome()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.partrack/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(trackerHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// trackerHome returns the tracker data directory.
func trackerHome() string {
	if env := os.Getenv("PARTRACK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".partrack")
}
