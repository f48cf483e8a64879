package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/syntrixbase/notes/internal/api/stream"
	"github.com/syntrixbase/notes/internal/relay"
	"github.com/syntrixbase/notes/internal/server"
	storage "github.com/syntrixbase/notes/internal/storage/config"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server  server.Config  `yaml:"server"`
	Storage storage.Config `yaml:"storage"`
	Logging LoggingConfig  `yaml:"logging"`

	// Change feed consumers
	Stream stream.Config `yaml:"stream"`
	Relay  relay.Config  `yaml:"relay"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server:  server.DefaultConfig(),
		Storage: storage.DefaultConfig(),
		Logging: DefaultLoggingConfig(),
		Stream:  stream.DefaultConfig(),
		Relay:   relay.DefaultConfig(),
	}
}

// LoadConfig loads configuration from configDir and the environment.
// Order: defaults -> config.yml -> config.local.yml -> ApplyDefaults -> ApplyEnvOverrides -> ResolvePaths -> Validate
func LoadConfig(configDir string) (*Config, error) {
	cfg := DefaultConfig()

	loadFile(filepath.Join(configDir, "config.yml"), cfg)
	loadFile(filepath.Join(configDir, "config.local.yml"), cfg)

	if err := ApplyServiceConfigs(configDir,
		&cfg.Server,
		&cfg.Storage,
		&cfg.Logging,
		&cfg.Stream,
		&cfg.Relay,
	); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// loadFile merges a YAML file into cfg. Missing files are skipped; unreadable
// or malformed ones are reported and skipped so the defaults stay in effect.
func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		slog.Warn("Error reading config file", "file", filename, "error", err)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("Error parsing config file", "file", filename, "error", err)
	}
}
