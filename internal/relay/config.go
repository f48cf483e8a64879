package relay

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Config controls relaying live note changes to NATS.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`

	// SubjectPrefix is prepended to the lower-case event kind, e.g. notes.events.inserted
	SubjectPrefix string `yaml:"subject_prefix"`

	// RestartBackoff is the initial delay before restarting a failed relay; it doubles up to MaxRestartBackoff
	RestartBackoff    time.Duration `yaml:"restart_backoff"`
	MaxRestartBackoff time.Duration `yaml:"max_restart_backoff"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:           false,
		URL:               nats.DefaultURL,
		SubjectPrefix:     "notes.events",
		RestartBackoff:    time.Second,
		MaxRestartBackoff: 30 * time.Second,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.URL == "" {
		c.URL = defaults.URL
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = defaults.SubjectPrefix
	}
	if c.RestartBackoff == 0 {
		c.RestartBackoff = defaults.RestartBackoff
	}
	if c.MaxRestartBackoff == 0 {
		c.MaxRestartBackoff = defaults.MaxRestartBackoff
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if val := os.Getenv("NOTES_NATS_URL"); val != "" {
		c.URL = val
	}
}

// ResolvePaths resolves relative paths using the given base directory.
// No paths to resolve in relay config.
func (c *Config) ResolvePaths(_ string) { _ = c }

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" {
		return fmt.Errorf("relay.url is required when relay is enabled")
	}
	if c.SubjectPrefix == "" || strings.HasSuffix(c.SubjectPrefix, ".") || strings.ContainsAny(c.SubjectPrefix, " *>") {
		return fmt.Errorf("relay.subject_prefix %q is not a valid NATS subject prefix", c.SubjectPrefix)
	}
	if c.RestartBackoff < 0 || c.MaxRestartBackoff < c.RestartBackoff {
		return fmt.Errorf("relay.max_restart_backoff must be at least relay.restart_backoff")
	}
	return nil
}
