package stream

import (
	"fmt"
	"time"
)

// Config controls the SSE and WebSocket feed transports.
type Config struct {
	// HeartbeatInterval is the period of SSE keepalive comments
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`

	// WriteWait bounds a single WebSocket write
	WriteWait time.Duration `yaml:"write_wait"`

	// PongWait is how long a WebSocket peer may stay silent; pings go out at 9/10 of it
	PongWait time.Duration `yaml:"pong_wait"`

	// MaxMessageSize limits inbound WebSocket messages
	MaxMessageSize int64 `yaml:"max_message_size"`

	// AllowedOrigins lists cross-origin WebSocket clients; same-host origins are always allowed
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: 15 * time.Second,
		WriteWait:         10 * time.Second,
		PongWait:          60 * time.Second,
		MaxMessageSize:    64 * 1024,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if c.WriteWait == 0 {
		c.WriteWait = defaults.WriteWait
	}
	if c.PongWait == 0 {
		c.PongWait = defaults.PongWait
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = defaults.MaxMessageSize
	}
}

// ApplyEnvOverrides applies environment variable overrides.
// No env vars for stream config currently.
func (c *Config) ApplyEnvOverrides() { _ = c }

// ResolvePaths resolves relative paths using the given base directory.
// No paths to resolve in stream config.
func (c *Config) ResolvePaths(_ string) { _ = c }

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.HeartbeatInterval < 0 || c.WriteWait < 0 || c.PongWait < 0 {
		return fmt.Errorf("stream intervals must not be negative")
	}
	if c.MaxMessageSize < 0 {
		return fmt.Errorf("stream.max_message_size must not be negative")
	}
	return nil
}

// pingPeriod must stay below PongWait.
func (c *Config) pingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}
