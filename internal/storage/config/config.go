package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the note storage configuration
type Config struct {
	Mongo MongoConfig `yaml:"mongo"`

	// NotesCollection is the collection notes are stored in and watched on
	NotesCollection string `yaml:"notes_collection"`

	// ChangeStreamBatchSize bounds notifications per change stream round trip, 0 lets the server decide
	ChangeStreamBatchSize int32 `yaml:"change_stream_batch_size"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	DatabaseName   string        `yaml:"database_name"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017/?replicaSet=rs0",
			DatabaseName:   "notes",
			ConnectTimeout: 10 * time.Second,
		},
		NotesCollection: "notes",
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.Mongo.URI == "" {
		c.Mongo.URI = defaults.Mongo.URI
	}
	if c.Mongo.DatabaseName == "" {
		c.Mongo.DatabaseName = defaults.Mongo.DatabaseName
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = defaults.Mongo.ConnectTimeout
	}
	if c.NotesCollection == "" {
		c.NotesCollection = defaults.NotesCollection
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if val := os.Getenv("NOTES_MONGO_URI"); val != "" {
		c.Mongo.URI = val
	}
	if val := os.Getenv("NOTES_MONGO_DATABASE"); val != "" {
		c.Mongo.DatabaseName = val
	}
}

// ResolvePaths resolves relative paths using the given base directory.
// No paths to resolve in storage config.
func (c *Config) ResolvePaths(_ string) { _ = c }

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("storage.mongo.uri is required")
	}
	if c.Mongo.DatabaseName == "" {
		return fmt.Errorf("storage.mongo.database_name is required")
	}
	if c.NotesCollection == "" {
		return fmt.Errorf("storage.notes_collection is required")
	}
	if c.ChangeStreamBatchSize < 0 {
		return fmt.Errorf("storage.change_stream_batch_size must not be negative")
	}
	return nil
}
