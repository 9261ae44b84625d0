package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corpusio/newsline/pkg/newsline/internalerr"
)

// Config is the full tool configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Ingest IngestConfig `yaml:"ingest"`
	Query  QueryConfig  `yaml:"query"`
}

// StoreConfig selects and configures the document-store backend.
type StoreConfig struct {
	Backend string       `yaml:"backend"` // "mongo" or "sqlite"
	Mongo   MongoConfig  `yaml:"mongo"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// SQLiteConfig holds the embedded-database settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// IngestConfig holds loader settings.
type IngestConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	TopN int `yaml:"top_n"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: "mongo",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "newsdb",
				Collection: "articles",
			},
			SQLite: SQLiteConfig{
				Path: "newsline.db",
			},
		},
		Ingest: IngestConfig{BatchSize: 1000},
		Query:  QueryConfig{TopN: 5},
	}
}

// Load reads a YAML configuration file over the defaults and validates
// the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "mongo":
		if c.Store.Mongo.URI == "" || c.Store.Mongo.Database == "" || c.Store.Mongo.Collection == "" {
			return fmt.Errorf("mongo backend needs uri, database and collection: %w", internalerr.ErrInvalidConfig)
		}
	case "sqlite":
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("sqlite backend needs a path: %w", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown store backend %q: %w", c.Store.Backend, internalerr.ErrInvalidConfig)
	}

	if c.Ingest.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d: %w", c.Ingest.BatchSize, internalerr.ErrInvalidConfig)
	}
	if c.Query.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d: %w", c.Query.TopN, internalerr.ErrInvalidConfig)
	}
	return nil
}
