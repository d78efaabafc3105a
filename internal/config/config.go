// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"titlequote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Feed contains rate feed configuration
	Feed FeedConfig `json:"feed"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// FeedConfig contains rate feed settings
type FeedConfig struct {
	// Backend selects the feed source (file, postgres)
	Backend string `json:"backend"`

	// Path is the feed snapshot file, when Backend is "file"
	Path string `json:"path"`

	// Postgres holds connection settings, when Backend is "postgres"
	Postgres PostgresConfig `json:"postgres,omitempty"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// DSN returns the PostgreSQL connection string
func (c PostgresConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	feedPath := filepath.Join(homeDir, ".titlequote", "feed.json")

	return &Config{
		Version: "1.0",
		Feed: FeedConfig{
			Backend: "file",
			Path:    feedPath,
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     "5432",
				User:     "titlequote",
				Database: "titlequote",
				SSLMode:  "disable",
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, layering .env and environment
// variable overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from the environment. A .env file in
// the working directory is honored when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	c.Feed.Backend = getEnv("TITLEQUOTE_FEED_BACKEND", c.Feed.Backend)
	c.Feed.Path = getEnv("TITLEQUOTE_FEED_PATH", c.Feed.Path)
	c.Server.Addr = getEnv("TITLEQUOTE_ADDR", c.Server.Addr)

	c.Feed.Postgres.Host = getEnv("POSTGRES_HOST", c.Feed.Postgres.Host)
	c.Feed.Postgres.Port = getEnv("POSTGRES_PORT", c.Feed.Postgres.Port)
	c.Feed.Postgres.User = getEnv("POSTGRES_USER", c.Feed.Postgres.User)
	c.Feed.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Feed.Postgres.Password)
	c.Feed.Postgres.Database = getEnv("POSTGRES_DB", c.Feed.Postgres.Database)
	c.Feed.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", c.Feed.Postgres.SSLMode)
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
