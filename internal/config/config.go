// Package config loads MoviWeb settings from defaults, an optional YAML file
// and the environment, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	OMDb     OMDbConfig     `koanf:"omdb"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// OMDbConfig configures the metadata lookup. An empty APIKey disables enrichment.
type OMDbConfig struct {
	URL    string `koanf:"url"`
	APIKey string `koanf:"api_key"`
}

type SecurityConfig struct {
	SecretKey    string `koanf:"secret_key"`
	CookieSecure bool   `koanf:"cookie_secure"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // console, json, both
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EnrichmentEnabled reports whether OMDb lookups should be attempted.
func (c OMDbConfig) EnrichmentEnabled() bool {
	return c.APIKey != ""
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "moviweb.db",
		},
		OMDb: OMDbConfig{
			URL:    "http://www.omdbapi.com/",
			APIKey: "",
		},
		Security: SecurityConfig{
			SecretKey:    "",
			CookieSecure: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "both",
		},
	}
}

var envMappings = map[string]string{
	"port":             "server.port",
	"http_host":        "server.host",
	"shutdown_timeout": "server.shutdown_timeout",
	"database_path":    "database.path",
	"omdb_url":         "omdb.url",
	"omdb_api_key":     "omdb.api_key",
	"secret_key":       "security.secret_key",
	"cookie_secure":    "security.cookie_secure",
	"log_level":        "logging.level",
	"log_format":       "logging.format",
}

// envTransformFunc maps known environment variables to koanf paths and
// drops everything else.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration. path may be empty, in which case CONFIG_PATH
// and DefaultConfigPaths are consulted. A .env file in the working directory
// is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Security.SecretKey == "" {
		return errors.New("SECRET_KEY is required to sign flash messages")
	}
	if len(c.Security.SecretKey) < 16 {
		return errors.New("SECRET_KEY must be at least 16 characters")
	}
	switch c.Logging.Format {
	case "console", "json", "both":
	default:
		return fmt.Errorf("logging.format must be console, json or both, got %q", c.Logging.Format)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
