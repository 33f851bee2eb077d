// Package config loads service configuration with layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "W2D_CONFIG"

// envPrefix namespaces the service's environment variables:
// W2D_SERVER_PORT -> server.port, W2D_DATABASE_PATH -> database.path.
const envPrefix = "W2D_"

// defaultConfigPaths lists the paths where a config file is searched, first
// match wins.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/what2do/config.yaml",
}

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// AuthConfig configures bearer-token validation. An empty secret disables
// authentication entirely (local development).
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// LoggingConfig configures log verbosity. An empty level defers to the
// LOG_LEVEL environment variable read at startup.
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "./data/what2do.db",
		},
		Auth: AuthConfig{
			JWTSecret: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration with precedence ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		// W2D_SERVER_PORT -> server.port
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path required")
	}
	return nil
}

// findConfigFile returns the first readable config file, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
