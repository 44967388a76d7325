// Package config loads the service configuration from a YAML file, falling
// back to built-in defaults when the file or individual values are absent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable overriding the config path.
const EnvConfigPath = "RESOURCE_API_CONFIG"

// DefaultConfigFile is the config file name looked up when no override is set.
const DefaultConfigFile = "config.yaml"

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// CacheConfig holds page-cache settings.
type CacheConfig struct {
	DefaultTTLSeconds int `yaml:"default_ttl_seconds"`
}

// PaginationConfig bounds page sizes.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// VersionConfig describes the supported API version set and the deprecation
// metadata attached to the oldest supported version.
type VersionConfig struct {
	Supported     []string `yaml:"supported"`
	Default       string   `yaml:"default"`
	Sunset        string   `yaml:"sunset"`
	SuccessorLink string   `yaml:"successor_link"`
}

// Config is the root of the service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Cache      CacheConfig      `yaml:"cache"`
	Pagination PaginationConfig `yaml:"pagination"`
	Version    VersionConfig    `yaml:"version"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Server:     ServerConfig{Port: 8008},
		Cache:      CacheConfig{DefaultTTLSeconds: 30},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		Version: VersionConfig{
			Supported:     []string{"1.0", "1.1", "2.0"},
			Default:       "1.0",
			Sunset:        "2026-12-31T00:00:00Z",
			SuccessorLink: "https://example.com/docs/api/v2",
		},
	}
}

// Load reads the config file named by RESOURCE_API_CONFIG (or config.yaml).
// A missing file yields the defaults; a malformed file is an error. Values
// omitted from the file keep their defaults.
func Load() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// LoadFile reads and merges one config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return fmt.Errorf("pagination limits out of order: default=%d max=%d",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}
	if c.Cache.DefaultTTLSeconds < 1 {
		return fmt.Errorf("cache TTL must be at least 1s, got %ds", c.Cache.DefaultTTLSeconds)
	}
	if len(c.Version.Supported) == 0 {
		return fmt.Errorf("version.supported must not be empty")
	}
	return nil
}

// CacheTTL returns the default cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.DefaultTTLSeconds) * time.Second
}
