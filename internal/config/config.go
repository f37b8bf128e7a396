// Package config loads gateway configuration from YAML with environment
// variable expansion.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string          `yaml:"listen_addr"`
	APIKey     string          `yaml:"api_key"`
	RulesPath  string          `yaml:"rules_path"`
	DB         DBConfig        `yaml:"db"`
	Cache      CacheConfig     `yaml:"cache"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

type DBConfig struct {
	// Driver selects the store backend: memory, sqlite, or postgres.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	RedisAddr  string `yaml:"redis_addr"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// Load reads the file at path, expands ${VAR} references from the
// environment, and validates the result.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(strings.ReplaceAll(string(raw), "\r\n", "\n"))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	switch c.DB.Driver {
	case "", "memory":
	case "sqlite", "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Cache.Enabled {
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required when cache is enabled")
		}
		if c.Cache.TTLSeconds <= 0 {
			return fmt.Errorf("cache.ttl_seconds must be positive when cache is enabled")
		}
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate_limit.rps must be positive when rate limiting is enabled")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be positive when rate limiting is enabled")
		}
	}
	return nil
}
