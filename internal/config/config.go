// Package config loads strata settings from ~/.strata/config.yaml and
// STRATA_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user directory holding the config file and database.
const Dir = ".strata"

const defaultConfigYAML = `# strata configuration
# Base URL of the planning API, e.g. https://plans.example.com
api_url: ""
api_token: ""

# IANA zone used when your profile has none.
timezone: ""

# Optional shared response cache, e.g. redis://localhost:6379/0
redis_url: ""
cache_ttl_seconds: 60

timeout_ms: 10000
max_retries: 1
log_use_cases: false
`

// Config is the effective configuration.
type Config struct {
	APIURL          string `yaml:"api_url"`
	APIToken        string `yaml:"api_token"`
	DBPath          string `yaml:"db_path"`
	Timezone        string `yaml:"timezone"`
	RedisURL        string `yaml:"redis_url"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	MaxRetries      int    `yaml:"max_retries"`
	LogUseCases     bool   `yaml:"log_use_cases"`
}

// Default returns a Config rooted at home.
func Default(home string) Config {
	return Config{
		DBPath:          filepath.Join(home, Dir, "strata.db"),
		CacheTTLSeconds: 60,
		TimeoutMs:       10000,
		MaxRetries:      1,
	}
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DefaultPath returns the config file location, honouring STRATA_CONFIG.
func DefaultPath(home string) string {
	if p := os.Getenv("STRATA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads defaults, then the YAML file at path if it exists, then the
// environment.
func Load(home, path string) (Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STRATA_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("STRATA_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("STRATA_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STRATA_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("STRATA_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("STRATA_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheTTLSeconds = n
		}
	}
	if v := os.Getenv("STRATA_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STRATA_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("STRATA_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
}

// Validate rejects values that would make the client misbehave.
func (c Config) Validate() error {
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must not be negative, got %d", c.CacheTTLSeconds)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// WriteDefault creates a commented config file at path unless one exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o600); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
