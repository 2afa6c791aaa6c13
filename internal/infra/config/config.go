package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the client.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
}

// APIConfig points the transport at the guide service.
type APIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
	// GuideTimeout covers guide generation only; the server can spend
	// minutes on a single itinerary.
	GuideTimeout time.Duration `yaml:"guideTimeout"`
}

// SessionConfig selects where the session snapshot lives.
type SessionConfig struct {
	Backend string       `yaml:"backend"`
	Path    string       `yaml:"path"`
	Valkey  ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection details for the valkey backend.
type ValkeyConfig struct {
	Addr string        `yaml:"addr"`
	Key  string        `yaml:"key"`
	TTL  time.Duration `yaml:"ttl"`
}

// Session backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendValkey = "valkey"
)

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8000",
			Timeout:      30 * time.Second,
			GuideTimeout: 5 * time.Minute,
		},
		Session: SessionConfig{
			Backend: BackendFile,
		},
	}
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	// .env is a convenience for development; a missing file is fine.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCAPET_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SCAPET_API_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = parsed
		}
	}
	if v := os.Getenv("SCAPET_GUIDE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.API.GuideTimeout = parsed
		}
	}
	if v := os.Getenv("SCAPET_SESSION_BACKEND"); v != "" {
		cfg.Session.Backend = v
	}
	if v := os.Getenv("SCAPET_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("SCAPET_VALKEY_ADDR"); v != "" {
		cfg.Session.Valkey.Addr = v
	}
	if v := os.Getenv("SCAPET_VALKEY_KEY"); v != "" {
		cfg.Session.Valkey.Key = v
	}
	if v := os.Getenv("SCAPET_VALKEY_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.Valkey.TTL = parsed
		}
	}
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.baseUrl must be set")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.API.GuideTimeout <= 0 {
		return errors.New("api.guideTimeout must be positive")
	}
	switch c.Session.Backend {
	case BackendFile, BackendMemory:
	case BackendValkey:
		if c.Session.Valkey.Addr == "" {
			return errors.New("session.valkey.addr must be set for the valkey backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	return nil
}
