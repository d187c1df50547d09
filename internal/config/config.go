package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`

	// Upstream shop REST API (the server that owns /api/...).
	ShopAPIURL      string        `env:"SHOP_API_URL" envDefault:"http://localhost:8000"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	IndexCacheTTL time.Duration `env:"INDEX_CACHE_TTL" envDefault:"30s"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`

	MaxStateBytes int64 `env:"MAX_STATE_BYTES" envDefault:"1048576"`
	// Avatar uploads; the shop accepts images up to 2 MiB.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"3145728"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ShopAPIURL == "" {
		return fmt.Errorf("SHOP_API_URL must not be empty")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.MaxStateBytes <= 0 {
		return fmt.Errorf("MAX_STATE_BYTES must be positive, got %d", c.MaxStateBytes)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.Environment != "development" && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed from default value in %s environment", c.Environment)
	}
	return nil
}
