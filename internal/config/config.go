package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis (cart slot storage + change notifications)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Name of the single key-value slot holding the persisted cart.
	CartSlot string `env:"CART_SLOT" envDefault:"shopping_cart"`

	// Catalog source file (static, read-only, loaded whole at startup).
	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/products.json"`

	// Cart badge reconciliation polling interval.
	BadgePollInterval time.Duration `env:"BADGE_POLL_INTERVAL" envDefault:"500ms"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartSlot == "" {
		return fmt.Errorf("cart slot name must not be empty")
	}
	if c.BadgePollInterval <= 0 {
		return fmt.Errorf("invalid badge poll interval: %s", c.BadgePollInterval)
	}
	return nil
}
