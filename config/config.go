package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FareConfig is the tariff: a flat base fare plus a per-hop increment,
// both exact decimal strings (e.g. "2.00").
type FareConfig struct {
	Base   string `yaml:"base" validate:"required"`
	PerHop string `yaml:"per_hop" validate:"required"`
}

// Decimals parses the tariff into decimal amounts.
func (f FareConfig) Decimals() (base, perHop decimal.Decimal, err error) {
	if base, err = decimal.NewFromString(f.Base); err != nil {
		return base, perHop, fmt.Errorf("config: fare base %q: %w", f.Base, err)
	}
	if perHop, err = decimal.NewFromString(f.PerHop); err != nil {
		return base, perHop, fmt.Errorf("config: fare per_hop %q: %w", f.PerHop, err)
	}

	return base, perHop, nil
}

// NotifyConfig configures the AMQP notifier. Empty URL means
// notifications go to the structured log instead of a broker.
type NotifyConfig struct {
	AMQPURL string `yaml:"amqp_url" validate:"omitempty,url"`
	Queue   string `yaml:"queue" validate:"required_with=AMQPURL"`
}

// StoreConfig selects the persistence backend. Empty DSN means the
// in-memory store.
type StoreConfig struct {
	PostgresDSN string `yaml:"postgres_dsn" validate:"omitempty"`
}

// Config is the root configuration document.
type Config struct {
	Open          bool          `yaml:"open"`
	Fare          FareConfig    `yaml:"fare" validate:"required"`
	QuoteTTL      time.Duration `yaml:"quote_ttl" validate:"gte=0"`
	Store         StoreConfig   `yaml:"store"`
	Notifications NotifyConfig  `yaml:"notifications"`
}

// Default returns the configuration used when no file is given: system
// open, standard tariff, five-minute quotes, in-memory store, log
// notifier.
func Default() Config {
	return Config{
		Open:     true,
		Fare:     FareConfig{Base: "2.00", PerHop: "2.00"},
		QuoteTTL: 5 * time.Minute,
	}
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags and the decimal tariff fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, _, err := c.Fare.Decimals(); err != nil {
		return err
	}

	return nil
}
