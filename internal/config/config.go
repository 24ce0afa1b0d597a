// Package config holds the optional budget.yaml application settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level budget.yaml configuration.
type Config struct {
	Currency   CurrencyConfig `yaml:"currency"`
	Categories []string       `yaml:"categories"`
	LogLevel   string         `yaml:"log_level"`
}

// CurrencyConfig selects the display currency.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
	Code   string `yaml:"code"`
}

// Currencies maps the selectable symbols to their ISO codes.
var Currencies = map[string]string{
	"$": "USD",
	"₦": "NGN",
	"€": "EUR",
	"£": "GBP",
}

// Load reads a budget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the settings a fresh session starts with.
func Default() *Config {
	return &Config{
		Currency:   CurrencyConfig{Symbol: "$", Code: "USD"},
		Categories: []string{"Food", "Transport", "Bills", "Entertainment", "Other"},
		LogLevel:   "info",
	}
}

// HasCategory reports whether a category is in the configured option
// set. Only entry forms check this; imported rows keep whatever they
// carry.
func (c *Config) HasCategory(category string) bool {
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}
