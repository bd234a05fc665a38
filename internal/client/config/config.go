// Package config loads client settings from layered sources: built-in
// defaults, then an optional JSON file, then environment variables,
// then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the stopfinder client.
//
// Fields:
//   - APIBaseURL: base URL of the truck-stops directory API.
//   - StoragePath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request timeout of the HTTP client.
type Config struct {
	APIBaseURL     string
	StoragePath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.StoragePath = "stopfinder.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a file is given), the environment, and command-line
// flags, in that order.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
