package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type envConfig struct {
	APIBaseURL     string `env:"API_BASE_URL"`
	StoragePath    string `env:"STORAGE_PATH"`
	TimeoutSeconds int    `env:"REQUEST_TIMEOUT" envDefault:"0"`
}

// parseEnv overlays cfg with values from the environment. Unset
// variables leave the current values alone.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.StoragePath != "" {
		cfg.StoragePath = ec.StoragePath
	}
	if ec.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(ec.TimeoutSeconds) * time.Second
	}
	return nil
}
