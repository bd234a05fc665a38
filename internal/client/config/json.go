package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/openroad/stopfinder/internal/flagx"
)

// jsonConfig is the DTO for file-based configuration. The timeout is
// given in seconds.
type jsonConfig struct {
	APIBaseURL     *string `json:"api_base_url"`
	StoragePath    *string `json:"storage_path"`
	TimeoutSeconds *int    `json:"request_timeout_seconds"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. When no file is given it is a no-op. Only fields
// present in the file are overlaid.
func parseJSON(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.TimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*jc.TimeoutSeconds) * time.Second
	}
	return nil
}
