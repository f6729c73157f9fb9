package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// PortalConfig holds the settings for the upstream property-portal REST API,
// the system of record for every collection this service reads.
type PortalConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LoadPortalConfig loads the portal configuration from a TOML file.
func LoadPortalConfig(filename string) (*PortalConfig, error) {
	config := &PortalConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 10
	}
	return config, nil
}

// PortalConfigFromEnv builds the portal configuration from environment
// variables, with development defaults.
func PortalConfigFromEnv() *PortalConfig {
	config := &PortalConfig{
		BaseURL:        os.Getenv("PORTAL_API_URL"),
		APIKey:         os.Getenv("PORTAL_API_KEY"),
		TimeoutSeconds: 10,
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:5050/api" // Default for development
	}
	if timeoutStr := os.Getenv("PORTAL_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			config.TimeoutSeconds = timeout
		}
	}
	return config
}
