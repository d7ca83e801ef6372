// Package config loads and validates application configuration from yaml
// files, environment variables and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/oncorisk-client/internal/domain"
)

// Manager loads and holds the application configuration using Viper.
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from file, environment and defaults.
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/oncorisk/")

	viper.SetEnvPrefix("ONCORISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover the rest.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("prediction.base_url", "http://localhost:8000")
	viper.SetDefault("prediction.timeout", "30s")
	viper.SetDefault("prediction.rate_limit", 5)
	viper.SetDefault("prediction.default_threshold", 0.3)

	viper.SetDefault("extraction.base_url", "http://localhost:8000")
	viper.SetDefault("extraction.timeout", "60s")
	viper.SetDefault("extraction.rate_limit", 2)
	viper.SetDefault("extraction.breaker_max_requests", 3)
	viper.SetDefault("extraction.breaker_interval", "30s")
	viper.SetDefault("extraction.breaker_timeout", "60s")

	viper.SetDefault("care_team.enabled", false)
	viper.SetDefault("care_team.redis_url", "redis://localhost:6379")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// Validate validates the configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Prediction.BaseURL == "" {
		return fmt.Errorf("prediction base URL is required")
	}
	if config.Prediction.DefaultThreshold < 0 || config.Prediction.DefaultThreshold > 1 {
		return fmt.Errorf("invalid default threshold: %g", config.Prediction.DefaultThreshold)
	}

	if config.Extraction.BaseURL == "" {
		return fmt.Errorf("extraction base URL is required")
	}

	if config.CareTeam.Enabled && config.CareTeam.RedisURL == "" {
		return fmt.Errorf("care-team store URL is required when notification is enabled")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode.
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}
