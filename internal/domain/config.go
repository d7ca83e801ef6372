package domain

import (
	"time"
)

// Config represents the main application configuration.
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Prediction  PredictionConfig `mapstructure:"prediction"`
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	CareTeam    CareTeamConfig   `mapstructure:"care_team"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig represents the gateway HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// PredictionConfig configures the remote prediction endpoint client. BaseURL
// is the resolved server address, injected at startup; the client never
// sniffs it from the environment at call time.
type PredictionConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RateLimit        int           `mapstructure:"rate_limit"` // requests per second
	DefaultThreshold float64       `mapstructure:"default_threshold"`
}

// ExtractionConfig configures the document extraction endpoint client and the
// circuit breaker the gateway places in front of it.
type ExtractionConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	RateLimit          int           `mapstructure:"rate_limit"` // requests per second
	BreakerMaxRequests uint32        `mapstructure:"breaker_max_requests"`
	BreakerInterval    time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
}

// CareTeamConfig configures the profile/counter store used to notify a linked
// doctor when a report extraction completes.
type CareTeamConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	RedisURL string `mapstructure:"redis_url"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
