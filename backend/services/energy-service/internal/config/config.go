package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "solarpulse/backend/libs/config"
)

// Config defines energy service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"ENERGY_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"ENERGY_POSTGRES_DSN"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	} `yaml:"auth"`
	Summary struct {
		// StrictZeros reports true zero aggregates instead of the demo
		// placeholders for windows that have rows summing to zero.
		StrictZeros bool `yaml:"strict_zeros" env:"ENERGY_SUMMARY_STRICT_ZEROS"`
	} `yaml:"summary"`
	Live struct {
		PushInterval time.Duration `yaml:"push_interval" env:"ENERGY_LIVE_PUSH_INTERVAL"`
	} `yaml:"live"`
}

// Load configuration using shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8085"
	cfg.Live.PushInterval = 5 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
