// Package config loads Rolodex configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the server and CLI configuration.
type Config struct {
	DatabaseURL string
	Port        int
	Env         string
	LogLevel    string
	PageSize    int // rows per query when loading whole collections for search and export
	DevGate     DevGateConfig
}

// Load reads configuration from environment variables. DATABASE_URL is required;
// everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         getEnvString("APP_ENV", EnvDevelopment),
		LogLevel:    getEnvString("LOG_LEVEL", "info"),
		PageSize:    500,
		Port:        8080,
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = getEnvInt("LIST_PAGE_SIZE", cfg.PageSize); err != nil {
		return nil, err
	}

	gate, err := NewDevGateConfig()
	if err != nil {
		return nil, err
	}
	cfg.DevGate = *gate

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("config error: APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config error: LIST_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.IsProduction() && !c.DevGate.Enabled() {
		return fmt.Errorf("config error: DEV_GATE_PASSWORD_HASH is required in production")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
