package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DevGateConfig configures the single shared-password gate in front of the API.
type DevGateConfig struct {
	PasswordHash string // bcrypt hash; empty disables the gate
	Secret       string // HMAC key for session tokens
	SessionHours int
	BcryptCost   int
}

// NewDevGateConfig reads DEV_GATE_PASSWORD_HASH, DEV_GATE_SECRET,
// DEV_GATE_SESSION_HOURS (default 12) and BCRYPT_COST (default 12).
func NewDevGateConfig() (*DevGateConfig, error) {
	cfg := &DevGateConfig{
		PasswordHash: os.Getenv("DEV_GATE_PASSWORD_HASH"),
		Secret:       os.Getenv("DEV_GATE_SECRET"),
		SessionHours: 12,
		BcryptCost:   12,
	}

	if v := os.Getenv("DEV_GATE_SESSION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEV_GATE_SESSION_HOURS: %v", err)
		}
		cfg.SessionHours = hours
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cfg.BcryptCost = cost
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *DevGateConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if !c.Enabled() {
		return nil
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("DEV_GATE_SECRET must be at least 16 characters when the dev gate is enabled")
	}
	if c.SessionHours < 1 {
		return fmt.Errorf("DEV_GATE_SESSION_HOURS must be at least 1 hour, got: %d", c.SessionHours)
	}
	return nil
}

// Enabled reports whether a gate password has been configured.
func (c *DevGateConfig) Enabled() bool {
	return c.PasswordHash != ""
}

// SessionTTL returns how long an issued session token is valid.
func (c *DevGateConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionHours) * time.Hour
}

// HashPassword hashes a gate password using bcrypt.
func (c *DevGateConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks pw against the configured hash.
func (c *DevGateConfig) VerifyPassword(pw string) bool {
	if !c.Enabled() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}
