package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "PORT", "APP_ENV", "LOG_LEVEL", "LIST_PAGE_SIZE",
		"DEV_GATE_PASSWORD_HASH", "DEV_GATE_SECRET", "DEV_GATE_SESSION_HOURS", "BCRYPT_COST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/rolodex")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/rolodex", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 500, cfg.PageSize)
	assert.False(t, cfg.DevGate.Enabled())
	assert.Equal(t, 12, cfg.DevGate.SessionHours)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/rolodex")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LIST_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"missing database url", map[string]string{}, "DATABASE_URL"},
		{"bad port", map[string]string{"DATABASE_URL": "x", "PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"DATABASE_URL": "x", "PORT": "70000"}, "PORT"},
		{"bad env", map[string]string{"DATABASE_URL": "x", "APP_ENV": "staging"}, "APP_ENV"},
		{"zero page size", map[string]string{"DATABASE_URL": "x", "LIST_PAGE_SIZE": "0"}, "LIST_PAGE_SIZE"},
		{"production without gate", map[string]string{"DATABASE_URL": "x", "APP_ENV": "production"}, "DEV_GATE_PASSWORD_HASH"},
		{"bad bcrypt cost", map[string]string{"DATABASE_URL": "x", "BCRYPT_COST": "4"}, "bcrypt cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDevGateConfig_RequiresSecretWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV_GATE_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("DEV_GATE_SECRET", "short")

	_, err := NewDevGateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEV_GATE_SECRET")
}

func TestDevGateConfig_HashAndVerify(t *testing.T) {
	cfg := &DevGateConfig{BcryptCost: 10, Secret: "0123456789abcdef", SessionHours: 1}

	hash, err := cfg.HashPassword("open sesame")
	require.NoError(t, err)
	assert.NotEqual(t, "open sesame", hash)

	assert.False(t, cfg.VerifyPassword("open sesame"), "gate without a hash rejects everything")

	cfg.PasswordHash = hash
	assert.True(t, cfg.VerifyPassword("open sesame"))
	assert.False(t, cfg.VerifyPassword("wrong"))
}
