package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_RequiresDatabaseAndJWTSecret(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(testLogger())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_GatewaySecretsAreOptionalAtStart(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/nutrition")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("ABACATEPAY_API_KEY", "")
	t.Setenv("ABACATEPAY_WEBHOOK_SECRET", "")
	t.Setenv("ABACATEPAY_BASE_URL", "https://gateway.test/v1/")

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	assert.Empty(t, cfg.AbacatePayAPIKey)
	assert.Empty(t, cfg.AbacatePayWebhookSecret)
	assert.Equal(t, "https://gateway.test/v1", cfg.AbacatePayBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.GoogleEnabled())
}
