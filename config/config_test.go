package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s3cret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.NonceTTL())
	assert.Equal(t, time.Minute, cfg.SweepInterval())
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "HS256", cfg.Token.Algorithm)
	assert.Equal(t, "s3cret", cfg.Token.Secret)
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("NONCE_TTL_SECONDS", "120")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LISTEN_ADDR", ":8080")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.NonceTTL())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestNewConfigRequiresSecret(t *testing.T) {
	_, err := NewConfig()
	assert.Error(t, err)
}
