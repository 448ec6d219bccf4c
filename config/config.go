package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters, read once at process
// start. Changing the token secret requires a restart; there is no key
// versioning.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":9000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// RedisURL selects the nonce store and event transport. Empty means the
	// in-memory store and no event publishing (single-instance mode).
	RedisURL string `env:"REDIS_URL"`

	Nonce NonceConfig `envPrefix:"NONCE_"`
	Token TokenConfig `envPrefix:"TOKEN_"`
}

// NonceConfig bounds the challenge lifetime.
type NonceConfig struct {
	TTLSeconds   int `env:"TTL_SECONDS" envDefault:"300"`
	SweepSeconds int `env:"SWEEP_SECONDS" envDefault:"60"`
}

// TokenConfig holds session-token parameters.
type TokenConfig struct {
	TTLMinutes int    `env:"TTL_MINUTES" envDefault:"30"`
	Secret     string `env:"SECRET,required"`
	Algorithm  string `env:"ALGORITHM" envDefault:"HS256"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// NonceTTL returns the challenge TTL as a duration.
func (c *Config) NonceTTL() time.Duration {
	return time.Duration(c.Nonce.TTLSeconds) * time.Second
}

// SweepInterval returns the memory-store janitor interval.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Nonce.SweepSeconds) * time.Second
}

// TokenTTL returns the session-token TTL as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Token.TTLMinutes) * time.Minute
}
