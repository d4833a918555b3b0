// Package config loads and validates process configuration from the
// environment. The session secret is validated once here, at startup; a
// missing or low-entropy secret never reaches a running server.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session backends selectable via SESSION_BACKEND.
const (
	BackendCookie = "cookie"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// MinSecretLen is the minimum accepted session secret length in bytes.
const MinSecretLen = 32

var (
	ErrMissingSecret = errors.New("config: SESSION_SECRET is required")
	ErrWeakSecret    = fmt.Errorf("config: SESSION_SECRET must be at least %d bytes of high-entropy data", MinSecretLen)
)

type Config struct {
	Addr         string        `env:"ADDR,          default=:8080"`
	DatabaseURL  string        `env:"DATABASE_URL,  default=data/oasis.db"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	LogPretty    bool          `env:"LOG_PRETTY,    default=false"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=5s"`

	Session SessionConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret  string        `env:"SESSION_SECRET"`
	Backend string        `env:"SESSION_BACKEND, default=cookie"`
	TTL     time.Duration `env:"SESSION_TTL,     default=24h"`
	DBPath  string        `env:"SESSION_DB_PATH, default=data/sessions"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables and validates it.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the invariants that must hold before the server starts.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return ErrMissingSecret
	}
	if err := CheckSecret([]byte(c.Session.Secret)); err != nil {
		return err
	}
	switch c.Session.Backend {
	case BackendCookie, BackendBadger, BackendRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.StoreTimeout <= 0 {
		return errors.New("config: STORE_TIMEOUT must be positive")
	}
	return nil
}

// CheckSecret rejects secrets that are too short or degenerate (a single
// repeated byte, such as the all-zero key). It is a cheap sanity check, not
// an entropy estimator.
func CheckSecret(secret []byte) error {
	if len(secret) < MinSecretLen {
		return ErrWeakSecret
	}
	first := secret[0]
	for _, b := range secret[1:] {
		if b != first {
			return nil
		}
	}
	return ErrWeakSecret
}
