package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/luckyroll/walletgate/core"
)

// MinSecretLen is the minimum session signing secret length in bytes.
const MinSecretLen = 32

// Config holds the explicit service configuration. It is constructed once at
// startup and injected into the components that need it; a config that fails
// Validate must prevent the service from serving authenticated routes.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// SessionSecret signs session credentials. Must be at least MinSecretLen
	// bytes.
	SessionSecret string

	// RedisURL selects the shared challenge store. Empty means the
	// in-process store, which is only correct for single-instance
	// deployments.
	RedisURL string

	// Scheme selects the wallet signature scheme: "ed25519" or "ethereum".
	Scheme string

	// ProviderURL, when set, delegates session validation to a third-party
	// identity provider instead of the self-issued tokenizer.
	ProviderURL string

	// ChallengeTTL bounds how long an issued challenge stays verifiable.
	ChallengeTTL time.Duration

	// SessionTTL is the fixed session credential lifetime.
	SessionTTL time.Duration

	// CookieSecure marks the session cookie Secure. Disable only for local
	// development over plain HTTP.
	CookieSecure bool
}

// FromEnv builds a Config from the environment, applying defaults for
// everything except the session secret.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":9000"),
		SessionSecret: os.Getenv("JWT_SECRET"),
		RedisURL:      os.Getenv("REDIS_URL"),
		Scheme:        envOr("AUTH_SCHEME", "ed25519"),
		ProviderURL:   os.Getenv("AUTH_PROVIDER_URL"),
		ChallengeTTL:  5 * time.Minute,
		SessionTTL:    24 * time.Hour,
		CookieSecure:  true,
	}

	var err error
	if cfg.ChallengeTTL, err = durationOr("CHALLENGE_TTL", cfg.ChallengeTTL); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationOr("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE %q: %w", raw, err)
		}
		cfg.CookieSecure = secure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration that would weaken the protocol.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSecretLen {
		return fmt.Errorf("%w: JWT_SECRET must be at least %d bytes", core.ErrWeakSecret, MinSecretLen)
	}
	if c.Scheme != "ed25519" && c.Scheme != "ethereum" {
		return fmt.Errorf("unknown AUTH_SCHEME %q", c.Scheme)
	}
	if c.ChallengeTTL <= 0 {
		return fmt.Errorf("CHALLENGE_TTL must be positive, got %s", c.ChallengeTTL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
