package app

import (
	"strings"
	"time"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// DatabaseURL enables the Postgres-backed stores. Empty means fully
	// in-memory dev mode.
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// SessionTTL is the admin session lifetime.
	SessionTTL time.Duration

	// CookieSecure forces the session cookie's Secure attribute:
	// "auto" (derive from TLS / X-Forwarded-Proto), "true", or "false".
	CookieSecure string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("PORTFOLIO_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel: EnvString("PORTFOLIO_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("PORTFOLIO_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("PORTFOLIO_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("PORTFOLIO_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("PORTFOLIO_HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    EnvInt("PORTFOLIO_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("PORTFOLIO_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("PORTFOLIO_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("PORTFOLIO_DB_MIN_CONNS", 0),

		SessionTTL: EnvDuration("PORTFOLIO_SESSION_TTL", 24*time.Hour),

		CookieSecure: EnvString("PORTFOLIO_COOKIE_SECURE", "auto"),
	}
}

// CookieSecureOverride maps the CookieSecure setting to the gateway's
// tri-state: nil means per-request auto detection.
func (c Config) CookieSecureOverride() *bool {
	switch strings.ToLower(strings.TrimSpace(c.CookieSecure)) {
	case "true", "1", "yes", "on":
		v := true
		return &v
	case "false", "0", "no", "off":
		v := false
		return &v
	default:
		return nil
	}
}
