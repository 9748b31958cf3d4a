// Package config centralizes how the backend reads environment variables and
// exposes them as typed values.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration for the service.
type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration

	// Login throttling (token bucket).
	LoginRatePerSec float64
	LoginBurst      int

	// SMTP for best-effort notification mail. Mail is disabled when Host is
	// empty.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

const (
	defaultPort     = "3000"
	defaultTokenTTL = 7 * 24 * time.Hour
	defaultRate     = 5.0
	defaultBurst    = 10
	defaultSMTPPort = 587
)

// Load reads configuration from environment variables, falling back to
// defaults. Call godotenv.Load first if a .env file should be honored.
func Load() *Config {
	return &Config{
		Port:            readEnv("PORT", defaultPort),
		JWTSecret:       readEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:        parseDuration("TOKEN_TTL", defaultTokenTTL),
		LoginRatePerSec: parseFloat("LOGIN_RATE_PER_SEC", defaultRate),
		LoginBurst:      parseInt("LOGIN_BURST", defaultBurst),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        parseInt("SMTP_PORT", defaultSMTPPort),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		MailFrom:        readEnv("MAIL_FROM", "no-reply@sudindconnect.com"),
	}
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
