package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, read from the environment
// (optionally seeded from a .env file).
type Config struct {
	Addr string
	Env  string

	// DataDir is where the append-only record logs live. Empty means
	// memory-only operation (used by tests).
	DataDir string

	// EventFlushEvery controls how many tracking events are buffered before
	// the event log is flushed to disk. Up to EventFlushEvery-1 events can be
	// lost on an unclean shutdown; that loss is accepted to bound write
	// amplification on the hottest endpoint.
	EventFlushEvery int

	JWTSecret         string
	AdminPasswordHash string // bcrypt hash of the admin dashboard password

	GeoIPPath string

	RateLimitMax    int
	RateLimitWindow time.Duration

	AllowedOrigins []string

	SMTP SMTPConfig
}

// SMTPConfig configures the new-lead notification email. Disabled unless a
// host is set.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
	To       string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

// Load reads configuration from the environment with development defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              getEnv("LEADTRACK_ADDR", ":8080"),
		Env:               getEnv("LEADTRACK_ENV", "development"),
		DataDir:           getEnv("LEADTRACK_DATA_DIR", "data"),
		EventFlushEvery:   getIntEnv("LEADTRACK_EVENT_FLUSH_EVERY", 10),
		JWTSecret:         getEnv("LEADTRACK_JWT_SECRET", ""),
		AdminPasswordHash: getEnv("LEADTRACK_ADMIN_PASSWORD_HASH", ""),
		GeoIPPath:         getEnv("LEADTRACK_GEOIP_DB_PATH", ""),
		RateLimitMax:      getIntEnv("LEADTRACK_RATE_LIMIT_MAX", 5),
		RateLimitWindow:   getDurationEnv("LEADTRACK_RATE_LIMIT_WINDOW", time.Hour),
		AllowedOrigins:    getSliceEnv("LEADTRACK_ALLOWED_ORIGINS", []string{"*"}),
		SMTP: SMTPConfig{
			Host:     getEnv("LEADTRACK_SMTP_HOST", ""),
			Port:     getEnv("LEADTRACK_SMTP_PORT", "465"),
			From:     getEnv("LEADTRACK_SMTP_FROM", ""),
			Password: getEnv("LEADTRACK_SMTP_PASSWORD", ""),
			To:       getEnv("LEADTRACK_SMTP_TO", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present. Development gets a
// throwaway JWT secret so the server starts with no environment at all.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("LEADTRACK_JWT_SECRET is required in production")
		}
		c.JWTSecret = "leadtrack-dev-secret"
	}
	if c.IsProduction() && c.AdminPasswordHash == "" {
		return fmt.Errorf("LEADTRACK_ADMIN_PASSWORD_HASH is required in production")
	}
	if c.EventFlushEvery < 1 {
		c.EventFlushEvery = 1
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
