package config

import (
	"errors"
	"os"
)

// Config is the full environment surface of the server, read once at
// startup. Handlers receive it through the Env struct instead of calling
// os.Getenv themselves.
type Config struct {
	Port        string
	Mode        string // "debug" or "release", maps to gin mode
	DatabaseURL string
	JWTSecret   string
	CORSOrigin  string
	AdminSecret string // gates ADMIN role at signup
	LogLevel    string
	LogFile     string // empty = stdout
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment. JWT_SECRET has no safe
// default, so its absence is a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Mode:        getenv("GIN_MODE", "debug"),
		DatabaseURL: getenv("DATABASE_URL", "sqlite://mindnest.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	return cfg, nil
}

// Production reports whether the server runs in release mode. Controls the
// Secure flag on the auth cookie and the log encoder.
func (c *Config) Production() bool {
	return c.Mode == "release"
}
