package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	Env         string
	SeedFile    string
}

// Load reads .env (if any) and the process environment.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Debug("[cfg] no .env file loaded", slog.String("error", err.Error()))
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	return AppConfig{
		Port:        get("PORT", "8080"),
		DatabaseURL: get("DATABASE_URL", "astro.db"),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   get("LOG_FORMAT", "text"),
		Env:         get("APP_ENV", "development"),
		SeedFile:    get("SEED_FILE", ""),
	}
}

// IsPostgres reports whether DatabaseURL points at PostgreSQL rather than a SQLite file.
func (c AppConfig) IsPostgres() bool {
	u := strings.ToLower(c.DatabaseURL)
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}

// Redacted hides the password part of a postgres URL for logging.
func (c AppConfig) Redacted() AppConfig {
	out := c
	if !c.IsPostgres() {
		return out
	}
	scheme, rest, _ := strings.Cut(c.DatabaseURL, "://")
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return out
	}
	if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
		out.DatabaseURL = scheme + "://" + user + ":***@" + host
	}
	return out
}
