package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chdir(t, t.TempDir())
		for _, k := range []string{"PORT", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "APP_ENV", "SEED_FILE"} {
			t.Setenv(k, "")
		}

		cfg := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "astro.db", cfg.DatabaseURL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "development", cfg.Env)
		assert.Empty(t, cfg.SeedFile)
		assert.False(t, cfg.IsPostgres())
	})

	t.Run("environment overrides", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("PORT", "9090")
		t.Setenv("DATABASE_URL", "postgres://astro:secret@db:5432/astro?sslmode=disable")
		t.Setenv("LOG_FORMAT", "json")

		cfg := Load()
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.IsPostgres())
	})
}

func TestRedacted(t *testing.T) {
	cfg := AppConfig{DatabaseURL: "postgresql://astro:secret@db:5432/astro"}
	assert.Equal(t, "postgresql://astro:***@db:5432/astro", cfg.Redacted().DatabaseURL)
	assert.Equal(t, "postgresql://astro:secret@db:5432/astro", cfg.DatabaseURL, "original is untouched")

	sqliteCfg := AppConfig{DatabaseURL: "data/astro.db"}
	assert.Equal(t, "data/astro.db", sqliteCfg.Redacted().DatabaseURL)
}
