package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"astro/config"
	"astro/database"
	"astro/internal/logging"
	"astro/pkg/seed"
)

func main() {
	file := flag.String("file", "", "YAML fixtures file (default: SEED_FILE, then the embedded demo catalog)")
	flag.Parse()

	// 1) Config + logger
	cfg := config.Load()
	logger := logging.NewLogger("astro-seed", cfg.Env, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	path := *file
	if path == "" {
		path = cfg.SeedFile
	}

	// 2) DB + automigrate
	db, err := database.Open(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		_ = database.Close(db)
		os.Exit(1)
	}

	// 3) Fixtures
	fx, err := seed.Load(path)
	if err != nil {
		logger.Error("load fixtures", slog.String("file", path), slog.String("error", err.Error()))
		_ = database.Close(db)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	res, err := seed.Run(ctx, db, fx, logger)
	if err != nil {
		logger.Error("seed", slog.String("error", err.Error()))
		_ = database.Close(db)
		os.Exit(1)
	}
	if res.Skipped {
		logger.Info("nothing to do")
	}
}
