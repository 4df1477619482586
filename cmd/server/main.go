package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"astro/config"
	"astro/database"
	"astro/internal/logging"
	"astro/router"

	// Catalog
	"astro/pkg/catalog"

	// Web admin
	webCtrlImp "astro/pkg/web/controllerImp"

	// Health + metrics
	healthCtrlImp "astro/pkg/health/controllerImp"
	"astro/pkg/metrics"
	"astro/pkg/middleware"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// 1) Config + logger
	cfg := config.Load()
	logger := logging.NewLogger("astro", cfg.Env, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)
	logger.Info("config loaded",
		slog.String("port", cfg.Port),
		slog.String("database_url", cfg.Redacted().DatabaseURL),
		slog.String("env", cfg.Env),
	)

	// 2) DB + automigrate
	db, err := database.Open(cfg.DatabaseURL, logger.With(slog.String("component", "database")))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("close database", slog.String("error", err.Error()))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	// 3) Services
	services := catalog.NewServices(db)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	middleware.SetEchoLevel(e, cfg.LogLevel)
	renderer, err := webCtrlImp.NewRenderer()
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	e.Renderer = renderer
	m := metrics.New(sqlDB)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(middleware.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(middleware.Flashes())
	e.StaticFS("/static", webCtrlImp.Assets())

	// 5) Controllers
	api := router.NewAPI(services, logger)
	webCtrl := webCtrlImp.New(services, logger)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, logger)

	// 6) Router
	r := router.New(e, api, webCtrl, hCtrl, m.Handler())

	// 7) Start + graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	return serve(r, ":"+cfg.Port, sig, logger)
}

// serve runs e on addr until it fails or stop delivers a signal, then shuts it down.
// A failed listener is returned, not fatal, so the caller's deferred cleanup still runs.
func serve(e *echo.Echo, addr string, stop <-chan os.Signal, logger *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case s := <-stop:
		logger.Info("shutting down", slog.String("signal", s.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
