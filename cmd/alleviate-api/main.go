package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/zaljabir/alleviate-api/internal/alleviate"
	"github.com/zaljabir/alleviate-api/internal/api"
	"github.com/zaljabir/alleviate-api/internal/rate"
	"github.com/zaljabir/alleviate-api/pkg/config"
	"github.com/zaljabir/alleviate-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [alleviate-api]...")

	// --- Playwright driver (installs browser binaries on first run) ---
	launcher, err := alleviate.NewPlaywrightLauncher(logger.L(), *cfg)
	if err != nil {
		logg.Fatalw("failed to start playwright driver", "error", err)
	}

	// --- Browser session gate ---
	gate := rate.NewGate(cfg.MaxBrowserSessions)

	// --- Automation service ---
	svc := alleviate.NewService(*cfg, logger.L(), launcher, gate)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewAlleviateHandler(logger.L(), svc)
	api.RegisterRoutes(app, handler)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[alleviate-api] running",
		"env", cfg.Env,
		"target", cfg.TargetBaseURL,
		"headless", cfg.Headless,
		"max_sessions", cfg.MaxBrowserSessions)

	<-ctx.Done()
	logg.Info("shutting down [alleviate-api]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if err := launcher.Shutdown(); err != nil {
		logg.Warnw("playwright.stop_failed", "error", err)
	}
}
