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

	"companyscraper/cache"
	"companyscraper/config"
	"companyscraper/logging"
	"companyscraper/scraper"
	"companyscraper/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cleanup, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cache.New(cfg.Redis)
	if c != nil {
		if err := c.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, reports will not be cached", "addr", cfg.Redis.Addr, "error", err)
		}
		defer c.Close()
	}

	svc := scraper.NewServiceFromConfig(cfg.Scraper, scraper.NewFetcher(cfg.Scraper))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(svc, c, cfg.Redis.TTL, cfg.Scraper.FailureMode).Handler(os.Stderr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server is running", "port", cfg.Port, "engine", cfg.Scraper.Engine)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
