package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"companyscraper/config"
	"companyscraper/fetch"
	"companyscraper/logging"
	"companyscraper/scraper"
)

const usageError = `{"error": "Please provide the company name"}`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, scraper.NewFetcher)
	stop()
	os.Exit(code)
}

// run scrapes the company named by args[0] and prints the combined report.
// Only a missing company name exits non-zero; configuration problems fall back to defaults.
func run(ctx context.Context, args []string, stdout io.Writer, newFetcher func(config.ScraperConfig) fetch.Fetcher) int {
	if len(args) < 1 {
		fmt.Fprintln(stdout, usageError)
		return 1
	}
	company := args[0]

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("invalid configuration, using defaults", "error", err)
		cfg = config.Defaults()
	}

	cleanup, err := logging.Setup(cfg.Log)
	if err != nil {
		slog.Warn("cannot open log file, logging to stderr", "file", cfg.Log.File, "error", err)
		cleanup, _ = logging.Setup(config.LogConfig{Level: cfg.Log.Level})
	}
	defer cleanup()

	svc := scraper.NewServiceFromConfig(cfg.Scraper, newFetcher(cfg.Scraper))
	report := svc.ScrapeCompany(ctx, company)

	data, err := report.JSON(cfg.Scraper.FailureMode)
	if err != nil {
		slog.Error("failed to encode report", "error", err)
		fmt.Fprintln(stdout, `{"result_1": {}, "result_2": {}}`)
		return 0
	}

	fmt.Fprintln(stdout, string(data))
	return 0
}

