// Package scraper runs the search-click-extract sequence for a query and assembles company reports
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"companyscraper/config"
	"companyscraper/extract"
	"companyscraper/fetch"
	"companyscraper/query"
)

// FailureKind classifies why a scrape produced no result
type FailureKind string

const (
	FailureLaunch     FailureKind = "browser_launch"
	FailureNavigation FailureKind = "navigation"
	FailureNoResult   FailureKind = "no_result"
	FailureTimeout    FailureKind = "timeout"
	FailureExtraction FailureKind = "extraction"
)

// Outcome is either a Result or an Err with its Kind, never both
type Outcome struct {
	Result *extract.Result
	Err    error
	Kind   FailureKind
}

// OK reports whether the scrape produced a result
func (o Outcome) OK() bool {
	return o.Err == nil && o.Result != nil
}

// Scraper scrapes a single query
type Scraper struct {
	fetcher fetch.Fetcher
	region  config.RegionConfig
	timeout time.Duration
}

// New creates a scraper. A zero timeout leaves the scrape without a deadline.
func New(fetcher fetch.Fetcher, region config.RegionConfig, timeout time.Duration) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		region:  region,
		timeout: timeout,
	}
}

// Scrape searches for q, follows the first result and extracts its content.
// Every failure is absorbed into the returned Outcome.
func (s *Scraper) Scrape(ctx context.Context, q string) Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	searchURL := query.SearchURL(q, s.region)
	start := time.Now()

	outcome := s.scrape(ctx, searchURL)
	if outcome.OK() {
		slog.Info("scrape succeeded", "query", q, "title", outcome.Result.Title, "elapsed", time.Since(start))
	} else {
		slog.Warn("scrape failed", "query", q, "kind", outcome.Kind, "error", outcome.Err, "elapsed", time.Since(start))
	}
	return outcome
}

func (s *Scraper) scrape(ctx context.Context, searchURL string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = failure(FailureNavigation, fmt.Errorf("scrape panicked: %v", r))
		}
	}()

	page, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return failure(classify(err), err)
	}

	result, err := extract.FromHTML(page.HTML)
	if err != nil {
		return failure(FailureExtraction, err)
	}
	return Outcome{Result: result}
}

func failure(kind FailureKind, err error) Outcome {
	return Outcome{Err: err, Kind: kind}
}

// classify maps a fetch error onto a failure kind
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, fetch.ErrLaunch):
		return FailureLaunch
	case errors.Is(err, fetch.ErrNoResult):
		return FailureNoResult
	default:
		return FailureNavigation
	}
}
