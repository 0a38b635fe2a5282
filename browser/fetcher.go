package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"companyscraper/fetch"
)

// navigationTimeout bounds the wait for the clicked result to finish loading
const navigationTimeout = 30 * time.Second

// Fetcher drives a fresh browser per query: search, click the first result, wait, read the page
type Fetcher struct {
	opts         Options
	readyTimeout time.Duration
	settleDelay  time.Duration
}

// NewFetcher creates a browser-backed fetch.Fetcher.
// readyTimeout bounds waits for the result link and the page heading;
// settleDelay is only slept when the heading never becomes visible.
func NewFetcher(opts Options, readyTimeout, settleDelay time.Duration) *Fetcher {
	return &Fetcher{
		opts:         opts,
		readyTimeout: readyTimeout,
		settleDelay:  settleDelay,
	}
}

// Fetch implements fetch.Fetcher
func (f *Fetcher) Fetch(ctx context.Context, searchURL string) (*fetch.Page, error) {
	session, err := Launch(ctx, f.opts)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.Run(
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to load results page: %w", err)
	}

	if err := session.RunWithin(f.readyTimeout,
		chromedp.WaitVisible(fetch.ResultSelector, chromedp.ByQuery),
	); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fetch.ErrNoResult
		}
		return nil, fmt.Errorf("failed waiting for search results: %w", err)
	}

	var searchLocation string
	if err := session.Run(
		chromedp.Location(&searchLocation),
		chromedp.Click(fetch.ResultSelector, chromedp.ByQuery, chromedp.NodeVisible),
	); err != nil {
		return nil, fmt.Errorf("failed to click first result: %w", err)
	}

	var loaded bool
	if err := session.RunWithin(navigationTimeout, chromedp.Poll(
		loadedExpression(searchLocation), &loaded,
		chromedp.WithPollingInterval(100*time.Millisecond),
	)); err != nil {
		return nil, fmt.Errorf("result page did not finish loading: %w", err)
	}

	if err := f.waitForContent(ctx, session); err != nil {
		return nil, err
	}

	page := &fetch.Page{}
	if err := session.Run(
		chromedp.Location(&page.URL),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to read result page: %w", err)
	}

	slog.Debug("fetched result page", "url", page.URL, "bytes", len(page.HTML))
	return page, nil
}

// waitForContent waits for the page heading, falling back to the settle delay
func (f *Fetcher) waitForContent(ctx context.Context, session *Session) error {
	err := session.RunWithin(f.readyTimeout, chromedp.WaitVisible("h1", chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	slog.Debug("heading not visible, sleeping settle delay", "delay", f.settleDelay)
	if err := session.Run(chromedp.Sleep(f.settleDelay)); err != nil {
		return fmt.Errorf("settle delay interrupted: %w", err)
	}
	return nil
}

// loadedExpression is true once the page has left the results URL and fired its load event
func loadedExpression(from string) string {
	return "location.href !== " + strconv.Quote(from) + ` && document.readyState === "complete"`
}
