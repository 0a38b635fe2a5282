// Package browser provides browser automation functionality
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"companyscraper/fetch"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// Options configures a browser launch
type Options struct {
	Headless       bool
	ExecPath       string
	UserAgent      string
	AcceptLanguage string
}

// closeTimeout bounds the graceful browser shutdown
const closeTimeout = 5 * time.Second

// Session is one isolated browser instance. It must be closed by the caller.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	started     bool
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	return allocOpts
}

// Launch starts a fresh browser with its own profile.
// The browser is running when Launch returns; on error nothing is left behind.
func Launch(parent context.Context, opts Options) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocatorOptions(opts)...)
	ctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			slog.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			slog.Debug(fmt.Sprintf(format, args...), "source", "chromedp")
		}),
	)

	s := &Session{ctx: ctx, cancel: cancel, allocCancel: allocCancel}

	// The first Run allocates the browser, so later timeouts on derived
	// contexts only abort actions instead of killing the browser.
	actions := []chromedp.Action{network.Enable()}
	if opts.AcceptLanguage != "" {
		actions = append(actions, network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": opts.AcceptLanguage,
		}))
	}
	if err := chromedp.Run(ctx, actions...); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", fetch.ErrLaunch, err)
	}
	s.started = true

	slog.Debug("browser launched", "headless", opts.Headless)
	return s, nil
}

// Run executes actions in the session
func (s *Session) Run(actions ...chromedp.Action) error {
	return chromedp.Run(s.ctx, actions...)
}

// RunWithin executes actions, giving up after timeout
func (s *Session) RunWithin(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Close shuts the browser down. It is safe to call more than once.
// A running browser is closed gracefully; chromedp.Cancel already releases the
// browser context, so the context's own cancel func must not run after it.
func (s *Session) Close() {
	if s.allocCancel == nil {
		return
	}
	if s.started {
		ctx, cancel := context.WithTimeout(s.ctx, closeTimeout)
		if err := chromedp.Cancel(ctx); err != nil {
			slog.Debug("browser did not close cleanly", "error", err)
		}
		cancel()
	} else {
		s.cancel()
	}
	s.allocCancel()
	s.cancel, s.allocCancel = nil, nil
	slog.Debug("browser closed")
}
