package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companyscraper/browser"
	"companyscraper/config"
	"companyscraper/fetch"
	"companyscraper/scraper"
)

// findChrome returns a local Chrome/Chromium binary or skips the test
func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome or Chromium binary on PATH")
	return ""
}

const companyHTML = `<!DOCTYPE html>
<html><head><title>Acme Corp</title></head>
<body>
<h1>Acme Corp Unlisted Shares</h1>
<table><tr><td>row1</td></tr><tr><td>row2</td></tr></table>
<p>Acme makes everything.</p>
</body></html>`

// newSite serves a results page whose first result links to /company.
// It counts result page loads so each query can be shown to hit the site.
func newSite(t *testing.T) (*httptest.Server, func() int) {
	t.Helper()

	var mu sync.Mutex
	loads := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><div><a href="/company"><h3>Acme Corp - wwipl</h3></a></div></body></html>`)
	})
	mux.HandleFunc("/company", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		loads++
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, companyHTML)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, func() int {
		mu.Lock()
		defer mu.Unlock()
		return loads
	}
}

// localSearch sends every query to the test site instead of the search engine
type localSearch struct {
	inner   fetch.Fetcher
	baseURL string

	mu       sync.Mutex
	searches []string
}

func (l *localSearch) Fetch(ctx context.Context, searchURL string) (*fetch.Page, error) {
	l.mu.Lock()
	l.searches = append(l.searches, searchURL)
	l.mu.Unlock()
	return l.inner.Fetch(ctx, l.baseURL+"/search")
}

func TestBrowserScrapeFollowsFirstResult(t *testing.T) {
	chrome := findChrome(t)
	srv, loads := newSite(t)

	f := browser.NewFetcher(browser.Options{Headless: true, ExecPath: chrome}, 10*time.Second, 0)
	local := &localSearch{inner: f, baseURL: srv.URL}
	s := scraper.New(local, config.RegionConfig{}, time.Minute)

	outcome := s.Scrape(context.Background(), "Acme+Corp buy site:wwipl.com")
	require.True(t, outcome.OK(), "scrape failed: %v", outcome.Err)

	assert.Equal(t, "Acme Corp Unlisted Shares", outcome.Result.Title)
	assert.Equal(t, [][]string{{"row1", "row2"}}, outcome.Result.Tables)
	assert.Equal(t, []string{"Acme makes everything."}, outcome.Result.Paragraphs)
	assert.Equal(t, 1, loads())
}

func TestBrowserScrapeCompanyUsesIndependentSessions(t *testing.T) {
	chrome := findChrome(t)
	srv, loads := newSite(t)

	f := browser.NewFetcher(browser.Options{Headless: true, ExecPath: chrome}, 10*time.Second, 0)
	local := &localSearch{inner: f, baseURL: srv.URL}
	svc := scraper.NewService(scraper.New(local, config.RegionConfig{}, time.Minute))

	report := svc.ScrapeCompany(context.Background(), "Acme Corp")
	require.True(t, report.Result1.OK(), "result_1 failed: %v", report.Result1.Err)
	require.True(t, report.Result2.OK(), "result_2 failed: %v", report.Result2.Err)

	assert.Equal(t, report.Result1.Result, report.Result2.Result)
	assert.NotSame(t, report.Result1.Result, report.Result2.Result)
	assert.Len(t, local.searches, 2)
	assert.Equal(t, 2, loads())
}

func TestBrowserScrapeWithoutResultLink(t *testing.T) {
	chrome := findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>No results</p></body></html>`)
	}))
	defer srv.Close()

	f := browser.NewFetcher(browser.Options{Headless: true, ExecPath: chrome}, time.Second, 0)
	outcome := scraper.New(&localSearch{inner: f, baseURL: srv.URL}, config.RegionConfig{}, time.Minute).
		Scrape(context.Background(), "Nobody buy site:wwipl.com")

	assert.False(t, outcome.OK())
	assert.Equal(t, scraper.FailureNoResult, outcome.Kind)
}
