package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:134.0) Gecko/20100101 Firefox/134.0"

// HTTPFetcher follows the first result without a browser.
// Each Fetch uses fresh requests; the client holds no cookies.
type HTTPFetcher struct {
	client         *http.Client
	acceptLanguage string
}

// NewHTTPFetcher creates a fetcher; a nil client gets a 30s timeout default
func NewHTTPFetcher(client *http.Client, acceptLanguage string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if acceptLanguage == "" {
		acceptLanguage = "en-US,en;q=0.5"
	}
	return &HTTPFetcher{client: client, acceptLanguage: acceptLanguage}
}

// Fetch downloads the results page, picks the first result link and downloads its target
func (f *HTTPFetcher) Fetch(ctx context.Context, searchURL string) (*Page, error) {
	body, err := f.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load results page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	href, ok := doc.Find(ResultSelector).First().Closest("a").Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil, ErrNoResult
	}

	target, err := ResolveResultLink(searchURL, href)
	if err != nil {
		return nil, fmt.Errorf("invalid result link %q: %w", href, err)
	}
	slog.Debug("following search result", "url", target)

	html, err := f.get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load result page: %w", err)
	}

	return &Page{URL: target, HTML: html}, nil
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", f.acceptLanguage)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// decodeBody reads a response body, undoing its Content-Encoding
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		reader = zr
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
