// Package fetch defines the navigation step of a scrape: from a search results URL
// to the HTML of the first organic result.
package fetch

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ResultSelector matches the heading of an organic search result inside its link
const ResultSelector = "a h3"

var (
	// ErrNoResult means the results page had no organic result to follow
	ErrNoResult = errors.New("no search result found")
	// ErrLaunch means the browser could not be started
	ErrLaunch = errors.New("failed to launch browser")
)

// Page is a destination page reached from the results page
type Page struct {
	URL  string
	HTML string
}

// Fetcher opens a results page and follows its first organic result
type Fetcher interface {
	Fetch(ctx context.Context, searchURL string) (*Page, error)
}

// ResolveResultLink turns a result href into an absolute destination URL.
// Google's plain HTML results wrap targets as /url?q=<target>.
func ResolveResultLink(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	abs := baseURL.ResolveReference(ref)

	if abs.Path == "/url" && abs.Host == baseURL.Host {
		for _, key := range []string{"q", "url"} {
			if target := abs.Query().Get(key); target != "" {
				return target, nil
			}
		}
	}
	return abs.String(), nil
}
