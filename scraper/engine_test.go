package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"companyscraper/browser"
	"companyscraper/config"
	"companyscraper/fetch"
)

func TestNewFetcherSelectsEngine(t *testing.T) {
	assert.IsType(t, &browser.Fetcher{}, NewFetcher(config.ScraperConfig{Engine: config.EngineBrowser}))
	assert.IsType(t, &fetch.HTTPFetcher{}, NewFetcher(config.ScraperConfig{Engine: config.EngineHTTP, Region: "uk"}))
}
