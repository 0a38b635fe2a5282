package scraper

import (
	"companyscraper/browser"
	"companyscraper/config"
	"companyscraper/fetch"
)

// NewFetcher builds the fetcher selected by the configured engine
func NewFetcher(cfg config.ScraperConfig) fetch.Fetcher {
	region := cfg.RegionParams()
	if cfg.Engine == config.EngineHTTP {
		return fetch.NewHTTPFetcher(nil, region.Hl)
	}
	return browser.NewFetcher(browser.Options{
		Headless:       cfg.Headless,
		ExecPath:       cfg.ChromePath,
		AcceptLanguage: region.Hl,
	}, cfg.ReadyTimeout, cfg.SettleDelay)
}

// NewServiceFromConfig wires a service around the given fetcher
func NewServiceFromConfig(cfg config.ScraperConfig, fetcher fetch.Fetcher) *Service {
	return NewService(New(fetcher, cfg.RegionParams(), cfg.Timeout))
}
