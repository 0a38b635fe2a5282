package scraper

import (
	"context"
	"encoding/json"

	"companyscraper/config"
	"companyscraper/query"
)

// Report groups the outcomes of the two company queries
type Report struct {
	Result1 Outcome
	Result2 Outcome
}

// Service scrapes both queries for a company
type Service struct {
	scraper *Scraper
}

// NewService creates a new company scraping service
func NewService(scraper *Scraper) *Service {
	return &Service{scraper: scraper}
}

// ScrapeCompany runs the buy and balance sheet queries one after the other.
// Each query gets its own fetch, so nothing is shared between the two outcomes.
func (s *Service) ScrapeCompany(ctx context.Context, company string) Report {
	queries := query.Build(company)
	return Report{
		Result1: s.scraper.Scrape(ctx, queries.Buy),
		Result2: s.scraper.Scrape(ctx, queries.BalanceSheet),
	}
}

// Found reports whether at least one query produced a result
func (r Report) Found() bool {
	return r.Result1.OK() || r.Result2.OK()
}

type failureBody struct {
	Error string      `json:"error"`
	Kind  FailureKind `json:"kind"`
}

type reportBody struct {
	Result1 any `json:"result_1"`
	Result2 any `json:"result_2"`
}

// Render converts an outcome to its JSON shape for the given failure mode
func (o Outcome) Render(mode string) any {
	if o.OK() {
		return o.Result
	}
	if mode == config.FailureModeError {
		body := failureBody{Error: "no result", Kind: o.Kind}
		if o.Err != nil {
			body.Error = o.Err.Error()
		}
		return body
	}
	return struct{}{}
}

// JSON serialises the report as {"result_1": ..., "result_2": ...}
func (r Report) JSON(mode string) ([]byte, error) {
	return json.Marshal(reportBody{
		Result1: r.Result1.Render(mode),
		Result2: r.Result2.Render(mode),
	})
}
