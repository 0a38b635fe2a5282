// Package query builds the search queries and search URLs for a company
package query

import (
	"fmt"
	"strings"

	"companyscraper/config"
)

const (
	// Site restricts every query to the target site
	Site = "wwipl.com"

	searchBaseURL = "https://www.google.com/search"
)

// Queries holds the two queries issued for one company
type Queries struct {
	Buy          string
	BalanceSheet string
}

// Build interpolates the company name into the two fixed templates.
// Spaces in the name become '+'; nothing else is escaped or validated.
func Build(company string) Queries {
	name := strings.ReplaceAll(company, " ", "+")
	return Queries{
		Buy:          fmt.Sprintf("%s buy site:%s", name, Site),
		BalanceSheet: fmt.Sprintf("%s balance sheet site:%s", name, Site),
	}
}

// SearchURL creates the results page URL for a query
func SearchURL(q string, region config.RegionConfig) string {
	searchURL := searchBaseURL + "?q=" + strings.ReplaceAll(q, " ", "+")
	if region.Gl != "" {
		searchURL += "&gl=" + region.Gl
	}
	if region.Hl != "" {
		searchURL += "&hl=" + region.Hl
	}
	return searchURL
}
