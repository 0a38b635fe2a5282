package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"companyscraper/config"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		company      string
		buy          string
		balanceSheet string
	}{
		{"Acme Corp", "Acme+Corp buy site:wwipl.com", "Acme+Corp balance sheet site:wwipl.com"},
		{"Zepto", "Zepto buy site:wwipl.com", "Zepto balance sheet site:wwipl.com"},
		{" Big  Co ", "+Big++Co+ buy site:wwipl.com", "+Big++Co+ balance sheet site:wwipl.com"},
		{"", " buy site:wwipl.com", " balance sheet site:wwipl.com"},
		{"A&B \"Ltd\"", "A&B+\"Ltd\" buy site:wwipl.com", "A&B+\"Ltd\" balance sheet site:wwipl.com"},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			q := Build(tt.company)
			assert.Equal(t, tt.buy, q.Buy)
			assert.Equal(t, tt.balanceSheet, q.BalanceSheet)
		})
	}
}

func TestSearchURL(t *testing.T) {
	q := Build("Acme Corp")

	assert.Equal(t,
		"https://www.google.com/search?q=Acme+Corp+buy+site:wwipl.com",
		SearchURL(q.Buy, config.RegionConfig{}))
	assert.Equal(t,
		"https://www.google.com/search?q=Acme+Corp+balance+sheet+site:wwipl.com&gl=us&hl=en-US",
		SearchURL(q.BalanceSheet, config.RegionConfigs["us"]))
}
