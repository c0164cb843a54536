package symbols

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"tradebook-importer/internal/api"
	"tradebook-importer/internal/logger"
)

const (
	defaultEquityListURL = "https://www.nseindia.com/market-data/securities-available-for-trading"
	indicesEndpoint      = "https://www.nseindia.com/api/allIndices"
)

// Fetcher refreshes the classifier's reference set from the exchange site.
// Equities come from the listed-securities page, indices from the public
// indices endpoint.
type Fetcher struct {
	equityListURL string
	client        *api.Client
	timeout       time.Duration
}

func NewFetcher(equityListURL string) *Fetcher {
	if equityListURL == "" {
		equityListURL = defaultEquityListURL
	}
	return &Fetcher{
		equityListURL: equityListURL,
		client:        api.NewClient(api.WithTimeout(30*time.Second), api.WithLogging(true)),
		timeout:       30 * time.Second,
	}
}

// FetchEquities scrapes ticker symbols off the listed-securities tables.
func (f *Fetcher) FetchEquities(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var equities []string

	c := colly.NewCollector(colly.MaxDepth(1), colly.Async(false))
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range api.NSEHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("table", func(e *colly.HTMLElement) {
		// First column of each listing row is the ticker.
		e.DOM.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			sym := strings.ToUpper(strings.TrimSpace(row.Find("td").First().Text()))
			if sym == "" || !isTicker(sym) {
				return
			}
			if _, ok := seen[sym]; ok {
				return
			}
			seen[sym] = struct{}{}
			equities = append(equities, sym)
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Equity list scrape error", err, "url", r.Request.URL.String())
	})

	if err := c.Visit(f.equityListURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", f.equityListURL, err)
	}
	c.Wait()

	logger.Info(ctx, "Equity reference set fetched", "url", f.equityListURL, "symbols", len(equities))
	return equities, nil
}

// FetchIndices pulls index names from the indices endpoint.
func (f *Fetcher) FetchIndices(ctx context.Context) ([]string, error) {
	resp, err := f.client.GET(ctx, indicesEndpoint, api.NSEHeaders())
	if err != nil {
		return nil, fmt.Errorf("fetch indices: %w", err)
	}

	var payload struct {
		Data []struct {
			IndexSymbol string `json:"indexSymbol"`
		} `json:"data"`
	}
	if err := resp.ParseJSON(&payload); err != nil {
		return nil, err
	}

	indices := make([]string, 0, len(payload.Data))
	for _, d := range payload.Data {
		sym := strings.ToUpper(strings.TrimSpace(d.IndexSymbol))
		if sym != "" {
			indices = append(indices, sym)
		}
	}

	logger.Info(ctx, "Index reference set fetched", "symbols", len(indices))
	return indices, nil
}

// isTicker filters out table cells that are prose rather than symbols.
func isTicker(s string) bool {
	if len(s) == 0 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '&' || r == '-':
		default:
			return false
		}
	}
	return true
}
