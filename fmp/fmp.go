// Package fmp reads the Financial Modeling Prep earnings calendar. It is the
// primary source for upcoming earnings dates; Yahoo is the fallback when no
// API key is configured or the symbol is not covered.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"stocklens"
)

const defaultBase = "https://financialmodelingprep.com"

// Client talks to the FMP stable API.
type Client struct {
	http   *http.Client
	base   string
	apiKey string
}

// New returns a client using the FMP_API_KEY environment variable. The
// returned client reports Enabled() == false when the key is missing.
func New() *Client {
	return &Client{
		http:   stocklens.NewDailyCachingClient(),
		base:   defaultBase,
		apiKey: os.Getenv("FMP_API_KEY"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// earnings is one row of the /stable/earnings payload. EPSActual is a
// pointer: null marks a report that has not happened yet.
type earnings struct {
	Symbol           string   `json:"symbol"`
	Date             string   `json:"date"`
	EPSActual        *float64 `json:"epsActual"`
	EPSEstimated     float64  `json:"epsEstimated"`
	RevenueEstimated float64  `json:"revenueEstimated"`
}

// NextEarnings returns the next scheduled earnings report for a symbol: the
// earliest not-yet-reported entry on or after today.
func (c *Client) NextEarnings(ctx context.Context, ticker string) (stocklens.EarningsInfo, error) {
	if !c.Enabled() {
		return stocklens.EarningsInfo{}, fmt.Errorf("FMP_API_KEY is not set")
	}
	addr := fmt.Sprintf("%s/stable/earnings?symbol=%s&apikey=%s",
		c.base, url.QueryEscape(ticker), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return stocklens.EarningsInfo{}, err
	}
	var rows []earnings
	resp, err := c.http.Do(req)
	if err != nil {
		return stocklens.EarningsInfo{}, fmt.Errorf("cannot fetch earnings for %q: %w", ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return stocklens.EarningsInfo{}, fmt.Errorf("cannot fetch earnings for %q: %v", ticker, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return stocklens.EarningsInfo{}, fmt.Errorf("cannot decode earnings for %q: %w", ticker, err)
	}

	today := time.Now().Format(stocklens.DateFormat)
	var future []earnings
	for _, r := range rows {
		if r.EPSActual == nil && r.Date >= today {
			future = append(future, r)
		}
	}
	if len(future) == 0 {
		return stocklens.EarningsInfo{}, fmt.Errorf("no upcoming earnings for %q", ticker)
	}
	sort.Slice(future, func(i, j int) bool { return future[i].Date < future[j].Date })

	next := future[0]
	return stocklens.EarningsInfo{
		NextEarnings:     next.Date,
		EPSEstimated:     next.EPSEstimated,
		RevenueEstimated: next.RevenueEstimated,
		Source:           "fmp",
	}, nil
}
