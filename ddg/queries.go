package ddg

import (
	"context"
	"fmt"

	"stocklens"
)

// Canned research queries. Each dashboard section searches with a fixed
// phrasing tuned to surface the right kind of article.

// StockNews returns recent articles about a company's stock. When the
// ticker-qualified query comes back empty it retries with the plain company
// name, which rescues thinly covered tickers.
func (c *Client) StockNews(ctx context.Context, name, ticker string, max int) ([]stocklens.NewsItem, error) {
	items, err := c.News(ctx, fmt.Sprintf("%s (%s) stock news", name, ticker), max)
	if err != nil || len(items) > 0 {
		return items, err
	}
	return c.News(ctx, fmt.Sprintf("%s stock", name), max)
}

// EarningsCall returns coverage of the latest earnings call, the raw material
// for the bull/bear synthesis.
func (c *Client) EarningsCall(ctx context.Context, name string, max int) ([]stocklens.NewsItem, error) {
	return c.News(ctx, fmt.Sprintf("%s latest earnings call bull bear analysis", name), max)
}

// FinancialAnalysis returns articles about revenue and margin drivers.
func (c *Client) FinancialAnalysis(ctx context.Context, name string, max int) ([]stocklens.NewsItem, error) {
	return c.News(ctx, fmt.Sprintf("%s quarterly results revenue drivers analysis", name), max)
}

// RevenueSegments returns articles about the revenue breakdown by segment.
func (c *Client) RevenueSegments(ctx context.Context, name string, max int) ([]stocklens.NewsItem, error) {
	return c.News(ctx, fmt.Sprintf("%s revenue by segment breakdown latest quarter", name), max)
}

// Events returns coverage of recent and upcoming company events.
func (c *Client) Events(ctx context.Context, name string, max int) ([]stocklens.NewsItem, error) {
	return c.News(ctx, fmt.Sprintf("%s upcoming events earnings date product launch", name), max)
}
