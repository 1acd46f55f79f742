// Package ddg fetches news articles from the DuckDuckGo news endpoint.
//
// The endpoint is unofficial: a query first needs a "vqd" session token
// scraped from the regular search page, then news.js returns JSON results.
package ddg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"stocklens"
)

const (
	defaultBase = "https://duckduckgo.com"
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var vqdRe = regexp.MustCompile(`vqd=['"]?([\d-]+)`)

// Client queries DuckDuckGo news.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	base    string
}

// New returns a client backed by the shared daily disk cache, so repeated
// dashboard renders do not hammer the endpoint.
func New() *Client {
	c := stocklens.NewDailyCachingClient()
	c.Timeout = 15 * time.Second
	return &Client{
		http:    c,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		base:    defaultBase,
	}
}

// vqd scrapes the session token for a query from the search page.
func (c *Client) vqd(ctx context.Context, query string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	addr := fmt.Sprintf("%s/?q=%s", c.base, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot reach duckduckgo: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	m := vqdRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no vqd token for query %q", query)
	}
	return string(m[1]), nil
}

// newsResult is one article in the news.js payload.
type newsResult struct {
	Date   int64  `json:"date"` // unix seconds
	Title  string `json:"title"`
	Body   string `json:"excerpt"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// News returns up to max articles for a raw query, newest first as the
// endpoint delivers them.
func (c *Client) News(ctx context.Context, query string, max int) ([]stocklens.NewsItem, error) {
	token, err := c.vqd(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("%s/news.js?l=us-en&o=json&noamp=1&q=%s&vqd=%s",
		c.base, url.QueryEscape(query), url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch news for %q: %w", query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch news for %q: %v", query, resp.Status)
	}

	var payload struct {
		Results []newsResult `json:"results"`
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cannot decode news for %q: %w", query, err)
	}

	items := make([]stocklens.NewsItem, 0, max)
	for _, r := range payload.Results {
		if len(items) == max {
			break
		}
		if r.Title == "" {
			continue
		}
		items = append(items, stocklens.NewsItem{
			Title:  r.Title,
			Source: r.Source,
			Date:   time.Unix(r.Date, 0).UTC().Format(stocklens.Timestamp),
			Body:   r.Body,
			URL:    r.URL,
		})
	}
	return items, nil
}
