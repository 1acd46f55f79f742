// Package yahoo reads quotes, price history, fundamentals and calendar events
// from the Yahoo Finance JSON API (query2.finance.yahoo.com).
//
// The quoteSummary endpoints require a session cookie plus a "crumb" token;
// the client obtains both lazily and retries once on a stale crumb. All
// requests go through a shared limiter and a disk cache that expires daily.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stocklens"
)

const (
	defaultBase = "https://query2.finance.yahoo.com"
	seedURL     = "https://fc.yahoo.com"
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Client talks to the Yahoo Finance API.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	base    string
	seed    string
	crumb   string
}

// New returns a ready-to-use client with a cookie jar and a daily disk cache.
func New() *Client {
	c := stocklens.NewDailyCachingClient()
	c.Timeout = 15 * time.Second
	c.Jar, _ = cookiejar.New(nil)
	return &Client{
		http:    c,
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 2),
		base:    defaultBase,
		seed:    seedURL,
	}
}

// get performs a rate-limited GET with the browser user agent and decodes the
// JSON response into data.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return json.Unmarshal(body, data)
}

// getCrumb establishes session cookies and fetches the crumb token. Yahoo
// rejects quoteSummary calls without the pair.
func (c *Client) getCrumb(ctx context.Context) (string, error) {
	if c.crumb != "" {
		return c.crumb, nil
	}

	// any page visit seeds the cookie jar, the status does not matter
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.seed, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	if resp, err := c.http.Do(req); err == nil {
		resp.Body.Close()
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/test/getcrumb", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot fetch crumb: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("crumb endpoint: %v", resp.Status)
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" {
		return "", fmt.Errorf("crumb endpoint returned an empty token")
	}
	c.crumb = crumb
	return crumb, nil
}

// quoteSummary fetches the given modules for a ticker as a raw JSON value,
// retrying once with a fresh crumb when the old one is rejected.
func (c *Client) quoteSummary(ctx context.Context, ticker string, modules ...string) (any, error) {
	fetch := func() (any, error) {
		crumb, err := c.getCrumb(ctx)
		if err != nil {
			return nil, err
		}
		addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s&crumb=%s",
			c.base, url.PathEscape(ticker), strings.Join(modules, ","), url.QueryEscape(crumb))
		var jobj any
		if err := c.get(ctx, addr, &jobj); err != nil {
			return nil, err
		}
		return jobj, nil
	}

	jobj, err := fetch()
	if err != nil && (strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "403")) {
		c.crumb = ""
		jobj, err = fetch()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot fetch quote summary for %q: %w", ticker, err)
	}
	return jobj, nil
}
