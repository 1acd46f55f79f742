package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"stocklens"
)

// chart is the v8 chart API envelope, reduced to the fields we read.
type chart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches the daily bars for a ticker over a range such as "3mo",
// "1y" or "2y". The chart endpoint needs no crumb.
func (c *Client) History(ctx context.Context, ticker, rng string) (stocklens.History, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.base, url.PathEscape(ticker), rng)
	var payload chart
	if err := c.get(ctx, addr, &payload); err != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %w", ticker, err)
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %s %s", ticker, e.Code, e.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no history for %q", ticker)
	}

	r := payload.Chart.Result[0]
	q := r.Indicators.Quote[0]
	h := make(stocklens.History, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == 0 {
			continue
		}
		b := stocklens.Bar{Date: time.Unix(ts, 0).UTC(), Close: q.Close[i]}
		if i < len(q.Open) {
			b.Open = q.Open[i]
		}
		if i < len(q.High) {
			b.High = q.High[i]
		}
		if i < len(q.Low) {
			b.Low = q.Low[i]
		}
		if i < len(q.Volume) {
			b.Volume = q.Volume[i]
		}
		h = append(h, b)
	}
	if len(h) == 0 {
		return nil, fmt.Errorf("no history for %q", ticker)
	}
	return h, nil
}
