package stocklens

import "time"

// Quote holds the snapshot metrics the dashboard displays for a ticker.
// All values come from the provider's quote summary; zero means unknown.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	DayLow        float64 `json:"day_low"`
	DayHigh       float64 `json:"day_high"`
	Week52Low     float64 `json:"week_52_low"`
	Week52High    float64 `json:"week_52_high"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	TrailingPE    float64 `json:"trailing_pe"`
	TrailingEPS   float64 `json:"trailing_eps"`
	GrossProfits  float64 `json:"gross_profits"`
	RevenueGrowth float64 `json:"revenue_growth"`
}

// Change returns the absolute and relative change against the previous close.
func (q Quote) Change() (delta, pct float64) {
	delta = q.Price - q.PreviousClose
	if q.PreviousClose != 0 {
		pct = delta / q.PreviousClose
	}
	return delta, pct
}

// Profile is the company identity card.
type Profile struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	Website   string `json:"website"`
	Employees int64  `json:"employees"`
	Summary   string `json:"summary"`
}

// NewsItem is one article as returned by the news search.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// EarningsInfo captures the next calendar events for a ticker.
// It is the payload stored in the daily earnings cache.
type EarningsInfo struct {
	NextEarnings     string  `json:"next_earnings,omitempty"`
	EPSEstimated     float64 `json:"eps_estimated,omitempty"`
	RevenueEstimated float64 `json:"revenue_estimated,omitempty"`
	DividendDate     string  `json:"dividend_date,omitempty"`
	ExDividendDate   string  `json:"ex_dividend,omitempty"`
	Source           string  `json:"source,omitempty"`
}

// Bar is one daily OHLCV sample.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// History is a chronologically ordered series of daily bars.
type History []Bar

// Closes extracts the closing prices, oldest first.
func (h History) Closes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Close
	}
	return out
}

// Last returns the most recent bar, or false when the history is empty.
func (h History) Last() (Bar, bool) {
	if len(h) == 0 {
		return Bar{}, false
	}
	return h[len(h)-1], true
}
