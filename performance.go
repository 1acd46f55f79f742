package stocklens

// Performance windows measured in trading days (21 per month).
const (
	Window3M = 63
	Window6M = 126
	Window1Y = 250
)

// Change returns the percent change of the closing price over the last
// daysAgo trading days, 0 when the history is too short.
func (h History) Change(daysAgo int) float64 {
	if len(h) <= daysAgo {
		return 0
	}
	start := h[len(h)-1-daysAgo].Close
	if start == 0 {
		return 0
	}
	curr := h[len(h)-1].Close
	return (curr - start) / start * 100
}

// Normalize rebases the closing prices to percent return from the first
// sample, the shape used by the relative-performance comparison.
func (h History) Normalize() []float64 {
	if len(h) == 0 {
		return nil
	}
	base := h[0].Close
	out := make([]float64, len(h))
	if base == 0 {
		return out
	}
	for i, b := range h {
		out[i] = (b.Close/base - 1) * 100
	}
	return out
}

// CompetitorRow is one line of the peer-comparison table.
type CompetitorRow struct {
	Ticker    string
	Name      string
	Price     Money
	PE        float64
	MarketCap float64
	Chg3M     float64
	Chg6M     float64
	Chg1Y     float64
}

// NewCompetitorRow derives a comparison line from a quote and a 1y history.
// The 1Y column is suppressed when the listing is younger than ~a year.
func NewCompetitorRow(q Quote, h History) CompetitorRow {
	row := CompetitorRow{
		Ticker:    q.Ticker,
		Name:      q.Name,
		Price:     M(q.Price, q.Currency),
		PE:        q.TrailingPE,
		MarketCap: q.MarketCap,
		Chg3M:     h.Change(Window3M),
		Chg6M:     h.Change(Window6M),
	}
	if len(h) > 240 {
		row.Chg1Y = h.Change(Window1Y)
	}
	return row
}
