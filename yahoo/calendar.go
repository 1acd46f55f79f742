package yahoo

import (
	"context"
	"time"

	"stocklens"
)

// Calendar fetches the next earnings and dividend dates for a ticker. It is
// the fallback source when the primary earnings provider has no entry.
func (c *Client) Calendar(ctx context.Context, ticker string) (stocklens.EarningsInfo, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "calendarEvents")
	if err != nil {
		return stocklens.EarningsInfo{}, err
	}
	events := result + ".calendarEvents"
	info := stocklens.EarningsInfo{
		NextEarnings:     jpString(jobj, events+".earnings.earningsDate[0].fmt"),
		EPSEstimated:     jpFloat(jobj, events+".earnings.earningsAverage.raw"),
		RevenueEstimated: jpFloat(jobj, events+".earnings.revenueAverage.raw"),
		DividendDate:     epochDay(jpFloat(jobj, events+".dividendDate.raw")),
		ExDividendDate:   epochDay(jpFloat(jobj, events+".exDividendDate.raw")),
		Source:           "yahoo",
	}
	return info, nil
}

// epochDay formats a unix-seconds value as a calendar day, "" for zero.
func epochDay(v float64) string {
	if v == 0 {
		return ""
	}
	return time.Unix(int64(v), 0).UTC().Format(stocklens.DateFormat)
}
