package yahoo

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"stocklens"
)

// The quoteSummary payload wraps most numbers as {"raw": n, "fmt": "..."} and
// moves fields between modules over time, so scalar extraction goes through
// jsonpath instead of a rigid struct per module.

// jpFloat extracts a float at path, 0 when absent.
func jpFloat(jobj any, path string) float64 {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	v, _ := jval.(float64)
	return v
}

// jpString extracts a string at path, "" when absent.
func jpString(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

// result unwraps the quoteSummary envelope down to the first result object.
const result = "$.quoteSummary.result[0]"

// Quote fetches the snapshot metrics for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (stocklens.Quote, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "price", "summaryDetail", "financialData", "defaultKeyStatistics")
	if err != nil {
		return stocklens.Quote{}, err
	}
	q := stocklens.Quote{
		Ticker:        ticker,
		Name:          jpString(jobj, result+".price.longName"),
		Currency:      jpString(jobj, result+".price.currency"),
		Price:         jpFloat(jobj, result+".price.regularMarketPrice.raw"),
		PreviousClose: jpFloat(jobj, result+".price.regularMarketPreviousClose.raw"),
		DayLow:        jpFloat(jobj, result+".price.regularMarketDayLow.raw"),
		DayHigh:       jpFloat(jobj, result+".price.regularMarketDayHigh.raw"),
		Week52Low:     jpFloat(jobj, result+".summaryDetail.fiftyTwoWeekLow.raw"),
		Week52High:    jpFloat(jobj, result+".summaryDetail.fiftyTwoWeekHigh.raw"),
		Volume:        int64(jpFloat(jobj, result+".price.regularMarketVolume.raw")),
		MarketCap:     jpFloat(jobj, result+".price.marketCap.raw"),
		TrailingPE:    jpFloat(jobj, result+".summaryDetail.trailingPE.raw"),
		TrailingEPS:   jpFloat(jobj, result+".defaultKeyStatistics.trailingEps.raw"),
		GrossProfits:  jpFloat(jobj, result+".financialData.grossProfits.raw"),
		RevenueGrowth: jpFloat(jobj, result+".financialData.revenueGrowth.raw"),
	}
	if q.Name == "" {
		q.Name = jpString(jobj, result+".price.shortName")
	}
	if q.Price == 0 {
		return q, fmt.Errorf("no price for %q, unknown ticker?", ticker)
	}
	return q, nil
}

// Profile fetches the company identity card for a ticker.
func (c *Client) Profile(ctx context.Context, ticker string) (stocklens.Profile, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "assetProfile", "price")
	if err != nil {
		return stocklens.Profile{}, err
	}
	p := stocklens.Profile{
		Ticker:    ticker,
		Name:      jpString(jobj, result+".price.longName"),
		Sector:    jpString(jobj, result+".assetProfile.sector"),
		Industry:  jpString(jobj, result+".assetProfile.industry"),
		Website:   jpString(jobj, result+".assetProfile.website"),
		Employees: int64(jpFloat(jobj, result+".assetProfile.fullTimeEmployees")),
		Summary:   jpString(jobj, result+".assetProfile.longBusinessSummary"),
	}
	if p.Name == "" && p.Sector == "" {
		return p, fmt.Errorf("no profile for %q", ticker)
	}
	return p, nil
}
