package renderer

import (
	"bytes"
	"sort"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// CompetitorsMarkdown renders the peer-comparison table and the relative
// 1-year performance ranking (percent return, normalized to each listing's
// first sample).
func CompetitorsMarkdown(name string, rows []stocklens.CompetitorRow, relative map[string]float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Competitors — " + name)

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Ticker, r.Name, r.Price.String(), ratio(r.PE), num(r.MarketCap),
			pct(r.Chg3M), pct(r.Chg6M), pct(r.Chg1Y),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Name", "Price", "P/E", "Market Cap", "3M", "6M", "1Y"},
		Rows:   table,
	})

	if len(relative) > 0 {
		doc.H2("Relative Performance (1Y)")
		tickers := make([]string, 0, len(relative))
		for t := range relative {
			tickers = append(tickers, t)
		}
		sort.Slice(tickers, func(i, j int) bool { return relative[tickers[i]] > relative[tickers[j]] })
		perf := make([][]string, 0, len(tickers))
		for _, t := range tickers {
			perf = append(perf, []string{t, pct(relative[t])})
		}
		doc.Table(md.TableSet{
			Header: []string{"Ticker", "Return"},
			Rows:   perf,
		})
	}
	return doc.String()
}
