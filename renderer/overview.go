package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// OverviewMarkdown renders the company snapshot: identity, quote metrics,
// momentum signals and the AI-framed core driver.
func OverviewMarkdown(q stocklens.Quote, p stocklens.Profile, coreDriver string, signals []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	name := q.Name
	if name == "" {
		name = q.Ticker
	}
	doc.H1(fmt.Sprintf("%s (%s)", name, q.Ticker))
	if p.Sector != "" {
		doc.PlainText(fmt.Sprintf("%s — %s", p.Sector, p.Industry))
	}

	delta, chg := q.Change()
	price := stocklens.M(q.Price, q.Currency)
	doc.H2("Quote")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Price", fmt.Sprintf("%s (%s / %s)", price, stocklens.M(delta, q.Currency).SignedString(), pct(chg*100))},
			{"Day Range", fmt.Sprintf("%s - %s", stocklens.M(q.DayLow, q.Currency), stocklens.M(q.DayHigh, q.Currency))},
			{"52w Range", fmt.Sprintf("%s - %s", stocklens.M(q.Week52Low, q.Currency), stocklens.M(q.Week52High, q.Currency))},
			{"Market Cap", num(q.MarketCap)},
			{"Volume", fmt.Sprintf("%d", q.Volume)},
			{"Trailing P/E", ratio(q.TrailingPE)},
			{"Trailing EPS", ratio(q.TrailingEPS)},
			{"Revenue Growth", pct(q.RevenueGrowth * 100)},
		},
	})

	if len(signals) > 0 {
		doc.H2("Momentum")
		doc.BulletList(signals...)
	}
	if coreDriver != "" {
		doc.H2("What Matters")
		doc.PlainText(coreDriver)
	}
	if p.Summary != "" {
		doc.H2("About")
		doc.PlainText(p.Summary)
	}
	return doc.String()
}
