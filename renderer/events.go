package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// EventsMarkdown renders the earnings calendar entry and the AI timeline.
func EventsMarkdown(name string, info stocklens.EarningsInfo, timeline string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Events — " + name)

	rows := [][]string{}
	if info.NextEarnings != "" {
		rows = append(rows, []string{"Next Earnings", info.NextEarnings})
	}
	if info.EPSEstimated != 0 {
		rows = append(rows, []string{"EPS Estimate", fmt.Sprintf("%.2f", info.EPSEstimated)})
	}
	if info.RevenueEstimated != 0 {
		rows = append(rows, []string{"Revenue Estimate", num(info.RevenueEstimated)})
	}
	if info.ExDividendDate != "" {
		rows = append(rows, []string{"Ex-Dividend", info.ExDividendDate})
	}
	if info.DividendDate != "" {
		rows = append(rows, []string{"Dividend Payment", info.DividendDate})
	}
	if len(rows) > 0 {
		if info.Source != "" {
			rows = append(rows, []string{"Source", info.Source})
		}
		doc.H2("Calendar")
		doc.Table(md.TableSet{Header: []string{"Event", "Date"}, Rows: rows})
	} else {
		doc.PlainText("No confirmed calendar events.")
	}

	if timeline != "" {
		doc.PlainText(timeline)
	}
	return doc.String()
}
