package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// FinancialsMarkdown renders the quarterly trend tables plus the AI driver
// analysis. Each metric table carries the per-quarter value and its
// quarter-over-quarter growth.
func FinancialsMarkdown(name string, income, cashflow *stocklens.Statement, drivers string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Financials — " + name)

	series := []stocklens.Series{}
	if income != nil {
		series = append(series,
			income.Series("Revenue", "Total Revenue"),
			income.Series("Gross Profit", "Gross Profit"),
			income.Series("Operating Income", "Operating Income", "EBIT"),
			income.Series("Net Income", "Net Income"),
		)
	}
	if cashflow != nil {
		series = append(series,
			cashflow.Series("Operating Cash Flow", "Operating Cash Flow"),
			cashflow.Series("CapEx", "Capital Expenditure").Abs(),
		)
	}
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		seriesTable(doc, s)
	}

	if drivers != "" {
		doc.H2("Drivers")
		doc.PlainText(drivers)
	}
	return doc.String()
}

// seriesTable writes one metric as a quarters/value/growth table.
func seriesTable(doc *md.Markdown, s stocklens.Series) {
	doc.H2(s.Name)
	growth := s.Growth()
	valueRow := []string{"Value"}
	growthRow := []string{"Growth"}
	for i, v := range s.Values {
		valueRow = append(valueRow, num(v))
		g := growth[i]
		if g == "" {
			g = "-"
		}
		growthRow = append(growthRow, g)
	}
	doc.Table(md.TableSet{
		Header: append([]string{"Quarter"}, s.Periods...),
		Rows:   [][]string{valueRow, growthRow},
	})
}
