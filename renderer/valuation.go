package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// ValuationMarkdown renders the trailing-earnings valuation bands and where
// the current price sits among them.
func ValuationMarkdown(name string, price stocklens.Money, ttmEPS float64, bands []stocklens.PEBand) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Valuation — " + name)
	doc.PlainText(fmt.Sprintf("Trailing twelve-month EPS: %.2f. Current price: %s.", ttmEPS, price))

	rows := make([][]string, 0, len(bands))
	for _, b := range bands {
		level := stocklens.M(b.Price, price.Currency())
		verdict := "above current price"
		if b.Price <= price.AsFloat() {
			verdict = "below current price"
		}
		rows = append(rows, []string{fmt.Sprintf("%.0fx", b.Multiple), level.String(), verdict})
	}
	doc.Table(md.TableSet{
		Header: []string{"Multiple", "Implied Price", ""},
		Rows:   rows,
	})
	return doc.String()
}
