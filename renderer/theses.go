package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// ThesesMarkdown renders the thesis list. The short id column is what the
// rm and refine commands accept.
func ThesesMarkdown(theses []stocklens.Thesis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Investment Theses")

	if len(theses) == 0 {
		doc.PlainText("No theses yet. Add one with 'lens thesis-add' or draft one with 'lens thesis-generate'.")
		return doc.String()
	}

	rows := make([][]string, 0, len(theses))
	for _, t := range theses {
		rows = append(rows, []string{
			shortID(t.ID), t.Ticker, t.Status, t.Horizon,
			fmt.Sprintf("%d/10", t.Confidence), t.Statement,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Ticker", "Status", "Horizon", "Confidence", "Statement"},
		Rows:   rows,
	})

	doc.H2("Falsification Conditions")
	for _, t := range theses {
		doc.BulletList(fmt.Sprintf("**%s** (%s): %s", t.Ticker, shortID(t.ID), t.FalsificationCondition))
	}
	return doc.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
