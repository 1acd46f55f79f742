package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// FlowMarkdown renders the income flow diagram as a markdown table, largest
// flows first within the provider order. The raw diagram JSON is available
// separately through the -json flag.
func FlowMarkdown(name string, d *stocklens.SankeyDiagram, segments []stocklens.Segment) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Income Flow — " + name)

	rows := make([][]string, 0, len(d.Sources))
	for _, f := range d.Flows() {
		rows = append(rows, []string{f.Source, f.Target, stocklens.FormatLargeNumber(f.Value)})
	}
	doc.Table(md.TableSet{
		Header: []string{"From", "To", "Amount"},
		Rows:   rows,
	})

	if len(segments) > 0 {
		doc.H2("Revenue Segments")
		segRows := make([][]string, 0, len(segments))
		for _, s := range segments {
			growth := s.Growth
			if growth == "" {
				growth = "-"
			}
			segRows = append(segRows, []string{s.Label, fmt.Sprintf("$%.1fB", s.Value), growth})
		}
		doc.Table(md.TableSet{
			Header: []string{"Segment", "Revenue", "YoY"},
			Rows:   segRows,
		})
	}
	return doc.String()
}
