package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stocklens"
)

// NewsMarkdown renders the AI digest followed by the source articles.
func NewsMarkdown(name, digest string, items []stocklens.NewsItem) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("News — %s", name))
	if digest != "" {
		doc.PlainText(digest)
	}

	if len(items) > 0 {
		doc.H2("Sources")
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.Date, it.Source, fmt.Sprintf("[%s](%s)", it.Title, it.URL)})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Source", "Title"},
			Rows:   rows,
		})
	} else {
		doc.PlainText("No recent articles found.")
	}
	return doc.String()
}
