package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/agent"
	"stocklens/renderer"
)

type newsCmd struct {
	ticker string
	max    int
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "summarize recent news for a ticker" }
func (*newsCmd) Usage() string {
	return `lens news -t TICKER [-n 8]

  Fetches recent articles and renders an AI digest with the sources.
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
	f.IntVar(&c.max, "n", 8, "Maximum number of articles")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := newsMarkdown(ctx, t, c.max)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// newsMarkdown builds the news section, shared with dashboard.
func newsMarkdown(ctx context.Context, t string, max int) (string, error) {
	name := companyName(ctx, t)
	items, err := news().StockNews(ctx, name, t, max)
	if err != nil {
		return "", err
	}

	digest := ""
	if a, err := analyst(ctx); err == nil {
		if len(items) < 3 {
			items = append(items, brandedNews(ctx, a, name, t, max-len(items))...)
		}
		if s, err := a.NewsDigest(ctx, name, items); err == nil {
			digest = s
		} else {
			log.Printf("news digest failed: %v", err)
		}
	}
	return renderer.NewsMarkdown(name, digest, items), nil
}

// brandedNews widens a thin news search with the company's branding terms
// (parent company, flagship products).
func brandedNews(ctx context.Context, a *agent.Analyst, name, t string, max int) []stocklens.NewsItem {
	if max <= 0 {
		return nil
	}
	keywords, err := a.BrandingKeywords(ctx, name, t)
	if err != nil || len(keywords) == 0 {
		log.Printf("no branding keywords for %s: %v", name, err)
		return nil
	}
	items, err := news().News(ctx, keywords[0]+" stock", max)
	if err != nil {
		log.Printf("branded news search failed for %s: %v", name, err)
		return nil
	}
	return items
}
