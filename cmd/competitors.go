package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type competitorsCmd struct {
	ticker string
	max    int
}

func (*competitorsCmd) Name() string     { return "competitors" }
func (*competitorsCmd) Synopsis() string { return "compare a ticker against its closest peers" }
func (*competitorsCmd) Usage() string {
	return `lens competitors -t TICKER [-n 4]

  Identifies the closest public competitors and compares price, valuation
  and 3M/6M/1Y performance.
`
}

func (c *competitorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
	f.IntVar(&c.max, "n", 4, "Maximum number of competitors")
}

func (c *competitorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := competitorsMarkdown(ctx, t, c.max)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// competitorsMarkdown builds the peer comparison, shared with dashboard.
// Competitor identification needs the AI; the comparison itself is pure
// market data.
func competitorsMarkdown(ctx context.Context, t string, max int) (string, error) {
	a, err := analyst(ctx)
	if err != nil {
		return "", err
	}
	name := companyName(ctx, t)
	peers, err := a.Competitors(ctx, name, t, max)
	if err != nil {
		return "", err
	}

	tickers := append([]string{t}, peers...)
	rows := make([]stocklens.CompetitorRow, 0, len(tickers))
	relative := make(map[string]float64, len(tickers))
	for _, p := range tickers {
		q, err := market().Quote(ctx, p)
		if err != nil {
			log.Printf("skipping peer %s: %v", p, err)
			continue
		}
		h, err := market().History(ctx, p, "1y")
		if err != nil {
			log.Printf("no history for peer %s: %v", p, err)
		}
		rows = append(rows, stocklens.NewCompetitorRow(q, h))
		if normalized := h.Normalize(); len(normalized) > 0 {
			relative[p] = normalized[len(normalized)-1]
		}
	}
	return renderer.CompetitorsMarkdown(name, rows, relative), nil
}
