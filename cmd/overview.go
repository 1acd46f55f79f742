package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type overviewCmd struct {
	ticker string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display the company snapshot for a ticker" }
func (*overviewCmd) Usage() string {
	return `lens overview -t TICKER

  Displays the company profile, quote metrics and momentum signals.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := overviewMarkdown(ctx, t)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// overviewMarkdown builds the overview section, shared with dashboard.
func overviewMarkdown(ctx context.Context, t string) (string, error) {
	q, err := market().Quote(ctx, t)
	if err != nil {
		return "", err
	}
	p, err := market().Profile(ctx, t)
	if err != nil {
		log.Printf("no profile for %s: %v", t, err)
	}

	var signals []string
	if h, err := market().History(ctx, t, "1y"); err == nil {
		signals = stocklens.Signals(h, stocklens.ComputeMomentum(h))
	} else {
		log.Printf("no history for %s: %v", t, err)
	}

	// the core-driver framing is optional, the section renders without it
	coreDriver := ""
	if a, err := analyst(ctx); err == nil {
		if s, err := a.CoreDriver(ctx, q.Name, p.Summary); err == nil {
			coreDriver = s
		} else {
			log.Printf("core driver analysis failed: %v", err)
		}
	}
	md := renderer.OverviewMarkdown(q, p, coreDriver, signals)
	if v := valuationMarkdown(ctx, t, q); v != "" {
		md += "\n" + v
	}
	return md, nil
}

// valuationMarkdown prices the classic earnings multiples against the
// current quote. Empty when reported earnings are missing or negative.
func valuationMarkdown(ctx context.Context, t string, q stocklens.Quote) string {
	points, err := market().EarningsHistory(ctx, t)
	if err != nil {
		log.Printf("no earnings history for %s: %v", t, err)
		return ""
	}
	ttm := stocklens.TTMEPS(points)
	bands := stocklens.PEBands(ttm)
	if len(bands) == 0 {
		return ""
	}
	name := q.Name
	if name == "" {
		name = t
	}
	return renderer.ValuationMarkdown(name, stocklens.M(q.Price, q.Currency), ttm, bands)
}
