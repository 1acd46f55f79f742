package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type dashboardCmd struct {
	ticker string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the full research dashboard for a ticker" }
func (*dashboardCmd) Usage() string {
	return `lens dashboard -t TICKER

  Renders every research section for a ticker in one pass: overview, news,
  strategy, financials, income flow, competitors, events and saved theses.
  Sections that cannot be produced are skipped with a warning.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}

	sections := []struct {
		name  string
		build func(context.Context, string) (string, error)
	}{
		{"overview", overviewMarkdown},
		{"news", func(ctx context.Context, t string) (string, error) { return newsMarkdown(ctx, t, 8) }},
		{"strategy", strategyMarkdown},
		{"financials", financialsMarkdown},
		{"flow", dashboardFlow},
		{"competitors", func(ctx context.Context, t string) (string, error) { return competitorsMarkdown(ctx, t, 4) }},
		{"events", eventsMarkdown},
		{"theses", dashboardTheses},
	}
	for _, s := range sections {
		out, err := s.build(ctx, t)
		if err != nil {
			log.Printf("skipping %s section: %v", s.name, err)
			continue
		}
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}

func dashboardFlow(ctx context.Context, t string) (string, error) {
	name := companyName(ctx, t)
	income, err := market().QuarterlyIncome(ctx, t)
	if err != nil {
		return "", err
	}
	structure := flowStructure(ctx, t, name, income, false)
	segments := flowSegments(ctx, name)
	d, err := stocklens.BuildSankey(structure, income, segments)
	if err != nil {
		return "", err
	}
	return renderer.FlowMarkdown(name, d, segments), nil
}

func dashboardTheses(ctx context.Context, t string) (string, error) {
	theses, err := Store().ByTicker(t)
	if err != nil {
		return "", err
	}
	return renderer.ThesesMarkdown(theses), nil
}
