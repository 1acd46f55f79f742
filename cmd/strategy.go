package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type strategyCmd struct {
	ticker string
}

func (*strategyCmd) Name() string     { return "strategy" }
func (*strategyCmd) Synopsis() string { return "synthesize the bull and bear case for a ticker" }
func (*strategyCmd) Usage() string {
	return `lens strategy -t TICKER

  Synthesizes the bull case, bear case and key variance from the latest
  earnings coverage.
`
}

func (c *strategyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
}

func (c *strategyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := strategyMarkdown(ctx, t)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// strategyMarkdown builds the strategy section, shared with dashboard.
// The section is the AI analysis itself, so a missing Gemini key fails it.
func strategyMarkdown(ctx context.Context, t string) (string, error) {
	a, err := analyst(ctx)
	if err != nil {
		return "", err
	}
	name := companyName(ctx, t)
	items, err := news().EarningsCall(ctx, name, 8)
	if err != nil {
		return "", err
	}
	md, err := a.Strategy(ctx, name, items)
	if err != nil {
		return "", err
	}
	return "# Strategy — " + name + "\n\n" + md + "\n", nil
}
