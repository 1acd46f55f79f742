package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens/renderer"
)

type financialsCmd struct {
	ticker string
}

func (*financialsCmd) Name() string     { return "financials" }
func (*financialsCmd) Synopsis() string { return "display quarterly financial trends for a ticker" }
func (*financialsCmd) Usage() string {
	return `lens financials -t TICKER

  Displays the quarterly revenue, profit and cash-flow trends with an AI
  explanation of the drivers.
`
}

func (c *financialsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
}

func (c *financialsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := financialsMarkdown(ctx, t)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// financialsMarkdown builds the financials section, shared with dashboard.
func financialsMarkdown(ctx context.Context, t string) (string, error) {
	name := companyName(ctx, t)
	income, err := market().QuarterlyIncome(ctx, t)
	if err != nil {
		return "", err
	}
	cashflow, err := market().QuarterlyCashflow(ctx, t)
	if err != nil {
		log.Printf("no cash flow statement for %s: %v", t, err)
		cashflow = nil
	}

	drivers := ""
	if a, err := analyst(ctx); err == nil {
		items, err := news().FinancialAnalysis(ctx, name, 5)
		if err != nil {
			log.Printf("no driver coverage for %s: %v", name, err)
		}
		if s, err := a.FinancialDrivers(ctx, name, income, items); err == nil {
			drivers = s
		} else {
			log.Printf("driver analysis failed: %v", err)
		}
	}
	return renderer.FinancialsMarkdown(name, income, cashflow, drivers), nil
}
