package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stocklens"
)

type thesisAddCmd struct {
	ticker        string
	statement     string
	falsification string
	horizon       string
	confidence    int
}

func (*thesisAddCmd) Name() string     { return "thesis-add" }
func (*thesisAddCmd) Synopsis() string { return "record an investment thesis" }
func (*thesisAddCmd) Usage() string {
	return `lens thesis-add -t TICKER -s "statement" -f "falsification condition" [-horizon "6-12 Months"] [-confidence 5]

  Records a falsifiable investment thesis. Saving the same ticker and
  statement again updates the existing thesis instead of duplicating it.
`
}

func (c *thesisAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
	f.StringVar(&c.statement, "s", "", "The claim: one specific, measurable statement")
	f.StringVar(&c.falsification, "f", "", "The observable outcome that would disprove the claim")
	f.StringVar(&c.horizon, "horizon", "6-12 Months", "Time horizon: one of 1-3 Months, 3-6 Months, 6-12 Months, 1-3 Years")
	f.IntVar(&c.confidence, "confidence", 5, "Confidence 1-10")
}

func (c *thesisAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	thesis, err := stocklens.NewThesis(t, c.statement, c.falsification, c.horizon, c.confidence)
	if err != nil {
		return fail(err)
	}
	if err := Store().Save(thesis); err != nil {
		return fail(err)
	}
	fmt.Printf("Saved thesis %s for %s\n", thesis.ID[:8], thesis.Ticker)
	return subcommands.ExitSuccess
}
