package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type thesesCmd struct {
	ticker string
}

func (*thesesCmd) Name() string     { return "theses" }
func (*thesesCmd) Synopsis() string { return "list recorded investment theses" }
func (*thesesCmd) Usage() string {
	return `lens theses [-t TICKER]

  Lists your investment theses, optionally filtered by ticker.
`
}

func (c *thesesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only show theses for this ticker")
}

func (c *thesesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var theses []stocklens.Thesis
	var err error
	if c.ticker != "" {
		theses, err = Store().ByTicker(c.ticker)
	} else {
		theses, err = Store().Load()
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ThesesMarkdown(theses))
	return subcommands.ExitSuccess
}
