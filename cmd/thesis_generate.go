package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type thesisGenerateCmd struct {
	ticker string
	yes    bool
}

func (*thesisGenerateCmd) Name() string     { return "thesis-generate" }
func (*thesisGenerateCmd) Synopsis() string { return "draft an investment thesis with the AI" }
func (*thesisGenerateCmd) Usage() string {
	return `lens thesis-generate -t TICKER [-y]

  Gathers current research material and drafts a falsifiable thesis.
  The draft is shown and saved only on confirmation (-y skips the prompt).
`
}

func (c *thesisGenerateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
	f.BoolVar(&c.yes, "y", false, "Save without asking")
}

func (c *thesisGenerateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	a, err := analyst(ctx)
	if err != nil {
		return fail(err)
	}

	name := companyName(ctx, t)
	material := thesisMaterial(ctx, t, name)
	thesis, err := a.GenerateThesis(ctx, name, t, material)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.ThesesMarkdown([]stocklens.Thesis{thesis}))
	if !c.yes && !confirm("Save this thesis?") {
		fmt.Println("Discarded.")
		return subcommands.ExitSuccess
	}
	if err := Store().Save(thesis); err != nil {
		return fail(err)
	}
	fmt.Printf("Saved thesis %s for %s\n", thesis.ID[:8], thesis.Ticker)
	return subcommands.ExitSuccess
}

// thesisMaterial gathers the research context a thesis draft is grounded in:
// quote metrics, latest statement figures and recent coverage. Parts that
// fail are simply left out.
func thesisMaterial(ctx context.Context, t, name string) string {
	var b strings.Builder
	if q, err := market().Quote(ctx, t); err == nil {
		fmt.Fprintf(&b, "Price %.2f %s, market cap %s, trailing P/E %.1f, revenue growth %+.1f%%.\n\n",
			q.Price, q.Currency, stocklens.FormatLargeNumber(q.MarketCap), q.TrailingPE, q.RevenueGrowth*100)
	}
	if st, err := market().QuarterlyIncome(ctx, t); err == nil {
		b.WriteString("Latest quarter:\n")
		for label, v := range st.LatestFields() {
			fmt.Fprintf(&b, "- %s: %s\n", label, stocklens.FormatLargeNumber(v))
		}
		b.WriteString("\n")
	}
	if items, err := news().StockNews(ctx, name, t, 5); err == nil {
		b.WriteString("Recent coverage:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", it.Date, it.Title, it.Body)
		}
	}
	return b.String()
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
