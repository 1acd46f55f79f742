package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type eventsCmd struct {
	ticker string
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "display the earnings calendar and event timeline" }
func (*eventsCmd) Usage() string {
	return `lens events -t TICKER

  Displays the next earnings date (cached for the day) and an AI timeline
  of recent and upcoming events.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
}

func (c *eventsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	md, err := eventsMarkdown(ctx, t)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// eventsMarkdown builds the events section, shared with dashboard.
func eventsMarkdown(ctx context.Context, t string) (string, error) {
	name := companyName(ctx, t)
	info, err := nextEarnings(ctx, t)
	if err != nil {
		log.Printf("no calendar events for %s: %v", t, err)
		info = stocklens.EarningsInfo{}
	}

	timeline := ""
	if a, err := analyst(ctx); err == nil {
		items, err := news().Events(ctx, name, 6)
		if err != nil {
			log.Printf("no event coverage for %s: %v", name, err)
		}
		if s, err := a.Events(ctx, name, info, items); err == nil {
			timeline = s
		} else {
			log.Printf("event timeline failed: %v", err)
		}
	}
	return renderer.EventsMarkdown(name, info, timeline), nil
}
