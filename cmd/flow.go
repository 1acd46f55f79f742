package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type flowCmd struct {
	ticker  string
	refresh bool
	raw     bool
}

func (*flowCmd) Name() string     { return "flow" }
func (*flowCmd) Synopsis() string { return "display the income-statement flow for a ticker" }
func (*flowCmd) Usage() string {
	return `lens flow -t TICKER [-refresh] [-json]

  Displays where revenue goes: the income-statement flow resolved against
  the latest quarterly figures. The flow structure comes from the cache, AI
  inference, or the classic default, in that order.

  -refresh discards the cached structure and infers a fresh one.
  -json prints the raw node/link diagram instead of the table.
`
}

func (c *flowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL")
	f.BoolVar(&c.refresh, "refresh", false, "Re-infer the flow structure")
	f.BoolVar(&c.raw, "json", false, "Print the raw diagram JSON")
}

func (c *flowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := ticker(c.ticker)
	if err != nil {
		return fail(err)
	}
	name := companyName(ctx, t)

	income, err := market().QuarterlyIncome(ctx, t)
	if err != nil {
		return fail(err)
	}
	structure := flowStructure(ctx, t, name, income, c.refresh)
	segments := flowSegments(ctx, name)

	d, err := stocklens.BuildSankey(structure, income, segments)
	if err != nil {
		return fail(err)
	}

	if c.raw {
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.FlowMarkdown(name, d, segments))
	return subcommands.ExitSuccess
}

// flowStructure resolves the flow structure for a ticker: cached structure
// first, AI inference second, the classic default last. Inferred structures
// are cached without expiry; -refresh drops the entry before resolving.
func flowStructure(ctx context.Context, t, name string, income *stocklens.Statement, refresh bool) *stocklens.SankeyStructure {
	cache := StructureCache()
	if refresh {
		if err := cache.Invalidate(t); err != nil {
			log.Printf("cannot invalidate structure cache for %s: %v", t, err)
		}
	}

	var s stocklens.SankeyStructure
	if cache.Get(t, &s) && s.Validate() == nil {
		return &s
	}

	if a, err := analyst(ctx); err == nil {
		inferred, err := a.InferStructure(ctx, name, income.LatestFields())
		if err == nil {
			if err := cache.Put(t, inferred); err != nil {
				log.Printf("cannot cache structure for %s: %v", t, err)
			}
			return inferred
		}
		log.Printf("structure inference failed for %s, using the default: %v", t, err)
	}
	return stocklens.DefaultSankeyStructure()
}

// flowSegments extracts the revenue segment split from coverage. Optional:
// the flow renders without segments.
func flowSegments(ctx context.Context, name string) []stocklens.Segment {
	a, err := analyst(ctx)
	if err != nil {
		return nil
	}
	items, err := news().RevenueSegments(ctx, name, 5)
	if err != nil || len(items) == 0 {
		log.Printf("no segment coverage for %s", name)
		return nil
	}
	segments, err := a.Segments(ctx, name, items)
	if err != nil {
		log.Printf("segment extraction failed for %s: %v", name, err)
		return nil
	}
	return segments
}
