// Package cmd implements the CLI application for stock research.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/agent"
	"stocklens/ddg"
	"stocklens/fmp"
	"stocklens/yahoo"
)

// Commands lists every subcommand a main package should register.
var Commands = []subcommands.Command{
	&overviewCmd{},
	&newsCmd{},
	&strategyCmd{},
	&financialsCmd{},
	&flowCmd{},
	&competitorsCmd{},
	&eventsCmd{},
	&thesesCmd{},
	&thesisAddCmd{},
	&thesisGenerateCmd{},
	&thesisRefineCmd{},
	&thesisRmCmd{},
	&dashboardCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var thesesFile = flag.String("theses-file", stocklens.DefaultThesesFile(), "Path to the theses JSON file")
var cacheDir = flag.String("cache-dir", stocklens.DefaultCacheDir(), "Directory for the derived-data caches")
var Verbose = flag.Bool("v", false, "Log progress and provider traffic")

// SetupLogging silences the log package unless -v is given.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// Store returns the thesis store for the configured file.
func Store() *stocklens.ThesisStore {
	return stocklens.NewThesisStore(*thesesFile)
}

// EarningsCache returns the day-scoped earnings calendar cache.
func EarningsCache() *stocklens.FileCache {
	return stocklens.NewFileCache(*cacheDir, "earnings.json")
}

// StructureCache returns the never-expiring flow structure cache.
func StructureCache() *stocklens.FileCache {
	return stocklens.NewFileCache(*cacheDir, "structures.json")
}

// Shared provider clients, built lazily once per process.
var (
	yahooClient *yahoo.Client
	ddgClient   *ddg.Client
)

func market() *yahoo.Client {
	if yahooClient == nil {
		yahooClient = yahoo.New()
	}
	return yahooClient
}

func news() *ddg.Client {
	if ddgClient == nil {
		ddgClient = ddg.New()
	}
	return ddgClient
}

// analyst connects to Gemini, failing with a usage hint when the key is
// missing.
func analyst(ctx context.Context) (*agent.Analyst, error) {
	return agent.NewAnalyst(ctx)
}

// ticker normalizes and validates the -t flag common to all report commands.
func ticker(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return "", fmt.Errorf("missing ticker, use -t TICKER")
	}
	return t, nil
}

// companyName resolves the display name for a ticker, falling back to the
// ticker itself.
func companyName(ctx context.Context, t string) string {
	q, err := market().Quote(ctx, t)
	if err != nil || q.Name == "" {
		return t
	}
	return q.Name
}

// fail prints an error and returns the failure status, the single error path
// of every subcommand.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// nextEarnings returns the next calendar events for a ticker: today's cache
// entry first, then FMP, then Yahoo. Whichever source answers is cached for
// the rest of the day.
func nextEarnings(ctx context.Context, t string) (stocklens.EarningsInfo, error) {
	cache := EarningsCache()
	var info stocklens.EarningsInfo
	if cache.GetToday(t, &info) {
		return info, nil
	}

	if f := fmp.New(); f.Enabled() {
		if info, err := f.NextEarnings(ctx, t); err == nil {
			cacheEarnings(cache, t, info)
			return info, nil
		} else {
			log.Printf("fmp has no earnings for %s, falling back to yahoo: %v", t, err)
		}
	}
	info, err := market().Calendar(ctx, t)
	if err != nil {
		return stocklens.EarningsInfo{}, err
	}
	cacheEarnings(cache, t, info)
	return info, nil
}

// cacheEarnings records fetched calendar data for the rest of the day. A
// cache write failure only costs a refetch, never the section.
func cacheEarnings(cache *stocklens.FileCache, t string, info stocklens.EarningsInfo) {
	if err := cache.Put(t, info); err != nil {
		log.Printf("cannot cache earnings for %s: %v", t, err)
	}
}
