package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"stocklens"
	"stocklens/renderer"
)

type thesisRefineCmd struct {
	id       string
	feedback string
}

func (*thesisRefineCmd) Name() string     { return "thesis-refine" }
func (*thesisRefineCmd) Synopsis() string { return "rework a saved thesis with the AI" }
func (*thesisRefineCmd) Usage() string {
	return `lens thesis-refine -id ID -feedback "TEXT"

  Rewrites a saved thesis taking the feedback into account. The thesis
  keeps its identity; statement, falsification condition, horizon and
  confidence may change.
`
}

func (c *thesisRefineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Thesis ID (a unique prefix is enough)")
	f.StringVar(&c.feedback, "feedback", "", "What to change")
}

func (c *thesisRefineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return fail(fmt.Errorf("missing -id"))
	}
	if strings.TrimSpace(c.feedback) == "" {
		return fail(fmt.Errorf("missing -feedback"))
	}
	thesis, err := findThesis(c.id)
	if err != nil {
		return fail(err)
	}
	a, err := analyst(ctx)
	if err != nil {
		return fail(err)
	}
	refined, err := a.RefineThesis(ctx, thesis, c.feedback)
	if err != nil {
		return fail(err)
	}
	if err := Store().Save(refined); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ThesesMarkdown([]stocklens.Thesis{refined}))
	return subcommands.ExitSuccess
}

// findThesis resolves an ID prefix against the saved theses.
func findThesis(id string) (stocklens.Thesis, error) {
	theses, err := Store().Load()
	if err != nil {
		return stocklens.Thesis{}, err
	}
	var found []stocklens.Thesis
	for _, t := range theses {
		if strings.HasPrefix(t.ID, id) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return stocklens.Thesis{}, fmt.Errorf("no thesis matches %q", id)
	case 1:
		return found[0], nil
	default:
		return stocklens.Thesis{}, fmt.Errorf("%q matches %d theses, give more characters", id, len(found))
	}
}
