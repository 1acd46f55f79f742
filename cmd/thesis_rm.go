package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type thesisRmCmd struct {
	id string
}

func (*thesisRmCmd) Name() string     { return "thesis-rm" }
func (*thesisRmCmd) Synopsis() string { return "delete a saved thesis" }
func (*thesisRmCmd) Usage() string {
	return `lens thesis-rm -id ID

  Deletes the thesis whose ID starts with the given prefix.
`
}

func (c *thesisRmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Thesis ID (a unique prefix is enough)")
}

func (c *thesisRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return fail(fmt.Errorf("missing -id"))
	}
	if err := Store().Remove(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}
