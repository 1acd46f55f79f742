package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"stocklens/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the research assistant" }
func (*assistCmd) Usage() string {
	return `lens assist [QUESTION...]

  Starts an interactive session with the research assistant. A researcher
  expert searches the web for context and a curator expert consults your
  saved theses. With arguments, they are sent as the opening question.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}
	a := agent.New(os.Stdout, os.Stdin,
		agent.NewResearcher(),
		agent.NewCurator(Store()),
	)
	var prompts []string
	if q := strings.TrimSpace(strings.Join(f.Args(), " ")); q != "" {
		prompts = append(prompts, q)
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
