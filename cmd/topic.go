package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"stocklens/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display help topics" }
func (*topicCmd) Usage() string {
	return `lens topic [NAME...]

  Displays the named help topics. Without arguments the readme is shown,
  listing every available topic. 'lens topic "*"' displays them all.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	content, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
