package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"stocklens/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	known := map[string]bool{}
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		known[c.Name()] = true
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	cmd.SetupLogging()

	// Unknown subcommands fall through to lens-<name> extensions on PATH.
	if sub := flag.Arg(0); sub != "" && !known[sub] && sub != "help" && sub != "flags" && sub != "commands" {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// completion registers shell completion for the lens binary. It only takes
// effect when invoked by the shell completion hook and is a no-op otherwise.
func completion() {
	sub := map[string]*complete.Command{}
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{
			Flags: map[string]complete.Predictor{
				"t": predict.Something,
			},
		}
	}
	lens := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"theses-file": predict.Files("*.json"),
			"cache-dir":   predict.Dirs("*"),
			"v":           predict.Nothing,
		},
	}
	lens.Complete("lens")
}
