// Command ppr values a portfolio against price archives and reports on it.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/spello/valuation/cmd"
)

// completion describes the CLI for shell completion. It must be kept in sync
// with the registered subcommands.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
	},
	Sub: map[string]*complete.Command{
		"report": {Flags: map[string]complete.Predictor{
			"d":        predict.Nothing,
			"no-email": predict.Nothing,
		}},
		"show": {Flags: map[string]complete.Predictor{
			"d": predict.Nothing,
		}},
		"history": {Flags: map[string]complete.Predictor{
			"n":     predict.Nothing,
			"chart": predict.Files("*.html"),
		}},
		"update": {Flags: map[string]complete.Predictor{
			"archive":  predict.Files("*.csv"),
			"currency": predict.Nothing,
		}},
	},
}

func main() {
	// In completion mode this prints the predictions and exits.
	completion.Complete("ppr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
