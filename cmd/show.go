package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/spello/valuation/renderer"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	date string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the valuation report in the terminal" }
func (*showCmd) Usage() string {
	return `ppr show [-d <date>]

  Values the portfolio as of a date and displays the report, without writing
  any file or sending any email.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today)")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	snap, err := evaluate(cfg, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.Markdown(snap, renderer.Options{
		Name:           cfg.Portfolio.ReportName,
		Mode:           cfg.Portfolio.DisplayMode,
		MaxPriceMisses: cfg.Portfolio.MaxPriceMisses,
	})
	printMarkdown(md)
	return subcommands.ExitSuccess
}
