package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/spello/valuation"
	"github.com/spello/valuation/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	chart string
	last  int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the valuation history" }
func (*historyCmd) Usage() string {
	return `ppr history [-n <rows>] [-chart <file>]

  Displays the valuation log, newest last, and optionally renders it as an
  HTML chart.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "n", 0, "Only display the last n rows (0 for all)")
	f.StringVar(&c.chart, "chart", "", "Also render the history chart to this HTML file")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	records, err := readValuationLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(records) == 0 {
		fmt.Println("No valuation history yet. Run 'ppr report' first.")
		return subcommands.ExitSuccess
	}
	if c.last > 0 && len(records) > c.last {
		records = records[len(records)-c.last:]
	}

	printMarkdown(historyMarkdown(records))

	if c.chart != "" {
		f, err := os.Create(c.chart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		if err := renderer.HistoryChart(records, cfg.Chart.Title, cfg.Chart.Days, f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// historyMarkdown renders the valuation log as a markdown table.
func historyMarkdown(records []valuation.ValueRecord) string {
	var b strings.Builder
	b.WriteString("# Valuation History\n\n")
	b.WriteString("| Date | Total | Cost Basis |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, rec := range records {
		basis := "-"
		if !rec.CostBasis.IsZero() {
			basis = rec.CostBasis.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", rec.On, rec.Total, basis)
	}
	return b.String()
}
