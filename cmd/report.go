package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/spello/valuation"
	"github.com/spello/valuation/config"
	"github.com/spello/valuation/date"
	"github.com/spello/valuation/mail"
	"github.com/spello/valuation/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	date    string
	noEmail bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "value the portfolio and produce the full report" }
func (*reportCmd) Usage() string {
	return `ppr report [-d <date>] [-no-email]

  Values the portfolio as of a date, writes the report files, appends the
  valuation log and optionally emails the report.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today)")
	f.BoolVar(&c.noEmail, "no-email", false, "Skip email delivery even when configured")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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

	var html string
	if cfg.Portfolio.ReportType != config.ReportText {
		html, err = renderer.HTML(md, cfg.Portfolio.ReportName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if err := writeReports(cfg, snap, md, html); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	records, err := appendValuationLog(cfg, snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if cfg.Chart.Enabled {
		if err := writeChart(cfg, records, snap.CurrentOn); err != nil {
			log.Warn().Err(err).Msg("cannot render the history chart")
		}
	}

	severity := snap.Severity(cfg.Portfolio.MaxPriceMisses)
	if cfg.Email.Enabled && !c.noEmail {
		subject := fmt.Sprintf("%s %s [%s]", cfg.Portfolio.ReportName, snap.CurrentOn, severity)
		sender := mail.NewSender(mail.Settings{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		})
		if err := sender.Send(subject, md, html); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Info().Strs("to", cfg.Email.To).Str("subject", subject).Msg("report emailed")
	}

	if severity == valuation.SeverityCritical {
		fmt.Fprintf(os.Stderr, "Report is CRITICAL: %d prices missing\n", snap.MissCount)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// evaluate runs the engine for the configured portfolio as of 'on' (today
// when empty), against the configured number of days before it.
func evaluate(cfg config.Config, on string) (*valuation.Snapshot, error) {
	current := date.Today()
	if on != "" {
		var err error
		current, err = date.Parse(on)
		if err != nil {
			return nil, fmt.Errorf("invalid valuation date %q: %w", on, err)
		}
	}
	prior := current.Add(-cfg.Portfolio.PriorValuationDays)

	store, err := loadStore(cfg)
	if err != nil {
		return nil, err
	}
	holdings, err := loadHoldings(cfg, store)
	if err != nil {
		return nil, err
	}

	engine := valuation.NewEngine(store, cfg.Options())
	return engine.Evaluate(holdings, current, prior)
}

// writeReports writes the text and/or html report files into the report
// directory, named after the valuation date.
func writeReports(cfg config.Config, snap *valuation.Snapshot, md, html string) error {
	if err := os.MkdirAll(cfg.Files.ReportDir, 0755); err != nil {
		return fmt.Errorf("cannot create report directory: %w", err)
	}

	stem := filepath.Join(cfg.Files.ReportDir, fmt.Sprintf("report-%s", snap.CurrentOn))
	if cfg.Portfolio.ReportType != config.ReportHTML {
		if err := os.WriteFile(stem+".md", []byte(md), 0644); err != nil {
			return fmt.Errorf("cannot write text report: %w", err)
		}
		log.Info().Str("file", stem+".md").Msg("text report written")
	}
	if cfg.Portfolio.ReportType != config.ReportText {
		if err := os.WriteFile(stem+".html", []byte(html), 0644); err != nil {
			return fmt.Errorf("cannot write html report: %w", err)
		}
		log.Info().Str("file", stem+".html").Msg("html report written")
	}
	return nil
}

// appendValuationLog merges this run into the valuation log file and returns
// the full history, date-sorted.
func appendValuationLog(cfg config.Config, snap *valuation.Snapshot) ([]valuation.ValueRecord, error) {
	records, err := readValuationLog(cfg)
	if err != nil {
		return nil, err
	}
	records = valuation.MergeValueLog(records, snap.Record())

	f, err := os.Create(cfg.Files.ValuationLog)
	if err != nil {
		return nil, fmt.Errorf("cannot write valuation log: %w", err)
	}
	defer f.Close()
	if err := valuation.WriteValueLog(f, records); err != nil {
		return nil, fmt.Errorf("cannot write valuation log: %w", err)
	}
	return records, nil
}

// readValuationLog reads the valuation log file; a missing file is an empty
// history.
func readValuationLog(cfg config.Config) ([]valuation.ValueRecord, error) {
	f, err := os.Open(cfg.Files.ValuationLog)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open valuation log: %w", err)
	}
	defer f.Close()

	records, err := valuation.ReadValueLog(f, cfg.Portfolio.ReportingCurrency)
	if err != nil {
		return nil, fmt.Errorf("cannot parse valuation log %q: %w", cfg.Files.ValuationLog, err)
	}
	return records, nil
}

// writeChart renders the valuation history chart next to the reports.
func writeChart(cfg config.Config, records []valuation.ValueRecord, on date.Date) error {
	name := filepath.Join(cfg.Files.ReportDir, fmt.Sprintf("history-%s.html", on))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := renderer.HistoryChart(records, cfg.Chart.Title, cfg.Chart.Days, f); err != nil {
		return err
	}
	log.Info().Str("file", name).Msg("history chart written")
	return nil
}
