// Package cmd implements the CLI application to value a portfolio and
// produce its reports.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spello/valuation"
	"github.com/spello/valuation/config"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&showCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&updateCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "config.yaml", "Path to the configuration file")

// loadConfig reads the app configuration and initializes logging from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	setupLogging(cfg)
	return cfg, nil
}

// setupLogging maps the configured verbosity onto zerolog levels and
// optionally tees the log into a file.
func setupLogging(cfg config.Config) {
	var level zerolog.Level
	switch cfg.Files.Verbosity {
	case "debug":
		level = zerolog.DebugLevel
	case "detailed":
		level = zerolog.InfoLevel
	default: // summary
		level = zerolog.WarnLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.Files.LogFile != "" {
		f, err := os.OpenFile(cfg.Files.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %q: %v\n", cfg.Files.LogFile, err)
		} else {
			w = zerolog.MultiLevelWriter(w, f)
		}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// loadStore reads every configured price archive into one price store.
// Malformed rows and stale archives are warnings, not errors: the engine
// reports the consequences as misses.
func loadStore(cfg config.Config) (*valuation.PriceStore, error) {
	store := valuation.NewPriceStore()
	for _, archive := range cfg.Files.PriceArchives {
		f, err := os.Open(archive.Path)
		if err != nil {
			return nil, fmt.Errorf("cannot open price archive: %w", err)
		}
		observations, err := valuation.ReadPriceCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot parse price archive %q: %w", archive.Path, err)
		}
		store.Load(archive.Path, observations)

		if archive.MaxAgeDays > 0 {
			age, ok := store.MaxObservationAge(archive.Path)
			if !ok {
				log.Warn().Str("archive", archive.Path).Msg("archive has no usable observations")
			} else if age > archive.MaxAgeDays {
				log.Warn().Str("archive", archive.Path).Int("age_days", age).
					Int("max_age_days", archive.MaxAgeDays).Msg("archive is out of date")
			}
		}
	}
	return store, nil
}

// loadHoldings reads every configured portfolio import and merges them into
// one list. Holdings without a name borrow it from the price store.
func loadHoldings(cfg config.Config, store *valuation.PriceStore) ([]valuation.Holding, error) {
	var holdings []valuation.Holding
	for _, imp := range cfg.Files.PortfolioImports {
		f, err := os.Open(imp.Path)
		if err != nil {
			return nil, fmt.Errorf("cannot open portfolio: %w", err)
		}

		var batch []valuation.Holding
		if strings.EqualFold(filepath.Ext(imp.Path), ".xlsx") {
			batch, err = valuation.ReadHoldingsXLSX(f, imp.Sheet, cfg.Portfolio.ReportingCurrency)
		} else {
			batch, err = valuation.ReadHoldingsCSV(f, cfg.Portfolio.ReportingCurrency)
		}
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot parse portfolio %q: %w", imp.Path, err)
		}
		holdings = append(holdings, batch...)
	}

	for i, h := range holdings {
		if h.Name == "" {
			holdings[i].Name = store.SymbolName(h.Symbol)
		}
	}
	return holdings, nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
