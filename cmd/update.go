package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/spello/valuation"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	archive  string
	currency string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch current quotes into a price archive" }
func (*updateCmd) Usage() string {
	return `ppr update [-archive <file>] [-currency <code>] SYMBOL...

  Fetches the current quote for each symbol and appends it to a price
  archive. FX symbols use the pair coding of the archives (EURUSD=X, AUD=X).
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.archive, "archive", "", "Price archive to append to (defaults to the first configured one)")
	f.StringVar(&c.currency, "currency", "", "Currency the quotes are denominated in (defaults to the reporting currency)")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}

	archive := c.archive
	if archive == "" {
		if len(cfg.Files.PriceArchives) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no price archive configured and none given")
			return subcommands.ExitUsageError
		}
		archive = cfg.Files.PriceArchives[0].Path
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Portfolio.ReportingCurrency
	}

	client := &http.Client{Timeout: 30 * time.Second}
	var observations []valuation.Observation
	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		o, err := valuation.FetchQuote(client, valuation.DefaultQuoteSource, symbol, currency)
		if err != nil {
			log.Error().Str("symbol", symbol).Err(err).Msg("cannot fetch quote")
			status = subcommands.ExitFailure
			continue
		}
		log.Info().Str("symbol", symbol).Stringer("price", o.Price).Msg("quote fetched")
		observations = append(observations, o)
	}

	if len(observations) > 0 {
		if err := appendObservations(archive, observations); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Appended %d quote(s) to %s\n", len(observations), archive)
	}
	return status
}

// appendObservations appends price rows to an archive CSV, writing the
// header first when the file is new or empty.
func appendObservations(filename string, observations []valuation.Observation) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("cannot open price archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat price archive: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write([]string{"Symbol", "Date", "Price", "Currency", "Name"}); err != nil {
			return fmt.Errorf("cannot write price archive header: %w", err)
		}
	}
	for _, o := range observations {
		row := []string{
			o.Symbol,
			o.On.String(),
			strconv.FormatFloat(o.Price.AsFloat(), 'f', -1, 64),
			o.Price.Currency(),
			o.Name,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("cannot write price archive row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
