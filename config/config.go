// Package config loads and validates the YAML configuration driving a
// valuation run. Every recognized option is an explicit field with a typed
// value; enumerated options are validated once here, at startup, so the rest
// of the program never dispatches on raw strings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spello/valuation"
)

// ReportType selects the report formats produced by a run.
type ReportType string

const (
	ReportText ReportType = "text"
	ReportHTML ReportType = "html"
	ReportBoth ReportType = "both"
)

// PriceArchive names one price data file and how old it may get before the
// run warns about it. MaxAgeDays 0 disables the check.
type PriceArchive struct {
	Path       string `yaml:"path"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// PortfolioImport names one holdings file. Sheet selects a worksheet for
// .xlsx files and is ignored for .csv.
type PortfolioImport struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
}

// Portfolio holds the valuation policy options.
type Portfolio struct {
	ReportName         string                `yaml:"report_name"`
	ReportType         ReportType            `yaml:"report_type"`
	ReportingCurrency  string                `yaml:"reporting_currency"`
	PivotCurrency      string                `yaml:"pivot_currency"`
	DisplayMode        valuation.DisplayMode `yaml:"holdings_display_mode"`
	PriorValuationDays int                   `yaml:"prior_valuation_days"`
	WinnersAndLosers   int                   `yaml:"winners_and_losers"`
	MaxPriceMisses     int                   `yaml:"max_price_misses"`
	MinUnitsHeld       float64               `yaml:"min_units_held"`
	MaxPriceAgeDays    int                   `yaml:"max_price_age_days"`
}

// Files holds every file path the run touches.
type Files struct {
	PriceArchives    []PriceArchive    `yaml:"price_archives"`
	PortfolioImports []PortfolioImport `yaml:"portfolio_imports"`
	ValuationLog     string            `yaml:"valuation_log"`
	ReportDir        string            `yaml:"report_dir"`
	LogFile          string            `yaml:"log_file"`
	Verbosity        string            `yaml:"verbosity"`
}

// Email holds the SMTP transport settings. Email is skipped entirely when
// Enabled is false.
type Email struct {
	Enabled  bool     `yaml:"enabled"`
	To       []string `yaml:"to"`
	From     string   `yaml:"from"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
}

// Chart holds the valuation history chart settings.
type Chart struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
	Days    int    `yaml:"days"`
}

// Config is the full configuration for one run.
type Config struct {
	Portfolio Portfolio `yaml:"portfolio"`
	Files     Files     `yaml:"files"`
	Email     Email     `yaml:"email"`
	Chart     Chart     `yaml:"chart"`
}

// Default returns the configuration used when the file omits options.
func Default() Config {
	return Config{
		Portfolio: Portfolio{
			ReportName:         "Portfolio Performance Report",
			ReportType:         ReportHTML,
			ReportingCurrency:  "AUD",
			PivotCurrency:      "USD",
			DisplayMode:        valuation.DisplaySymbol,
			PriorValuationDays: 7,
			WinnersAndLosers:   5,
			MaxPriceMisses:     2,
			MinUnitsHeld:       0.01,
		},
		Files: Files{
			ValuationLog: "portfolio_valuation.csv",
			ReportDir:    "reports",
			Verbosity:    "summary",
		},
		Chart: Chart{
			Title: "Portfolio Valuation (last 12 months)",
			Days:  365,
		},
	}
}

// Load reads and validates a configuration file. Options absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated and bounded option.
func (c Config) Validate() error {
	switch c.Portfolio.ReportType {
	case ReportText, ReportHTML, ReportBoth:
	default:
		return fmt.Errorf("report_type %q, want text, html or both", c.Portfolio.ReportType)
	}
	switch c.Portfolio.DisplayMode {
	case valuation.DisplaySymbol, valuation.DisplayName, valuation.DisplayBoth:
	default:
		return fmt.Errorf("holdings_display_mode %q, want symbol, name or both", c.Portfolio.DisplayMode)
	}
	switch c.Files.Verbosity {
	case "debug", "detailed", "summary":
	default:
		return fmt.Errorf("verbosity %q, want debug, detailed or summary", c.Files.Verbosity)
	}
	if c.Portfolio.ReportingCurrency == "" {
		return fmt.Errorf("reporting_currency is required")
	}
	if c.Portfolio.PriorValuationDays <= 0 {
		return fmt.Errorf("prior_valuation_days must be positive, got %d", c.Portfolio.PriorValuationDays)
	}
	if c.Portfolio.WinnersAndLosers < 0 {
		return fmt.Errorf("winners_and_losers must not be negative, got %d", c.Portfolio.WinnersAndLosers)
	}
	if c.Portfolio.MaxPriceMisses < 0 {
		return fmt.Errorf("max_price_misses must not be negative, got %d", c.Portfolio.MaxPriceMisses)
	}
	if c.Portfolio.MinUnitsHeld < 0 {
		return fmt.Errorf("min_units_held must not be negative, got %v", c.Portfolio.MinUnitsHeld)
	}
	if len(c.Files.PriceArchives) == 0 {
		return fmt.Errorf("at least one price archive is required")
	}
	if len(c.Files.PortfolioImports) == 0 {
		return fmt.Errorf("at least one portfolio import is required")
	}
	if c.Email.Enabled {
		if c.Email.Host == "" || len(c.Email.To) == 0 || c.Email.From == "" {
			return fmt.Errorf("email is enabled but host, from or to is missing")
		}
	}
	return nil
}

// Options maps the portfolio section onto the engine's options.
func (c Config) Options() valuation.Options {
	return valuation.Options{
		ReportingCurrency: c.Portfolio.ReportingCurrency,
		PivotCurrency:     c.Portfolio.PivotCurrency,
		MinUnits:          valuation.Q(c.Portfolio.MinUnitsHeld),
		RankSize:          c.Portfolio.WinnersAndLosers,
		MaxPriceAgeDays:   c.Portfolio.MaxPriceAgeDays,
	}
}
