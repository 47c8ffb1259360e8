package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spello/valuation"
	"github.com/spello/valuation/config"
	"github.com/spello/valuation/date"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStoreAndHoldings(t *testing.T) {
	dir := t.TempDir()
	archive := writeFile(t, dir, "prices.csv",
		"Symbol,Date,Price,Currency,Name\n"+
			"MSFT,2025-03-14,420.50,USD,Microsoft Corp.\n")
	portfolio := writeFile(t, dir, "portfolio.csv",
		"Symbol,Name,Class,Currency,Units Held\n"+
			"MSFT,,Equity,USD,10\n")

	cfg := config.Default()
	cfg.Files.PriceArchives = []config.PriceArchive{{Path: archive}}
	cfg.Files.PortfolioImports = []config.PortfolioImport{{Path: portfolio}}
	cfg.Portfolio.ReportingCurrency = "USD"

	store, err := loadStore(cfg)
	if err != nil {
		t.Fatalf("loadStore() error: %v", err)
	}
	if !store.Has("MSFT") {
		t.Fatal("store should hold MSFT")
	}

	holdings, err := loadHoldings(cfg, store)
	if err != nil {
		t.Fatalf("loadHoldings() error: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	// The empty name falls back to the archive's security name.
	if holdings[0].Name != "Microsoft Corp." {
		t.Errorf("got name %q, want the archive name", holdings[0].Name)
	}
}

func TestLoadStoreMissingArchive(t *testing.T) {
	cfg := config.Default()
	cfg.Files.PriceArchives = []config.PriceArchive{{Path: filepath.Join(t.TempDir(), "absent.csv")}}
	if _, err := loadStore(cfg); err == nil {
		t.Fatal("expected an error for a missing archive")
	}
}

func TestAppendObservations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	obs := []valuation.Observation{{
		Symbol: "AUD=X",
		On:     date.New(2025, 3, 14),
		Price:  valuation.M(1.58, "AUD"),
	}}

	if err := appendObservations(path, obs); err != nil {
		t.Fatalf("appendObservations() error: %v", err)
	}
	// Appending again must not repeat the header.
	if err := appendObservations(path, obs); err != nil {
		t.Fatalf("appendObservations() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	if strings.Count(content, "Symbol,Date,Price,Currency,Name") != 1 {
		t.Errorf("header should be written exactly once:\n%s", content)
	}
	if strings.Count(content, "AUD=X,2025-03-14,1.58,AUD,") != 2 {
		t.Errorf("both rows should be present:\n%s", content)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	records := []valuation.ValueRecord{
		{On: date.New(2025, 3, 7), Total: valuation.M(2500, "USD")},
		{On: date.New(2025, 3, 14), Total: valuation.M(2600, "USD"), CostBasis: valuation.M(2000, "USD")},
	}

	got := historyMarkdown(records)
	if !strings.Contains(got, "| 2025-03-07 | $2,500.00 | - |") {
		t.Errorf("missing row without cost basis:\n%s", got)
	}
	if !strings.Contains(got, "| 2025-03-14 | $2,600.00 | $2,000.00 |") {
		t.Errorf("missing row with cost basis:\n%s", got)
	}
}

func TestEvaluateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	archive := writeFile(t, dir, "prices.csv",
		"Symbol,Date,Price,Currency\n"+
			"MSFT,2025-03-07,400,USD\n"+
			"MSFT,2025-03-14,440,USD\n")
	portfolio := writeFile(t, dir, "portfolio.csv",
		"Symbol,Name,Class,Currency,Units Held\n"+
			"MSFT,Microsoft,Equity,USD,10\n")

	cfg := config.Default()
	cfg.Files.PriceArchives = []config.PriceArchive{{Path: archive}}
	cfg.Files.PortfolioImports = []config.PortfolioImport{{Path: portfolio}}
	cfg.Portfolio.ReportingCurrency = "USD"

	snap, err := evaluate(cfg, "2025-03-14")
	if err != nil {
		t.Fatalf("evaluate() error: %v", err)
	}
	if want := valuation.M(4400, "USD"); !snap.TotalCurrent.Equal(want) {
		t.Errorf("got total %s, want %s", snap.TotalCurrent, want)
	}
	if snap.PriorOn != date.New(2025, 3, 7) {
		t.Errorf("got prior date %s, want 2025-03-07", snap.PriorOn)
	}
}
