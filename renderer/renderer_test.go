package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/spello/valuation"
	"github.com/spello/valuation/date"
)

func sampleSnapshot() *valuation.Snapshot {
	aapl := valuation.HoldingResult{
		Holding:   valuation.Holding{Symbol: "AAPL", Name: "Apple Inc.", Class: "Equity", Currency: "USD"},
		Change:    valuation.M(150, "USD"),
		PctChange: valuation.Percent(10),
	}
	aapl.Current.Value = valuation.M(1650, "USD")
	bond := valuation.HoldingResult{
		Holding:   valuation.Holding{Symbol: "BND", Name: "Vanguard Total Bond", Class: "Bonds", Currency: "USD"},
		Change:    valuation.M(-50, "USD"),
		PctChange: valuation.Percent(-5),
	}
	bond.Current.Value = valuation.M(950, "USD")

	return &valuation.Snapshot{
		RunID:             uuid.New(),
		CurrentOn:         date.New(2025, 3, 14),
		PriorOn:           date.New(2025, 3, 7),
		ReportingCurrency: "USD",
		Holdings:          []valuation.HoldingResult{aapl, bond},
		Classes: []valuation.ClassAggregate{
			{Class: "Equity", Current: valuation.M(1650, "USD"), Prior: valuation.M(1500, "USD"), Change: valuation.M(150, "USD"), PctChange: valuation.Percent(10)},
			{Class: "Bonds", Current: valuation.M(950, "USD"), Prior: valuation.M(1000, "USD"), Change: valuation.M(-50, "USD"), PctChange: valuation.Percent(-5)},
		},
		Winners:      []valuation.HoldingResult{aapl},
		Losers:       []valuation.HoldingResult{bond},
		TotalCurrent: valuation.M(2600, "USD"),
		TotalPrior:   valuation.M(2500, "USD"),
		Change:       valuation.M(100, "USD"),
		PctChange:    valuation.Percent(4),
	}
}

func TestMarkdownReport(t *testing.T) {
	got := Markdown(sampleSnapshot(), Options{
		Name:           "Family Portfolio",
		Mode:           valuation.DisplayBoth,
		MaxPriceMisses: 2,
	})

	for _, want := range []string{
		"# Family Portfolio on 2025-03-14",
		"Status: **OK**",
		"| Total value | $2,600.00 |",
		"| Value on 2025-03-07 (7 days ago) | $2,500.00 |",
		"| Change | +$100.00 (+4.0%) |",
		"## Asset Classes",
		"| Equity | $1,650.00 | +$150.00 | +10.0% |",
		"## Top Performers",
		"| AAPL: Apple Inc. | $1,650.00 | +$150.00 | +10.0% |",
		"## Bottom Performers",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown report missing %q\n---\n%s", want, got)
		}
	}
	if strings.Contains(got, "Cost basis") {
		t.Errorf("report should omit the cost-basis block when none was supplied:\n%s", got)
	}
	if strings.Contains(got, "error") {
		t.Errorf("template error leaked into report:\n%s", got)
	}
}

func TestMarkdownReportCostBasis(t *testing.T) {
	s := sampleSnapshot()
	s.CostBasis = valuation.M(2000, "USD")
	s.Return = valuation.M(600, "USD")
	s.ReturnPct = valuation.Percent(30)

	got := Markdown(s, Options{Name: "Family Portfolio", Mode: valuation.DisplaySymbol})
	if !strings.Contains(got, "| Cost basis | $2,000.00 |") {
		t.Errorf("missing cost basis row:\n%s", got)
	}
	if !strings.Contains(got, "| Return | +$600.00 (+30.0%) |") {
		t.Errorf("missing return row:\n%s", got)
	}
}

func TestMarkdownReportSeverity(t *testing.T) {
	s := sampleSnapshot()
	s.MissCount = 3
	s.StaleCount = 1

	got := Markdown(s, Options{Name: "P", Mode: valuation.DisplaySymbol, MaxPriceMisses: 2})
	if !strings.Contains(got, "Status: **CRITICAL** (3 missing prices), 1 stale") {
		t.Errorf("missing severity banner:\n%s", got)
	}
}

func TestReportLabelsFollowDisplayMode(t *testing.T) {
	s := sampleSnapshot()

	got := Markdown(s, Options{Name: "P", Mode: valuation.DisplayName})
	if !strings.Contains(got, "| Apple Inc. |") {
		t.Errorf("name mode should label by name:\n%s", got)
	}
	if strings.Contains(got, "AAPL:") {
		t.Errorf("name mode should not include the symbol:\n%s", got)
	}
}

func TestHTMLReport(t *testing.T) {
	md := Markdown(sampleSnapshot(), Options{Name: "Family Portfolio", Mode: valuation.DisplaySymbol})
	got, err := HTML(md, "Family Portfolio")
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Family Portfolio</title>",
		"<table>",
		"$2,600.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("html report missing %q", want)
		}
	}
}

func TestHistoryChart(t *testing.T) {
	records := []valuation.ValueRecord{
		{On: date.New(2025, 3, 7), Total: valuation.M(2500, "USD"), Classes: map[string]valuation.Money{"Equity": valuation.M(1500, "USD")}},
		{On: date.New(2025, 3, 14), Total: valuation.M(2600, "USD"), Classes: map[string]valuation.Money{"Equity": valuation.M(1650, "USD")}},
	}

	var buf bytes.Buffer
	if err := HistoryChart(records, "Portfolio Value", 365, &buf); err != nil {
		t.Fatalf("HistoryChart() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Portfolio Value") {
		t.Errorf("chart missing title")
	}
	if !strings.Contains(out, "2025-03-14") {
		t.Errorf("chart missing date axis label")
	}
}

func TestHistoryChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := HistoryChart(nil, "Portfolio Value", 0, &buf); err == nil {
		t.Fatal("expected an error for an empty history")
	}
}

func TestHistoryChartWindow(t *testing.T) {
	records := []valuation.ValueRecord{
		{On: date.New(2024, 1, 1), Total: valuation.M(1000, "USD")},
		{On: date.New(2025, 3, 14), Total: valuation.M(2600, "USD")},
	}

	var buf bytes.Buffer
	if err := HistoryChart(records, "Portfolio Value", 30, &buf); err != nil {
		t.Fatalf("HistoryChart() error: %v", err)
	}
	if strings.Contains(buf.String(), "2024-01-01") {
		t.Errorf("records outside the window should be dropped")
	}
}
