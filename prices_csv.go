package valuation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spello/valuation/date"
)

// This file parses price archives: CSV exports with a header row and the
// columns Symbol, Date, Price, Currency and optionally Name. Column order is
// free, matching is case-insensitive on the header.
//
// Rows that fail to parse are returned as observations that fail Validate(),
// so PriceStore.Load counts and skips them instead of aborting the archive.

// ReadPriceCSV parses one price archive from r.
func ReadPriceCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Ragged rows must reach Validate() as malformed observations, not kill
	// the whole archive.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read price archive header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"symbol", "date", "price", "currency"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("price archive has no %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var observations []Observation
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return observations, fmt.Errorf("cannot read price archive row: %w", err)
		}

		o := Observation{
			Symbol: field(row, "symbol"),
			Name:   field(row, "name"),
		}
		// Parse failures leave the zero value in place; Validate() rejects
		// the row downstream and the load counts it.
		if on, err := date.Parse(field(row, "date")); err == nil {
			o.On = on
		}
		currency := field(row, "currency")
		if price, err := decimal.NewFromString(field(row, "price")); err == nil {
			o.Price = M(price, currency)
		} else {
			o.Price = M(0, currency)
		}
		observations = append(observations, o)
	}
	return observations, nil
}

// ReadHoldingsCSV parses a portfolio export from r: a header row and the
// columns Symbol, Name, Class, Currency, Units Held and optionally
// Cost Basis. The cost basis, when present, is read in 'reportingCurrency'.
//
// Unlike price rows, holding rows are strict: a row that fails to parse
// fails the import, since a silently dropped holding would misstate the
// portfolio.
func ReadHoldingsCSV(r io.Reader, reportingCurrency string) ([]Holding, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio header: %w", err)
	}
	return parseHoldingRows(header, reportingCurrency, func() ([]string, error) { return cr.Read() })
}

// parseHoldingRows converts rows from any tabular source (CSV, XLSX) into
// holdings. next returns io.EOF after the last row.
func parseHoldingRows(header []string, reportingCurrency string, next func() ([]string, error)) ([]Holding, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"symbol", "name", "class", "currency", "units held"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("portfolio has no %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var holdings []Holding
	for line := 2; ; line++ {
		row, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read portfolio row %d: %w", line, err)
		}
		if len(row) == 0 {
			continue
		}

		h := Holding{
			Symbol:   field(row, "symbol"),
			Name:     field(row, "name"),
			Class:    field(row, "class"),
			Currency: field(row, "currency"),
		}
		units, err := strconv.ParseFloat(strings.ReplaceAll(field(row, "units held"), ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("portfolio row %d: invalid units %q for %s", line, field(row, "units held"), h.Symbol)
		}
		h.Units = Q(units)
		h.CostBasis = M(0, reportingCurrency)
		if raw := field(row, "cost basis"); raw != "" {
			cost, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("portfolio row %d: invalid cost basis %q for %s", line, raw, h.Symbol)
			}
			h.CostBasis = M(cost, reportingCurrency)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}
