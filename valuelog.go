package valuation

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spello/valuation/date"
)

// The valuation log is an append-only flat history of runs: one row per run
// with the date, the portfolio total, the cost basis, and one column per
// asset class. Re-running on the same date replaces that date's row, so the
// log holds at most one row per calendar date, sorted ascending.

// ValueRecord is one row of the valuation log.
type ValueRecord struct {
	On        date.Date
	Total     Money
	CostBasis Money
	Classes   map[string]Money
}

// Record reduces the snapshot to its valuation log row.
func (s *Snapshot) Record() ValueRecord {
	rec := ValueRecord{
		On:        s.CurrentOn,
		Total:     s.TotalCurrent,
		CostBasis: s.CostBasis,
		Classes:   make(map[string]Money, len(s.Classes)),
	}
	for _, c := range s.Classes {
		rec.Classes[c.Class] = c.Current
	}
	return rec
}

// ReadValueLog parses an existing valuation log. Amounts are read in
// 'currency', the reporting currency the log was written in. Rows with an
// unparsable date are dropped, they carry no usable history.
func ReadValueLog(r io.Reader, currency string) ([]ValueRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read valuation log header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(header[0], "Date") {
		return nil, fmt.Errorf("not a valuation log, header starts with %q", header[0])
	}

	amount := func(raw string) Money {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return M(0, currency)
		}
		return M(v, currency)
	}

	var records []ValueRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("cannot read valuation log row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		on, err := date.Parse(row[0])
		if err != nil {
			continue
		}
		rec := ValueRecord{On: on, Total: amount(row[1]), CostBasis: M(0, currency), Classes: make(map[string]Money)}
		if len(row) > 2 {
			rec.CostBasis = amount(row[2])
		}
		for i := 3; i < len(row) && i < len(header); i++ {
			rec.Classes[header[i]] = amount(row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

// MergeValueLog inserts rec into records, replacing any row with the same
// date, and returns the records sorted ascending by date.
func MergeValueLog(records []ValueRecord, rec ValueRecord) []ValueRecord {
	out := make([]ValueRecord, 0, len(records)+1)
	for _, r := range records {
		if r.On != rec.On {
			out = append(out, r)
		}
	}
	out = append(out, rec)
	sort.Slice(out, func(i, j int) bool { return out[i].On.Before(out[j].On) })
	return out
}

// WriteValueLog writes the full log to w. The class columns are the union of
// every record's classes, sorted by name, so old rows keep their totals when
// a new class appears.
func WriteValueLog(w io.Writer, records []ValueRecord) error {
	classSet := make(map[string]struct{})
	for _, r := range records {
		for class := range r.Classes {
			classSet[class] = struct{}{}
		}
	}
	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	cw := csv.NewWriter(w)
	header := append([]string{"Date", "Valuation", "CostBasis"}, classes...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write valuation log header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.On.String(),
			strconv.FormatFloat(r.Total.AsFloat(), 'f', 2, 64),
			strconv.FormatFloat(r.CostBasis.AsFloat(), 'f', 2, 64),
		}
		for _, class := range classes {
			row = append(row, strconv.FormatFloat(r.Classes[class].AsFloat(), 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write valuation log row for %s: %w", r.On, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
