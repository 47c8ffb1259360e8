package valuation

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadHoldingsXLSX parses a portfolio from the named sheet of an Excel
// workbook. The sheet's first row is the header; the expected columns are
// the same as ReadHoldingsCSV. An empty sheet name selects the workbook's
// first sheet.
func ReadHoldingsXLSX(r io.Reader, sheet, reportingCurrency string) ([]Holding, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	i := 1
	next := func() ([]string, error) {
		// Excel trims trailing empty cells, so blank lines show up as
		// zero-length rows; parseHoldingRows skips those.
		if i >= len(rows) {
			return nil, io.EOF
		}
		row := rows[i]
		i++
		return row, nil
	}
	return parseHoldingRows(rows[0], reportingCurrency, next)
}
