package valuation

import "fmt"

// CashSymbol is the reserved symbol for cash holdings. Cash is always valued
// at 1.0 in its stated currency, without touching the price store.
const CashSymbol = "CASH"

// Holding is one line of the portfolio: a number of units of a symbol, held
// in a currency, tagged with a free-form asset class.
//
// Holdings are supplied by the portfolio loader and treated as read-only
// input by the engine.
type Holding struct {
	Symbol   string
	Name     string
	Class    string
	Currency string
	Units    Quantity
	// CostBasis is optional and always expressed in the reporting currency.
	// A zero cost basis means "not supplied": the holding is then excluded
	// from the cost-basis return but still counted in value totals.
	CostBasis Money
}

// IsCash reports whether the holding is a cash position.
func (h Holding) IsCash() bool { return h.Symbol == CashSymbol }

// HasCostBasis reports whether a cost basis was supplied.
func (h Holding) HasCostBasis() bool { return !h.CostBasis.IsZero() }

// Validate checks the required fields. All holdings are validated, including
// those below the minimum-units threshold that later drop out of the output.
func (h Holding) Validate() error {
	if h.Symbol == "" {
		return fmt.Errorf("holding has no symbol")
	}
	if h.Class == "" {
		return fmt.Errorf("holding %s has no asset class", h.Symbol)
	}
	if h.Currency == "" {
		return fmt.Errorf("holding %s has no currency", h.Symbol)
	}
	if h.Units.IsNegative() {
		return fmt.Errorf("holding %s has negative units %s", h.Symbol, h.Units)
	}
	return nil
}

// DisplayMode selects how a holding is labeled in reports.
type DisplayMode string

const (
	DisplaySymbol DisplayMode = "symbol" // ticker only
	DisplayName   DisplayMode = "name"   // full name only
	DisplayBoth   DisplayMode = "both"   // "SYM: Name"
)

// maxLabelLength bounds labels so report tables stay readable.
const maxLabelLength = 28

// Label returns the holding's display label for the given mode, truncated
// with an ellipsis when too long.
func (h Holding) Label(mode DisplayMode) string {
	var label string
	switch mode {
	case DisplaySymbol:
		return h.Symbol
	case DisplayName:
		label = h.Name
	default:
		label = h.Symbol + ": " + h.Name
	}
	if len(label) > maxLabelLength {
		label = label[:maxLabelLength] + "..."
	}
	return label
}
