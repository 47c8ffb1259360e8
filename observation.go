package valuation

import (
	"fmt"

	"github.com/spello/valuation/date"
)

// Observation is a single price point for a symbol: the price of one unit on
// a given date, in the currency the symbol trades in.
//
// FX rates are observations too, under pair-coded symbols (see PairSymbol).
type Observation struct {
	Symbol string
	On     date.Date
	Price  Money
	Name   string // display name for the symbol, may be empty
}

// Validate reports whether the observation is usable.
// The returned error wraps ErrMalformedObservation.
func (o Observation) Validate() error {
	if o.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrMalformedObservation)
	}
	if o.On.IsZero() {
		return fmt.Errorf("%w: %s has no date", ErrMalformedObservation, o.Symbol)
	}
	if !o.Price.IsPositive() {
		return fmt.Errorf("%w: %s on %s has non-positive price %s", ErrMalformedObservation, o.Symbol, o.On, o.Price)
	}
	return nil
}
