package valuation

import (
	"github.com/google/uuid"

	"github.com/spello/valuation/date"
)

// ValuationPoint is the result of pricing one holding at one target date.
// It exists only inside a snapshot; nothing is persisted.
type ValuationPoint struct {
	On      date.Date
	Price   Money     // resolved unit price, in the holding's currency
	PriceOn date.Date // date the price was observed on
	FXRate  Quantity  // conversion into the reporting currency
	FXOn    date.Date // date the rate was observed on
	Value   Money     // units x price x rate, in the reporting currency
	Miss    bool      // no price or FX rate resolvable; Value is zero
	Stale   bool      // resolved from an observation older than the freshness window
}

// HoldingResult pairs a holding with its valuation at both target dates.
type HoldingResult struct {
	Holding
	Current   ValuationPoint
	Prior     ValuationPoint
	Change    Money
	PctChange Percent
}

// ClassAggregate sums the holdings of one asset class at both target dates.
type ClassAggregate struct {
	Class     string
	Current   Money
	Prior     Money
	Change    Money
	PctChange Percent
}

// Snapshot is the engine's output: the portfolio valued as of two dates,
// aggregated and ranked. It is immutable once produced.
type Snapshot struct {
	RunID             uuid.UUID
	CurrentOn         date.Date
	PriorOn           date.Date
	ReportingCurrency string

	// Holdings are the valued holdings, sorted by symbol.
	Holdings []HoldingResult
	// Classes are ordered by descending absolute value change, so the
	// largest mover leads the report.
	Classes []ClassAggregate
	// Winners and Losers are ranked by percentage change, descending and
	// ascending respectively, with ties broken by symbol.
	Winners []HoldingResult
	Losers  []HoldingResult

	TotalCurrent Money
	TotalPrior   Money
	Change       Money
	PctChange    Percent

	// CostBasis sums the cost bases supplied with the holdings; Return and
	// ReturnPct compare the current total against it. All three are zero
	// when no holding supplied a cost basis.
	CostBasis Money
	Return    Money
	ReturnPct Percent

	MissCount  int
	StaleCount int
}

// Days returns the number of days between the two valuation dates.
func (s *Snapshot) Days() int { return s.CurrentOn.Sub(s.PriorOn) }

// HasCostBasis reports whether any holding supplied a cost basis.
func (s *Snapshot) HasCostBasis() bool { return !s.CostBasis.IsZero() }

// Severity classifies the snapshot's miss count against the configured
// maximum. The decision to escalate a critical run belongs to the caller.
func (s *Snapshot) Severity(maxPriceMisses int) Severity {
	return Classify(s.MissCount, maxPriceMisses)
}
