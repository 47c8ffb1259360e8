package renderer

import (
	"github.com/spello/valuation"
	"github.com/spello/valuation/date"
)

// Report is a struct to represent a valuation report in json.
// Numbers are handled using the exact value types (Money, Percent, etc.)
// so that they already carry their renderers (SignedString etc.).
type Report struct {

	// Name of the report, from configuration.
	Name string `json:"name,omitempty"`
	// RunID identifies the engine run that produced the snapshot.
	RunID string `json:"runId"`
	// CurrentOn is the valuation date.
	CurrentOn date.Date `json:"currentOn"`
	// PriorOn is the comparison date.
	PriorOn date.Date `json:"priorOn"`
	// Days between the two valuation dates.
	Days int `json:"days"`

	TotalCurrent valuation.Money   `json:"totalCurrent"`
	TotalPrior   valuation.Money   `json:"totalPrior"`
	Change       valuation.Money   `json:"change"`
	PctChange    valuation.Percent `json:"pctChange"`

	// HasCostBasis gates the cost-basis block of the report.
	HasCostBasis bool              `json:"hasCostBasis"`
	CostBasis    valuation.Money   `json:"costBasis,omitempty"`
	Return       valuation.Money   `json:"return,omitempty"`
	ReturnPct    valuation.Percent `json:"returnPct,omitempty"`

	// Severity is the miss classification banner (OK, WARNING, CRITICAL).
	Severity   string `json:"severity"`
	MissCount  int    `json:"missCount"`
	StaleCount int    `json:"staleCount"`

	// Classes are already ordered by descending absolute value change.
	Classes []ReportClass `json:"classes"`
	Winners []ReportRank  `json:"winners"`
	Losers  []ReportRank  `json:"losers"`
}

// ReportClass represents one asset-class row.
type ReportClass struct {
	Name      string            `json:"name"`
	Current   valuation.Money   `json:"current"`
	Change    valuation.Money   `json:"change"`
	PctChange valuation.Percent `json:"pctChange"`
}

// ReportRank represents one row of the winners or losers table.
type ReportRank struct {
	Label     string            `json:"label"`
	Value     valuation.Money   `json:"value"`
	Change    valuation.Money   `json:"change"`
	PctChange valuation.Percent `json:"pctChange"`
	Miss      bool              `json:"miss,omitempty"`
	Stale     bool              `json:"stale,omitempty"`
}

// NewReport creates a Report from an engine snapshot. It populates the struct
// with all the data the report templates need.
func NewReport(s *valuation.Snapshot, opts Options) *Report {
	r := &Report{
		Name:         opts.Name,
		RunID:        s.RunID.String(),
		CurrentOn:    s.CurrentOn,
		PriorOn:      s.PriorOn,
		Days:         s.Days(),
		TotalCurrent: s.TotalCurrent,
		TotalPrior:   s.TotalPrior,
		Change:       s.Change,
		PctChange:    s.PctChange,
		HasCostBasis: s.HasCostBasis(),
		CostBasis:    s.CostBasis,
		Return:       s.Return,
		ReturnPct:    s.ReturnPct,
		Severity:     s.Severity(opts.MaxPriceMisses).String(),
		MissCount:    s.MissCount,
		StaleCount:   s.StaleCount,
		Classes:      make([]ReportClass, 0, len(s.Classes)),
		Winners:      make([]ReportRank, 0, len(s.Winners)),
		Losers:       make([]ReportRank, 0, len(s.Losers)),
	}

	for _, c := range s.Classes {
		r.Classes = append(r.Classes, ReportClass{
			Name:      c.Class,
			Current:   c.Current,
			Change:    c.Change,
			PctChange: c.PctChange,
		})
	}

	for _, hr := range s.Winners {
		r.Winners = append(r.Winners, newRank(hr, opts.Mode))
	}
	for _, hr := range s.Losers {
		r.Losers = append(r.Losers, newRank(hr, opts.Mode))
	}

	return r
}

func newRank(hr valuation.HoldingResult, mode valuation.DisplayMode) ReportRank {
	return ReportRank{
		Label:     hr.Label(mode),
		Value:     hr.Current.Value,
		Change:    hr.Change,
		PctChange: hr.PctChange,
		Miss:      hr.Current.Miss || hr.Prior.Miss,
		Stale:     hr.Current.Stale || hr.Prior.Stale,
	}
}
