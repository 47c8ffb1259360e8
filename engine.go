package valuation

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spello/valuation/date"
)

// Options configure one valuation run.
type Options struct {
	// ReportingCurrency is the single currency every value is expressed in.
	ReportingCurrency string
	// PivotCurrency triangulates FX pairs with no direct or inverse symbol.
	PivotCurrency string
	// MinUnits excludes dust positions from the output. Holdings below it
	// are still validated.
	MinUnits Quantity
	// RankSize is the length of the winners and losers lists. Fewer
	// eligible holdings simply yield shorter lists.
	RankSize int
	// MaxPriceAgeDays flags a valuation point as stale when its price or FX
	// observation is older than this many days relative to the target date.
	// Zero disables staleness flagging.
	MaxPriceAgeDays int
}

// Engine values a portfolio against a loaded price store as of two dates.
//
// One engine serves one run: it is single threaded, owns a run-scoped
// currency resolver and miss tracker, and is discarded afterwards.
type Engine struct {
	store  *PriceStore
	fx     *CurrencyResolver
	misses *MissTracker
	opts   Options
}

// NewEngine returns an engine for one valuation run.
func NewEngine(store *PriceStore, opts Options) *Engine {
	if opts.PivotCurrency == "" {
		opts.PivotCurrency = "USD"
	}
	return &Engine{
		store:  store,
		fx:     NewCurrencyResolver(store, opts.PivotCurrency),
		misses: NewMissTracker(),
		opts:   opts,
	}
}

// Evaluate prices every holding as of 'current' and 'prior' and returns the
// aggregated, ranked snapshot.
//
// Individual price or FX misses degrade gracefully: the holding is excluded
// from that date's totals, the miss is counted, and processing continues.
// Only unusable input is fatal: an invalid holding, zero eligible holdings,
// or an empty price store return an error and no snapshot.
func (e *Engine) Evaluate(holdings []Holding, current, prior date.Date) (*Snapshot, error) {
	for _, h := range holdings {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("invalid holding: %w", err)
		}
	}

	eligible := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.Units.LessThan(e.opts.MinUnits) {
			log.Debug().Str("symbol", h.Symbol).Stringer("units", h.Units).Msg("excluding holding below minimum units")
			continue
		}
		eligible = append(eligible, h)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no holdings at or above the minimum units", ErrInsufficientData)
	}
	if e.store.Len() == 0 {
		return nil, fmt.Errorf("%w: price store is empty", ErrInsufficientData)
	}

	s := &Snapshot{
		RunID:             uuid.New(),
		CurrentOn:         current,
		PriorOn:           prior,
		ReportingCurrency: e.opts.ReportingCurrency,
		TotalCurrent:      M(0, e.opts.ReportingCurrency),
		TotalPrior:        M(0, e.opts.ReportingCurrency),
		CostBasis:         M(0, e.opts.ReportingCurrency),
	}

	classes := make(map[string]*ClassAggregate)
	for _, h := range eligible {
		r := HoldingResult{Holding: h}
		r.Current = e.valueAt(h, current)
		r.Prior = e.valueAt(h, prior)

		if r.Current.Miss || r.Prior.Miss {
			e.misses.Record(h.Symbol)
		}
		if r.Current.Stale || r.Prior.Stale {
			s.StaleCount++
		}
		if !r.Current.Miss {
			s.TotalCurrent = s.TotalCurrent.Add(r.Current.Value)
			if h.HasCostBasis() {
				s.CostBasis = s.CostBasis.Add(h.CostBasis)
			}
		}
		if !r.Prior.Miss {
			s.TotalPrior = s.TotalPrior.Add(r.Prior.Value)
		}

		r.Change = r.Current.Value.Sub(r.Prior.Value)
		r.PctChange = pctChange(r.Current.Value, r.Prior.Value)

		agg, ok := classes[h.Class]
		if !ok {
			agg = &ClassAggregate{
				Class:   h.Class,
				Current: M(0, e.opts.ReportingCurrency),
				Prior:   M(0, e.opts.ReportingCurrency),
			}
			classes[h.Class] = agg
		}
		// A missed date contributes a zero value, keeping the class present
		// in the report.
		agg.Current = agg.Current.Add(r.Current.Value)
		agg.Prior = agg.Prior.Add(r.Prior.Value)

		s.Holdings = append(s.Holdings, r)
	}

	s.MissCount = e.misses.Count()
	s.Change = s.TotalCurrent.Sub(s.TotalPrior)
	s.PctChange = pctChange(s.TotalCurrent, s.TotalPrior)
	if s.CostBasis.IsPositive() {
		s.Return = s.TotalCurrent.Sub(s.CostBasis)
		s.ReturnPct = pctChange(s.TotalCurrent, s.CostBasis)
	}

	s.Classes = sortClasses(classes)
	s.Winners, s.Losers = rank(s.Holdings, e.opts.RankSize)

	// Deterministic order for the full listing.
	sort.Slice(s.Holdings, func(i, j int) bool { return s.Holdings[i].Symbol < s.Holdings[j].Symbol })

	log.Info().
		Stringer("current", current).
		Stringer("prior", prior).
		Stringer("total", s.TotalCurrent).
		Int("misses", s.MissCount).
		Msg("portfolio valued")
	return s, nil
}

// valueAt prices one holding at one target date.
func (e *Engine) valueAt(h Holding, on date.Date) ValuationPoint {
	p := ValuationPoint{On: on, Value: M(0, e.opts.ReportingCurrency)}

	if h.IsCash() {
		p.Price, p.PriceOn = M(1, h.Currency), on
	} else {
		price, observed, ok := e.store.PriceAsOf(h.Symbol, on)
		if !ok {
			log.Warn().Str("symbol", h.Symbol).Stringer("on", on).Msg("no price found for symbol")
			p.Miss = true
			return p
		}
		if price.Currency() != "" && price.Currency() != h.Currency {
			// The archive quotes the symbol in another currency than the
			// holding claims: converting would silently misvalue it.
			log.Warn().Str("symbol", h.Symbol).Str("want", h.Currency).Str("got", price.Currency()).Msg("price currency mismatch")
			p.Miss = true
			return p
		}
		p.Price, p.PriceOn = price, observed
	}

	rate, rateOn, err := e.fx.Rate(h.Currency, e.opts.ReportingCurrency, on)
	if err != nil {
		log.Warn().Str("symbol", h.Symbol).Stringer("on", on).Err(err).Msg("no fx rate for holding")
		p.Miss = true
		return p
	}
	p.FXRate, p.FXOn = rate, rateOn

	p.Value = p.Price.Mul(h.Units).Mul(rate).In(e.opts.ReportingCurrency)
	p.Stale = e.isStale(on, p.PriceOn) || e.isStale(on, p.FXOn)
	log.Debug().
		Str("symbol", h.Symbol).
		Stringer("units", h.Units).
		Stringer("price", p.Price).
		Stringer("fx", rate).
		Stringer("value", p.Value).
		Msg("holding valued")
	return p
}

func (e *Engine) isStale(target, observed date.Date) bool {
	return e.opts.MaxPriceAgeDays > 0 && target.Sub(observed) > e.opts.MaxPriceAgeDays
}

// pctChange returns the relative change from prior to current.
// A zero (or missed, hence zero) prior yields 0%, not an undefined or
// infinite change; newly funded holdings read as flat for their first period.
func pctChange(current, prior Money) Percent {
	if !prior.IsPositive() {
		return 0
	}
	return Percent(100 * current.Sub(prior).AsFloat() / prior.AsFloat())
}

// sortClasses orders aggregates by descending absolute value change, largest
// mover first, with name as tie-break for determinism.
func sortClasses(classes map[string]*ClassAggregate) []ClassAggregate {
	out := make([]ClassAggregate, 0, len(classes))
	for _, agg := range classes {
		agg.Change = agg.Current.Sub(agg.Prior)
		agg.PctChange = pctChange(agg.Current, agg.Prior)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := absFloat(out[i].Change.AsFloat()), absFloat(out[j].Change.AsFloat())
		if a != b {
			return a > b
		}
		return out[i].Class < out[j].Class
	})
	return out
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// rank returns the top and bottom n holdings by percentage change.
// Ties are broken by symbol so identical inputs always rank identically.
func rank(results []HoldingResult, n int) (winners, losers []HoldingResult) {
	if n <= 0 || len(results) == 0 {
		return nil, nil
	}
	if n > len(results) {
		n = len(results)
	}

	byPct := func(descending bool) []HoldingResult {
		sorted := make([]HoldingResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].PctChange != sorted[j].PctChange {
				if descending {
					return sorted[i].PctChange > sorted[j].PctChange
				}
				return sorted[i].PctChange < sorted[j].PctChange
			}
			return sorted[i].Symbol < sorted[j].Symbol
		})
		return sorted[:n]
	}

	return byPct(true), byPct(false)
}
