package valuation

import (
	"github.com/rs/zerolog/log"

	"github.com/spello/valuation/date"
)

// PriceStore holds market data for a set of symbols: one date-ordered price
// series per symbol, merged from one or more archives.
//
// The store is populated once during a load phase and is read-only afterwards;
// it is rebuilt from scratch on every run, so there is no locking and no
// cross-run caching.
type PriceStore struct {
	series   map[string]*priceSeries
	archives map[string]date.Date // most recent observation per archive
}

// priceSeries is the per-symbol series. Prices keep their native currency so
// mixed-currency archives merge safely.
type priceSeries struct {
	name   string
	prices date.History[Money]
}

// NewPriceStore returns a new empty price store.
func NewPriceStore() *PriceStore {
	return &PriceStore{
		series:   make(map[string]*priceSeries),
		archives: make(map[string]date.Date),
	}
}

// Load merges a batch of observations from one archive into the store.
//
// Later calls override same-date entries from earlier calls, so archive
// precedence is simply call order. Malformed observations are skipped and
// counted, never fatal: the returned value is the number of rows dropped.
func (s *PriceStore) Load(archive string, observations []Observation) (skipped int) {
	for _, o := range observations {
		if err := o.Validate(); err != nil {
			log.Warn().Str("archive", archive).Err(err).Msg("skipping price row")
			skipped++
			continue
		}
		sec, ok := s.series[o.Symbol]
		if !ok {
			sec = &priceSeries{}
			s.series[o.Symbol] = sec
		}
		if o.Name != "" {
			sec.name = o.Name
		}
		sec.prices.Append(o.On, o.Price)

		if latest, ok := s.archives[archive]; !ok || o.On.After(latest) {
			s.archives[archive] = o.On
		}
	}
	log.Debug().Str("archive", archive).Int("rows", len(observations)-skipped).Int("skipped", skipped).Msg("loaded price archive")
	return skipped
}

// Len returns the number of symbols with at least one observation.
func (s *PriceStore) Len() int { return len(s.series) }

// Has reports whether the store holds any observation for symbol.
func (s *PriceStore) Has(symbol string) bool {
	_, ok := s.series[symbol]
	return ok
}

// PriceAsOf returns the price of one unit of 'symbol' as of 'on': the
// observation with the greatest date less than or equal to 'on'.
//
// It returns ok=false when the symbol is unknown or every observation is
// after 'on'. It never falls back to a zero price. The store is policy-free
// about staleness: callers compare on.Sub(observed) against their own window.
func (s *PriceStore) PriceAsOf(symbol string, on date.Date) (price Money, observed date.Date, ok bool) {
	sec, found := s.series[symbol]
	if !found {
		return Money{}, date.Date{}, false
	}
	observed, price, ok = sec.prices.AsOf(on)
	return price, observed, ok
}

// SymbolName returns the display name recorded for symbol, or the symbol
// itself when no archive supplied one.
func (s *PriceStore) SymbolName(symbol string) string {
	if sec, ok := s.series[symbol]; ok && sec.name != "" {
		return sec.name
	}
	return symbol
}

// MaxObservationAge returns the number of days between today and the most
// recent observation loaded from the named archive. It is meant for warning
// about out-of-date source files and plays no part in valuation.
func (s *PriceStore) MaxObservationAge(archive string) (days int, ok bool) {
	latest, found := s.archives[archive]
	if !found {
		return 0, false
	}
	return date.Today().Sub(latest), true
}
