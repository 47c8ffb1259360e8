package valuation

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/spello/valuation/date"
)

// PairSymbol returns the archive symbol quoting 1 unit of 'from' in 'to',
// following the Yahoo Finance convention used by the price archives:
// "<FROM><TO>=X", except that pairs quoted against USD drop the USD prefix
// ("USD"→"AUD" is "AUD=X", not "USDAUD=X").
func PairSymbol(from, to string) string {
	if from == "USD" {
		return to + "=X"
	}
	return from + to + "=X"
}

// CurrencyResolver finds or derives the conversion rate between two
// currencies at a date, using FX-coded symbols in a PriceStore.
//
// The resolver memoizes successful lookups for its lifetime, which is one
// valuation run: the store can be reloaded between runs, so the cache must
// not outlive it. Failed lookups are never cached, so a later date in the
// same run can still resolve independently.
type CurrencyResolver struct {
	store *PriceStore
	pivot string
	cache map[rateKey]rateEntry
}

type rateKey struct {
	from, to string
	on       date.Date
}

type rateEntry struct {
	rate     Quantity
	observed date.Date
}

// NewCurrencyResolver returns a resolver triangulating through 'pivot'
// (typically "USD") when no direct or inverse pair is archived.
func NewCurrencyResolver(store *PriceStore, pivot string) *CurrencyResolver {
	return &CurrencyResolver{
		store: store,
		pivot: pivot,
		cache: make(map[rateKey]rateEntry),
	}
}

// Rate converts 1 unit of 'from' into 'to' as of 'on'.
//
// Resolution order, first match wins: identity, direct pair symbol, inverse
// pair symbol (inverted), then triangulation through the pivot currency.
// The returned date is the observation date the rate is based on; for a
// triangulated rate it is the older of the two legs.
//
// When no path resolves, the error wraps ErrUnresolvedCurrencyPair; callers
// treat that as a price miss for the holding, not as a fatal error.
func (r *CurrencyResolver) Rate(from, to string, on date.Date) (rate Quantity, observed date.Date, err error) {
	if from == to {
		return One(), on, nil
	}

	key := rateKey{from: from, to: to, on: on}
	if hit, ok := r.cache[key]; ok {
		return hit.rate, hit.observed, nil
	}

	rate, observed, err = r.resolve(from, to, on)
	if err != nil {
		return Quantity{}, date.Date{}, err
	}
	r.cache[key] = rateEntry{rate: rate, observed: observed}
	return rate, observed, nil
}

func (r *CurrencyResolver) resolve(from, to string, on date.Date) (Quantity, date.Date, error) {
	// Direct or inverse pair.
	if rate, observed, ok := r.pairRate(from, to, on); ok {
		return rate, observed, nil
	}

	// Triangulate: value both currencies in the pivot and divide.
	fromLeg, fromOn, okFrom := r.legRate(from, on)
	toLeg, toOn, okTo := r.legRate(to, on)
	if !okFrom || !okTo {
		return Quantity{}, date.Date{}, fmt.Errorf("%w: %s->%s on %s", ErrUnresolvedCurrencyPair, from, to, on)
	}
	if toLeg.IsZero() {
		return Quantity{}, date.Date{}, fmt.Errorf("%w: %s->%s on %s: zero %s leg", ErrUnresolvedCurrencyPair, from, to, on, to)
	}
	observed := fromOn
	if toOn.Before(observed) {
		observed = toOn
	}
	log.Debug().Str("from", from).Str("to", to).Str("pivot", r.pivot).Stringer("on", on).Msg("triangulated fx rate")
	return fromLeg.Div(toLeg), observed, nil
}

// pairRate looks up the direct pair symbol, then the inverse one.
func (r *CurrencyResolver) pairRate(from, to string, on date.Date) (Quantity, date.Date, bool) {
	if price, observed, ok := r.store.PriceAsOf(PairSymbol(from, to), on); ok {
		return Q(price.value), observed, true
	}
	if price, observed, ok := r.store.PriceAsOf(PairSymbol(to, from), on); ok && !price.IsZero() {
		return Q(price.value).Inv(), observed, true
	}
	return Quantity{}, date.Date{}, false
}

// legRate values 1 unit of 'currency' in the pivot, direct or inverse only.
func (r *CurrencyResolver) legRate(currency string, on date.Date) (Quantity, date.Date, bool) {
	if currency == r.pivot {
		return One(), on, true
	}
	return r.pairRate(currency, r.pivot, on)
}
