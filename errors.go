package valuation

import "errors"

// Sentinel errors for the valuation pipeline.
//
// Malformed observations and unresolved currency pairs are recoverable: they
// are counted and surfaced once per run, never aborting it. Only
// ErrInsufficientData is fatal to a run.
var (
	// ErrMalformedObservation marks a price row that fails validation.
	ErrMalformedObservation = errors.New("malformed price observation")

	// ErrUnresolvedCurrencyPair means no direct, inverse, or pivoted path
	// converts one currency into another at the requested date.
	ErrUnresolvedCurrencyPair = errors.New("unresolved currency pair")

	// ErrInsufficientData means there is nothing to value: no usable
	// holdings, or an empty price store.
	ErrInsufficientData = errors.New("insufficient data for valuation")
)
