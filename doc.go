// Package valuation values a portfolio of holdings against archives of
// historical prices, as of any pair of dates.
//
// The core functionalities include:
//   - Price Archives: Loading dated price observations from CSV exports into
//     an in-memory store with "most recent on or before" lookup, so a
//     valuation date without an exact quote falls back to the latest prior
//     one.
//   - Currency Resolution: Converting holding values into a single reporting
//     currency from the FX symbols present in the archives, directly,
//     through the inverse pair, or triangulated through a pivot currency.
//   - Valuation Engine: Valuing every holding at a current and a prior date,
//     aggregating by asset class, ranking winners and losers, and computing
//     cost-basis returns.
//   - Miss Accounting: Tracking the symbols that could not be priced and
//     classifying the run's severity against a configured tolerance.
//   - Valuation Log: An append-only CSV history of portfolio totals, one row
//     per valuation date.
//
// This package serves as the foundational logic for the `ppr` command-line
// tool, which adds report rendering, charting and email delivery on top.
package valuation
