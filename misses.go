package valuation

// MissTracker counts the symbols for which no price or FX rate could be
// resolved during a run. A symbol missing on both target dates counts once.
type MissTracker struct {
	symbols map[string]struct{}
}

// NewMissTracker returns an empty tracker. Trackers are per-run.
func NewMissTracker() *MissTracker {
	return &MissTracker{symbols: make(map[string]struct{})}
}

// Record notes that 'symbol' could not be priced at some target date.
func (t *MissTracker) Record(symbol string) {
	t.symbols[symbol] = struct{}{}
}

// Count returns the number of distinct symbols with at least one miss.
func (t *MissTracker) Count() int { return len(t.symbols) }

// Severity classifies the outcome of a run by its miss count.
type Severity int

const (
	SeverityOK       Severity = iota // no misses
	SeverityWarning                  // some misses, within tolerance
	SeverityCritical                 // miss count above the configured maximum
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// Classify maps a miss count against the configured maximum.
//
// Critical is the only outcome that should make the caller treat the run as
// failed; a warning run still produces a report, with a visible miss banner.
// The engine only classifies, escalation is the caller's policy.
func Classify(missCount, maxPriceMisses int) Severity {
	switch {
	case missCount == 0:
		return SeverityOK
	case missCount <= maxPriceMisses:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
