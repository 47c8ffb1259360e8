package valuation

import "testing"

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		misses int
		max    int
		want   Severity
	}{
		{"no misses", 0, 2, SeverityOK},
		{"no misses zero tolerance", 0, 0, SeverityOK},
		{"within tolerance", 1, 2, SeverityWarning},
		{"at tolerance", 2, 2, SeverityWarning},
		{"above tolerance", 3, 2, SeverityCritical},
		{"zero tolerance single miss", 1, 0, SeverityCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.misses, tc.max); got != tc.want {
				t.Errorf("Classify(%d, %d) = %v want %v", tc.misses, tc.max, got, tc.want)
			}
		})
	}
}

func TestMissTrackerCountsSymbolsOnce(t *testing.T) {
	tr := NewMissTracker()
	tr.Record("MSFT") // current date miss
	tr.Record("MSFT") // prior date miss, same symbol
	tr.Record("GOOG")

	if got := tr.Count(); got != 2 {
		t.Errorf("Count() = %d want 2, a symbol missing on both dates counts once", got)
	}
}
