package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Append two values in reverse order and check that the series stays
	// chronological at every step.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
}

func TestAppendLastWriteWins(t *testing.T) {
	h := new(History[float64])
	on := New(2025, 07, 01)

	h.Append(on, 100).Append(on, 110)

	if h.Len() != 1 {
		t.Fatalf("Len() = %v want 1", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 110 {
		t.Errorf("Get() = %v, %v want 110, true", v, ok)
	}
}

func TestAsOf(t *testing.T) {
	h := new(History[float64])
	d1, d2, d3 := New(2025, 07, 01), New(2025, 07, 10), New(2025, 07, 20)
	h.Append(d1, 1).Append(d2, 2).Append(d3, 3)

	testCases := []struct {
		name   string
		day    Date
		wantOn Date
		wantV  float64
		wantOk bool
	}{
		{"before first", d1.Add(-1), Date{}, 0, false},
		{"exact first", d1, d1, 1, true},
		{"between, falls back", d2.Add(3), d2, 2, true},
		{"exact last", d3, d3, 3, true},
		{"after last", d3.Add(100), d3, 3, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			on, v, ok := h.AsOf(tc.day)
			if ok != tc.wantOk || on != tc.wantOn || v != tc.wantV {
				t.Errorf("AsOf(%v) = %v, %v, %v want %v, %v, %v", tc.day, on, v, ok, tc.wantOn, tc.wantV, tc.wantOk)
			}
		})
	}
}

func TestAsOfEmpty(t *testing.T) {
	h := new(History[float64])
	if _, _, ok := h.AsOf(Today()); ok {
		t.Error("AsOf() on empty history returned ok")
	}
}
