package stocklens

import (
	"reflect"
	"testing"
)

func TestStatement_Row(t *testing.T) {
	st := &Statement{
		Periods: []string{"2025-06-30"},
		Rows: map[string][]float64{
			"Cost Of Revenue":      {100},
			"Capital Expenditures": {-50},
			"EBITDA":               {200},
		},
	}

	tests := []struct {
		label string
		want  float64
		ok    bool
	}{
		{"Cost Of Revenue", 100, true},      // exact
		{"cost of revenue", 100, true},      // case-insensitive
		{"Capital Expenditure", -50, true},  // word-subset
		{"ebitda", 200, true},
		{"Free Cash Flow", 0, false},
	}
	for _, tt := range tests {
		v, ok := st.Row(tt.label)
		if ok != tt.ok {
			t.Errorf("Row(%q) ok = %v, want %v", tt.label, ok, tt.ok)
			continue
		}
		if ok && v[0] != tt.want {
			t.Errorf("Row(%q) = %g, want %g", tt.label, v[0], tt.want)
		}
	}
}

func TestStatement_Row_AmbiguousSubset(t *testing.T) {
	st := &Statement{
		Periods: []string{"2025-06-30"},
		Rows: map[string][]float64{
			"Total Revenue":   {90},
			"Cost Of Revenue": {34},
		},
	}
	// "Revenue" is inside both labels: the shortest one must win, every run.
	for i := 0; i < 20; i++ {
		v, ok := st.Row("Revenue")
		if !ok || v[0] != 90 {
			t.Fatalf("Row(Revenue) = %v, %v, want Total Revenue (90)", v, ok)
		}
	}

	// equal-length candidates tie-break lexically
	st.Rows = map[string][]float64{
		"Gamma Revenue": {2},
		"Alpha Revenue": {1},
	}
	for i := 0; i < 20; i++ {
		if v, ok := st.Row("Revenue"); !ok || v[0] != 1 {
			t.Fatalf("Row(Revenue) = %v, %v, want Alpha Revenue (1)", v, ok)
		}
	}
}

func TestStatement_LatestAbs(t *testing.T) {
	st := &Statement{
		Periods: []string{"2025-06-30", "2025-03-31"},
		Rows:    map[string][]float64{"Cost Of Revenue": {-120, -110}},
	}
	if got := st.LatestAbs("Cost Of Revenue"); got != 120 {
		t.Errorf("LatestAbs() = %g, want 120", got)
	}
	if got := st.LatestAbs("No Such Row"); got != 0 {
		t.Errorf("LatestAbs(absent) = %g, want 0", got)
	}
}

func TestStatement_LatestFields(t *testing.T) {
	st := &Statement{
		Periods: []string{"2025-06-30"},
		Rows: map[string][]float64{
			"Total Revenue": {90},
			"Zero Row":      {0},
			"Empty Row":     {},
		},
	}
	got := st.LatestFields()
	want := map[string]float64{"Total Revenue": 90}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LatestFields() = %v, want %v", got, want)
	}
}

func TestStatement_Series(t *testing.T) {
	st := &Statement{
		// six periods, newest first: only the last five survive
		Periods: []string{"2025-06", "2025-03", "2024-12", "2024-09", "2024-06", "2024-03"},
		Rows: map[string][]float64{
			"Operating Income": {60, 50, 40, 30, 20, 10},
		},
	}
	s := st.Series("EBITDA", "EBITDA", "Normalized EBITDA", "Operating Income")
	if len(s.Values) != 5 {
		t.Fatalf("Series() len = %d, want 5", len(s.Values))
	}
	if s.Periods[0] != "2024-06" || s.Periods[4] != "2025-06" {
		t.Errorf("Series() periods = %v, want oldest first", s.Periods)
	}
	if s.Values[0] != 20 || s.Values[4] != 60 {
		t.Errorf("Series() values = %v, want [20 ... 60]", s.Values)
	}
}

func TestSeries_Growth(t *testing.T) {
	s := Series{Values: []float64{100, 110, 0, 55}}
	got := s.Growth()
	want := []string{"", "+10.0%", "-100.0%", "N/A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Growth() = %v, want %v", got, want)
	}
}
