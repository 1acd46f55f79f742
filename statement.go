package stocklens

import (
	"math"
	"strings"
)

// Statement models one financial statement (income, cash flow) as the
// providers deliver it: a set of labeled rows with one value per period.
// Periods are ordered most recent first, the way the dashboard consumes them.
type Statement struct {
	Periods []string             // e.g. "2025-06", newest first
	Rows    map[string][]float64 // row label -> values aligned with Periods
}

// normalizeLabel lowers and strips a row label so that providers'
// inconsistent spellings ("Cost Of Revenue" vs "Cost of Revenue") compare equal.
func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// Row returns the values for a row label. Lookup is exact first, then
// case/spacing-insensitive, then a word-subset match so "Capital Expenditure"
// finds "Capital Expenditures" or "CapitalExpenditure" style variants.
func (s *Statement) Row(label string) ([]float64, bool) {
	if v, ok := s.Rows[label]; ok {
		return v, true
	}
	want := normalizeLabel(label)
	for k, v := range s.Rows {
		if normalizeLabel(k) == want {
			return v, true
		}
	}
	// Word-subset fallback. Several rows can contain the words ("Revenue"
	// is inside both "Total Revenue" and "Cost Of Revenue"); the shortest
	// label is the least-qualified one, and ties break lexically so the
	// result never depends on map order.
	words := strings.Fields(want)
	best := ""
	for k := range s.Rows {
		got := normalizeLabel(k)
		all := true
		for _, w := range words {
			if !strings.Contains(got, w) {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		if best == "" || len(got) < len(normalizeLabel(best)) ||
			(len(got) == len(normalizeLabel(best)) && k < best) {
			best = k
		}
	}
	if best != "" {
		return s.Rows[best], true
	}
	return nil, false
}

// Latest returns the most recent value of a row.
func (s *Statement) Latest(label string) (float64, bool) {
	v, ok := s.Row(label)
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

// LatestAbs is Latest folded to an absolute value, 0 when the row is absent.
// Financial statements are sign-inconsistent across providers (expenses may
// come negative or positive); flows are always rendered from magnitudes.
func (s *Statement) LatestAbs(label string) float64 {
	v, _ := s.Latest(label)
	return math.Abs(v)
}

// LatestFields returns the most recent period as a flat field->value map,
// dropping zero and NaN entries. This is the payload handed to the AI when
// inferring a flow structure for an unfamiliar statement shape.
func (s *Statement) LatestFields() map[string]float64 {
	out := make(map[string]float64, len(s.Rows))
	for label, values := range s.Rows {
		if len(values) == 0 {
			continue
		}
		v := values[0]
		if v == 0 || math.IsNaN(v) {
			continue
		}
		out[label] = v
	}
	return out
}

// Series is a per-quarter metric trend, oldest first, ready for rendering.
type Series struct {
	Name    string
	Periods []string
	Values  []float64
}

// Series extracts a row as a trend over the last (up to) five periods,
// reversed to oldest-first. The first matching label wins; this is how the
// dashboard falls back from EBITDA to Normalized EBITDA to Operating Income.
func (s *Statement) Series(name string, labels ...string) Series {
	var row []float64
	for _, l := range labels {
		if v, ok := s.Row(l); ok {
			row = v
			break
		}
	}
	n := len(s.Periods)
	if n > 5 {
		n = 5
	}
	out := Series{Name: name, Periods: make([]string, 0, n), Values: make([]float64, 0, n)}
	for i := n - 1; i >= 0; i-- {
		out.Periods = append(out.Periods, s.Periods[i])
		if i < len(row) {
			out.Values = append(out.Values, row[i])
		} else {
			out.Values = append(out.Values, 0)
		}
	}
	return out
}

// Abs returns a copy of the series with absolute values. CapEx is reported
// negative by most providers but charted positive.
func (s Series) Abs() Series {
	out := Series{Name: s.Name, Periods: s.Periods, Values: make([]float64, len(s.Values))}
	for i, v := range s.Values {
		out.Values[i] = math.Abs(v)
	}
	return out
}

// Growth returns the quarter-over-quarter change of each point, formatted.
// The first point has no predecessor and renders empty.
func (s Series) Growth() []string {
	out := make([]string, len(s.Values))
	for i := 1; i < len(s.Values); i++ {
		prev := s.Values[i-1]
		if prev == 0 {
			out[i] = "N/A"
			continue
		}
		pct := (s.Values[i] - prev) / math.Abs(prev) * 100
		out[i] = FormatSignedPercent(pct)
	}
	return out
}
