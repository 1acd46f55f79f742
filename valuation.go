package stocklens

import (
	"math"
	"sort"
)

// EarningsPoint is one reported earnings quarter.
type EarningsPoint struct {
	Quarter string  // period end, "2006-01-02"
	EPS     float64 // reported, not estimated
}

// PEBand is the price level implied by a fixed trailing-earnings multiple.
type PEBand struct {
	Multiple float64
	Price    float64
}

// PEBandMultiples are the classic valuation bands.
var PEBandMultiples = []float64{15, 20, 25}

// TTMEPS sums the four most recent reported quarters. NaN when fewer than
// four quarters are known.
func TTMEPS(points []EarningsPoint) float64 {
	if len(points) < 4 {
		return math.NaN()
	}
	sorted := make([]EarningsPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Quarter < sorted[j].Quarter })

	var sum float64
	for _, p := range sorted[len(sorted)-4:] {
		sum += p.EPS
	}
	return sum
}

// PEBands prices the classic multiples off trailing earnings. Nil when
// trailing earnings are unknown or not positive, bands off negative earnings
// mean nothing.
func PEBands(ttmEPS float64) []PEBand {
	if math.IsNaN(ttmEPS) || ttmEPS <= 0 {
		return nil
	}
	bands := make([]PEBand, 0, len(PEBandMultiples))
	for _, m := range PEBandMultiples {
		bands = append(bands, PEBand{Multiple: m, Price: m * ttmEPS})
	}
	return bands
}
