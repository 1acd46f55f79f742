// Package renderer turns dashboard data into markdown. Every section of the
// report has one exported *Markdown function; the cmd layer decides which
// sections to render and pipes the result through the terminal renderer.
package renderer

import (
	"fmt"
	"math"

	"stocklens"
)

// pct renders a percent column value, "-" when there is nothing to show.
func pct(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "-"
	}
	return stocklens.FormatSignedPercent(v)
}

// num renders a compact dollar column value, "-" for zero.
func num(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "-"
	}
	return stocklens.FormatLargeNumber(v)
}

// ratio renders a plain ratio such as a P/E, "-" for zero.
func ratio(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}
