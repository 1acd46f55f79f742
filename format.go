package stocklens

import (
	"fmt"
	"math"
)

// FormatLargeNumber compacts a dollar amount into a readable string with a
// magnitude suffix: $1.23T, $45.60B, $789.00M, $12.30K.
func FormatLargeNumber(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	a := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case a >= 1e12:
		return fmt.Sprintf("%s$%.2fT", sign, a/1e12)
	case a >= 1e9:
		return fmt.Sprintf("%s$%.2fB", sign, a/1e9)
	case a >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, a/1e6)
	case a >= 1e3:
		return fmt.Sprintf("%s$%.2fK", sign, a/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, a)
	}
}

// FormatSignedPercent renders a ratio change as "+5.1%" / "-2.0%".
// NaN renders as "N/A" so a missing quarter never breaks a table.
func FormatSignedPercent(pct float64) string {
	if math.IsNaN(pct) {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", pct)
}
