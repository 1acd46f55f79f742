package stocklens

import (
	"math"
	"testing"
)

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1.234e12, "$1.23T"},
		{45.6e9, "$45.60B"},
		{789e6, "$789.00M"},
		{12.3e3, "$12.30K"},
		{999, "$999.00"},
		{-2.5e9, "-$2.50B"},
		{0, "$0.00"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatLargeNumber(tt.v); got != tt.want {
			t.Errorf("FormatLargeNumber(%g) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatSignedPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{5.06, "+5.1%"},
		{-2.04, "-2.0%"},
		{0, "+0.0%"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatSignedPercent(tt.pct); got != tt.want {
			t.Errorf("FormatSignedPercent(%g) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
