package stocklens

import (
	"math"
	"strings"
	"testing"
)

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("SMA() leading samples = %v, want NaN padding", got[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if got[i+2] != w {
			t.Errorf("SMA()[%d] = %g, want %g", i+2, got[i+2], w)
		}
	}
}

func TestRSI(t *testing.T) {
	// monotonically rising series: all gains, RSI pegs at 100
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(100 + i)
	}
	got := RSI(rising, 14)
	if !math.IsNaN(got[13]) {
		t.Errorf("RSI()[13] = %g, want NaN before the window fills", got[13])
	}
	if got[14] != 100 {
		t.Errorf("RSI() on all-gain series = %g, want 100", got[14])
	}

	// monotonically falling series: all losses, RSI pins near 0
	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = float64(200 - i)
	}
	if got := RSI(falling, 14); got[len(got)-1] != 0 {
		t.Errorf("RSI() on all-loss series = %g, want 0", got[len(got)-1])
	}

	// too short a series never produces a reading
	for _, v := range RSI([]float64{1, 2, 3}, 14) {
		if !math.IsNaN(v) {
			t.Errorf("RSI() on short series = %g, want NaN", v)
		}
	}
}

func TestSignals(t *testing.T) {
	h := make(History, 60)
	for i := range h {
		h[i] = Bar{Close: float64(100 + i)} // rising: above SMA50, RSI 100
	}
	m := ComputeMomentum(h)
	signals := Signals(h, m)
	joined := strings.Join(signals, "\n")
	if !strings.Contains(joined, "Overbought") {
		t.Errorf("Signals() = %q, want an RSI Overbought finding", joined)
	}
	if !strings.Contains(joined, "Bullish Trend") {
		t.Errorf("Signals() = %q, want a Bullish Trend finding", joined)
	}

	if got := Signals(nil, Momentum{}); got != nil {
		t.Errorf("Signals(empty) = %v, want nil", got)
	}
}
