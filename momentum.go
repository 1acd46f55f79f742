package stocklens

import (
	"fmt"
	"math"
)

// Momentum holds the technical overlays derived from a price history.
// Slices are aligned with the history; leading samples that lack enough
// lookback are NaN.
type Momentum struct {
	SMA50  []float64
	SMA200 []float64
	RSI    []float64
}

// SMA computes a simple moving average with the given window.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RSI computes Wilder's relative strength index with the given window.
func RSI(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(values) <= window {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = rsiFrom(avgGain, avgLoss)

	// Wilder smoothing for the rest of the series.
	for i := window + 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ComputeMomentum derives SMA 50/200 and RSI 14 from a daily history.
func ComputeMomentum(h History) Momentum {
	closes := h.Closes()
	return Momentum{
		SMA50:  SMA(closes, 50),
		SMA200: SMA(closes, 200),
		RSI:    RSI(closes, 14),
	}
}

// Signals turns the latest momentum state into human-readable findings.
func Signals(h History, m Momentum) []string {
	if len(h) == 0 {
		return nil
	}
	var signals []string
	last := len(h) - 1
	price := h[last].Close
	rsi := m.RSI[last]
	sma50 := m.SMA50[last]

	switch {
	case math.IsNaN(rsi):
		// not enough history for an RSI reading
	case rsi > 70:
		signals = append(signals, "**RSI Overbought**: the stock might be overvalued in the short term.")
	case rsi < 30:
		signals = append(signals, "**RSI Oversold**: the stock might be undervalued in the short term.")
	default:
		signals = append(signals, fmt.Sprintf("**RSI Neutral**: current RSI is %.2f.", rsi))
	}

	if !math.IsNaN(sma50) {
		if price > sma50 {
			signals = append(signals, "**Bullish Trend**: price is above the 50-day SMA.")
		} else {
			signals = append(signals, "**Bearish Trend**: price is below the 50-day SMA.")
		}
	}
	return signals
}
