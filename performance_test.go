package stocklens

import "testing"

func flatHistory(n int, price float64) History {
	h := make(History, n)
	for i := range h {
		h[i] = Bar{Close: price}
	}
	return h
}

func TestHistory_Change(t *testing.T) {
	h := flatHistory(300, 100)
	h[len(h)-1].Close = 110

	if got := h.Change(Window3M); got != 10 {
		t.Errorf("Change(3M) = %g, want 10", got)
	}
	if got := flatHistory(10, 100).Change(Window1Y); got != 0 {
		t.Errorf("Change(1Y) on short history = %g, want 0", got)
	}
	if got := flatHistory(300, 0).Change(Window3M); got != 0 {
		t.Errorf("Change() with zero start = %g, want 0", got)
	}
}

func TestHistory_Normalize(t *testing.T) {
	h := History{{Close: 100}, {Close: 110}, {Close: 90}}
	got := h.Normalize()
	want := []float64{0, 10, -10}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Normalize()[%d] = %g, want %g", i, got[i], want[i])
		}
	}
	if History(nil).Normalize() != nil {
		t.Errorf("Normalize(empty) want nil")
	}
}

func TestNewCompetitorRow(t *testing.T) {
	q := Quote{Ticker: "ACME", Name: "Acme Corp", Currency: "USD", Price: 110, TrailingPE: 25, MarketCap: 1e12}

	long := flatHistory(300, 100)
	long[len(long)-1].Close = 110
	row := NewCompetitorRow(q, long)
	if row.Chg1Y != 10 {
		t.Errorf("Chg1Y = %g, want 10", row.Chg1Y)
	}

	// young listing: 1Y column suppressed
	short := flatHistory(100, 100)
	short[len(short)-1].Close = 110
	row = NewCompetitorRow(q, short)
	if row.Chg1Y != 0 {
		t.Errorf("Chg1Y on young listing = %g, want 0", row.Chg1Y)
	}
	if row.Chg3M != 10 {
		t.Errorf("Chg3M = %g, want 10", row.Chg3M)
	}
}
