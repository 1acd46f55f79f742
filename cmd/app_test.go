package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"stocklens"
)

func TestTicker(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{" aapl ", "AAPL", false},
		{"MSFT", "MSFT", false},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tt := range tests {
		got, err := ticker(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ticker(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ticker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheEarningsWriteFailure(t *testing.T) {
	// A regular file where the cache dir should be makes every Put fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cache := stocklens.NewFileCache(filepath.Join(blocked, "sub"), "earnings.json")
	info := stocklens.EarningsInfo{NextEarnings: "2025-10-30", Source: "fmp"}
	if err := cache.Put("ACME", info); err == nil {
		t.Fatal("Put() under a blocked dir should fail, fix the fixture")
	}

	// The write failure is logged, not surfaced: fetched calendar data must
	// still reach the caller.
	cacheEarnings(cache, "ACME", info)
}
