package fmp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{http: srv.Client(), base: srv.URL, apiKey: "test-key"}
}

func TestClient_NextEarnings(t *testing.T) {
	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		// mixed past and future entries, unsorted
		fmt.Fprintf(w, `[
			{"symbol": "ACME", "date": "%s", "epsActual": null, "epsEstimated": 2.10, "revenueEstimated": 99e9},
			{"symbol": "ACME", "date": "%s", "epsActual": 1.55, "epsEstimated": 1.50, "revenueEstimated": 90e9},
			{"symbol": "ACME", "date": "%s", "epsActual": null, "epsEstimated": 1.62, "revenueEstimated": 95e9}
		]`, day(120), day(-60), day(30))
	}))
	defer srv.Close()

	info, err := testClient(srv).NextEarnings(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("NextEarnings() error = %v", err)
	}
	if info.NextEarnings != day(30) {
		t.Errorf("NextEarnings = %q, want earliest future report %q", info.NextEarnings, day(30))
	}
	if info.EPSEstimated != 1.62 || info.RevenueEstimated != 95e9 {
		t.Errorf("estimates = %+v", info)
	}
	if info.Source != "fmp" {
		t.Errorf("Source = %q, want fmp", info.Source)
	}
}

func TestClient_NextEarnings_NoneScheduled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// only already-reported quarters
		fmt.Fprint(w, `[{"symbol": "ACME", "date": "2020-01-30", "epsActual": 1.0, "epsEstimated": 0.9}]`)
	}))
	defer srv.Close()

	if _, err := testClient(srv).NextEarnings(context.Background(), "ACME"); err == nil {
		t.Errorf("NextEarnings() with no future reports want error")
	}
}

func TestClient_NoKey(t *testing.T) {
	c := &Client{http: http.DefaultClient, base: "http://invalid"}
	if c.Enabled() {
		t.Errorf("Enabled() without key = true")
	}
	if _, err := c.NextEarnings(context.Background(), "ACME"); err == nil {
		t.Errorf("NextEarnings() without key want error")
	}
}
