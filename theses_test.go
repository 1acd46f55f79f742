package stocklens

import (
	"os"
	"path/filepath"
	"testing"
)

func testThesis(t *testing.T, ticker, statement string) Thesis {
	t.Helper()
	th, err := NewThesis(ticker, statement, "Revenue growth drops below 5% for two quarters", "6-12 Months", 7)
	if err != nil {
		t.Fatalf("NewThesis() error = %v", err)
	}
	return th
}

func TestThesisStore_SaveDedupe(t *testing.T) {
	s := NewThesisStore(filepath.Join(t.TempDir(), "theses.json"))

	first := testThesis(t, "acme", "Cloud revenue doubles by 2027")
	if err := s.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// same claim, different casing and surrounding space: must update in place
	dup := testThesis(t, "ACME", "  Cloud revenue doubles by 2027  ")
	dup.Confidence = 9
	if err := s.Save(dup); err != nil {
		t.Fatalf("Save(dup) error = %v", err)
	}

	theses, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(theses) != 1 {
		t.Fatalf("Load() returned %d theses, want 1 after dedupe", len(theses))
	}
	got := theses[0]
	if got.Confidence != 9 {
		t.Errorf("Confidence = %d, want 9 from the update", got.Confidence)
	}
	if got.ID != first.ID {
		t.Errorf("ID changed on update: %q -> %q", first.ID, got.ID)
	}
	if got.Ticker != "ACME" {
		t.Errorf("Ticker = %q, want ACME", got.Ticker)
	}

	// a different statement is a new thesis
	if err := s.Save(testThesis(t, "ACME", "Margins expand past 30%")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if theses, _ = s.Load(); len(theses) != 2 {
		t.Errorf("Load() returned %d theses, want 2", len(theses))
	}
}

func TestThesisStore_SaveRefinedStatement(t *testing.T) {
	s := NewThesisStore(filepath.Join(t.TempDir(), "theses.json"))
	th := testThesis(t, "ACME", "Cloud revenue doubles by 2027")
	if err := s.Save(th); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// a refinement keeps the id but may rewrite the claim itself
	refined := th
	refined.Statement = "Cloud revenue doubles by 2026 on AI demand"
	refined.Confidence = 6
	if err := s.Save(refined); err != nil {
		t.Fatalf("Save(refined) error = %v", err)
	}

	theses, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(theses) != 1 {
		t.Fatalf("Load() returned %d theses, want 1 after saving by id", len(theses))
	}
	if theses[0].Statement != refined.Statement || theses[0].Confidence != 6 {
		t.Errorf("saved thesis = %+v, want the refined record", theses[0])
	}
	if theses[0].CreatedAt != th.CreatedAt {
		t.Errorf("CreatedAt changed on refinement: %q -> %q", th.CreatedAt, theses[0].CreatedAt)
	}
	if err := s.Remove(refined.ID); err != nil {
		t.Errorf("Remove() after refinement error = %v", err)
	}
}

func TestThesisStore_MissingFile(t *testing.T) {
	s := NewThesisStore(filepath.Join(t.TempDir(), "nope", "theses.json"))
	theses, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if len(theses) != 0 {
		t.Errorf("Load() on missing file = %v, want empty", theses)
	}
}

func TestThesisStore_CorruptFileNeverClobbered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theses.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewThesisStore(path)

	if _, err := s.Load(); err == nil {
		t.Errorf("Load() on corrupt file want error")
	}
	if err := s.Save(testThesis(t, "ACME", "x")); err == nil {
		t.Errorf("Save() on corrupt file want error")
	}
	// the corrupt file must survive untouched
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{broken" {
		t.Errorf("corrupt file was modified: %q, %v", data, err)
	}
}

func TestThesisStore_Remove(t *testing.T) {
	s := NewThesisStore(filepath.Join(t.TempDir(), "theses.json"))
	th := testThesis(t, "ACME", "x")
	if err := s.Save(th); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.Remove("no-such-id"); err == nil {
		t.Errorf("Remove(unknown) want error")
	}
	// short prefix form
	if err := s.Remove(th.ID[:8]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if theses, _ := s.Load(); len(theses) != 0 {
		t.Errorf("Load() after Remove = %v, want empty", theses)
	}
}

func TestThesisStore_SetStatus(t *testing.T) {
	s := NewThesisStore(filepath.Join(t.TempDir(), "theses.json"))
	th := testThesis(t, "ACME", "x")
	if err := s.Save(th); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.SetStatus(th.ID, "Falsified"); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	theses, _ := s.Load()
	if theses[0].Status != "Falsified" {
		t.Errorf("Status = %q, want Falsified", theses[0].Status)
	}
	if err := s.SetStatus(th.ID, "Maybe"); err == nil {
		t.Errorf("SetStatus(invalid) want error")
	}
}

func TestThesis_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Thesis)
		wantErr bool
	}{
		{name: "valid", mutate: func(t *Thesis) {}, wantErr: false},
		{name: "no ticker", mutate: func(t *Thesis) { t.Ticker = "" }, wantErr: true},
		{name: "no statement", mutate: func(t *Thesis) { t.Statement = "" }, wantErr: true},
		{name: "bad horizon", mutate: func(t *Thesis) { t.Horizon = "someday" }, wantErr: true},
		{name: "bad status", mutate: func(t *Thesis) { t.Status = "Pending" }, wantErr: true},
		{name: "confidence low", mutate: func(t *Thesis) { t.Confidence = 0 }, wantErr: true},
		{name: "confidence high", mutate: func(t *Thesis) { t.Confidence = 11 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Thesis{Ticker: "ACME", Statement: "x", Horizon: "1-3 Years", Confidence: 5, Status: "Active"}
			tt.mutate(&th)
			if err := th.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
