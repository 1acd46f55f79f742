package stocklens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ThesisStore persists theses as a flat JSON array in a single file.
//
// The store never clobbers a file it cannot read: Load distinguishes a
// missing file (empty store) from a corrupt one (error), and Save refuses to
// run until a corrupt file is dealt with by hand.
type ThesisStore struct {
	path string
}

// NewThesisStore returns a store backed by path.
func NewThesisStore(path string) *ThesisStore { return &ThesisStore{path: path} }

// DefaultThesesFile returns the theses file used when no -theses-file flag or
// LENS_THESES_FILE override is given.
func DefaultThesesFile() string {
	if p := os.Getenv("LENS_THESES_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "theses.json"
	}
	return filepath.Join(home, ".lens", "theses.json")
}

// Load reads all theses. A missing file is an empty store, not an error.
func (s *ThesisStore) Load() ([]Thesis, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read theses file %q: %w", s.path, err)
	}
	var theses []Thesis
	if err := json.Unmarshal(data, &theses); err != nil {
		return nil, fmt.Errorf("theses file %q is not valid JSON: %w", s.path, err)
	}
	return theses, nil
}

// Save adds or updates a thesis. A thesis whose id is already in the store
// replaces that record (a refinement may rewrite the statement itself);
// otherwise a thesis making the same claim as an existing one (same ticker,
// same statement) replaces it in place, keeping the original id and creation
// time.
func (s *ThesisStore) Save(t Thesis) error {
	if err := t.Validate(); err != nil {
		return err
	}
	theses, err := s.Load()
	if err != nil {
		return err
	}
	t.UpdatedAt = time.Now().Format(Timestamp)
	for i := range theses {
		if theses[i].ID == t.ID {
			t.CreatedAt = theses[i].CreatedAt
			theses[i] = t
			return s.write(theses)
		}
	}
	for i := range theses {
		if theses[i].sameClaim(t) {
			t.ID = theses[i].ID
			t.CreatedAt = theses[i].CreatedAt
			theses[i] = t
			return s.write(theses)
		}
	}
	theses = append(theses, t)
	return s.write(theses)
}

// Remove deletes the thesis with the given id. It accepts a unique id prefix
// so users can paste the short form shown in listings.
func (s *ThesisStore) Remove(id string) error {
	theses, err := s.Load()
	if err != nil {
		return err
	}
	kept := theses[:0]
	removed := 0
	for _, t := range theses {
		if strings.HasPrefix(t.ID, id) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	switch removed {
	case 0:
		return fmt.Errorf("no thesis with id %q", id)
	case 1:
		return s.write(kept)
	default:
		return fmt.Errorf("id %q matches %d theses, give more characters", id, removed)
	}
}

// ByTicker returns the theses for one ticker, newest first.
func (s *ThesisStore) ByTicker(ticker string) ([]Thesis, error) {
	theses, err := s.Load()
	if err != nil {
		return nil, err
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	var out []Thesis
	for _, t := range theses {
		if t.Ticker == ticker {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// SetStatus moves the thesis with the given id (or unique prefix) to a new
// lifecycle status.
func (s *ThesisStore) SetStatus(id, status string) error {
	if !contains(Statuses, status) {
		return fmt.Errorf("invalid status %q, want one of %s", status, strings.Join(Statuses, ", "))
	}
	theses, err := s.Load()
	if err != nil {
		return err
	}
	var match *Thesis
	for i := range theses {
		if strings.HasPrefix(theses[i].ID, id) {
			if match != nil {
				return fmt.Errorf("id %q matches several theses, give more characters", id)
			}
			match = &theses[i]
		}
	}
	if match == nil {
		return fmt.Errorf("no thesis with id %q", id)
	}
	match.Status = status
	match.UpdatedAt = time.Now().Format(Timestamp)
	return s.write(theses)
}

func (s *ThesisStore) write(theses []Thesis) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create theses dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(theses, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode theses: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("cannot write theses file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
