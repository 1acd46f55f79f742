package stocklens

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Thesis is one falsifiable investment claim: what you believe, what would
// prove you wrong, and by when.
type Thesis struct {
	ID                     string `json:"id"`
	Ticker                 string `json:"ticker"`
	Statement              string `json:"statement"`
	FalsificationCondition string `json:"falsification_condition"`
	Horizon                string `json:"horizon"`
	Confidence             int    `json:"confidence"`
	Status                 string `json:"status"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

// Horizons lists the valid thesis time horizons, shortest first.
var Horizons = []string{"1-3 Months", "3-6 Months", "6-12 Months", "1-3 Years"}

// Statuses lists the valid thesis lifecycle states.
var Statuses = []string{"Active", "Verified", "Falsified", "Closed"}

// NewThesis builds an Active thesis with a fresh id and timestamps.
func NewThesis(ticker, statement, falsification, horizon string, confidence int) (Thesis, error) {
	t := Thesis{
		ID:                     uuid.NewString(),
		Ticker:                 strings.ToUpper(strings.TrimSpace(ticker)),
		Statement:              strings.TrimSpace(statement),
		FalsificationCondition: strings.TrimSpace(falsification),
		Horizon:                horizon,
		Confidence:             confidence,
		Status:                 "Active",
	}
	now := time.Now().Format(Timestamp)
	t.CreatedAt, t.UpdatedAt = now, now
	return t, t.Validate()
}

// Validate checks the thesis fields against the allowed values.
func (t Thesis) Validate() error {
	if t.Ticker == "" {
		return fmt.Errorf("thesis has no ticker")
	}
	if t.Statement == "" {
		return fmt.Errorf("thesis has no statement")
	}
	if !contains(Horizons, t.Horizon) {
		return fmt.Errorf("invalid horizon %q, want one of %s", t.Horizon, strings.Join(Horizons, ", "))
	}
	if !contains(Statuses, t.Status) {
		return fmt.Errorf("invalid status %q, want one of %s", t.Status, strings.Join(Statuses, ", "))
	}
	if t.Confidence < 1 || t.Confidence > 10 {
		return fmt.Errorf("confidence %d out of range 1..10", t.Confidence)
	}
	return nil
}

// sameClaim reports whether two theses make the same claim about the same
// company. It is the store's de-duplication key.
func (t Thesis) sameClaim(o Thesis) bool {
	return strings.EqualFold(strings.TrimSpace(t.Ticker), strings.TrimSpace(o.Ticker)) &&
		strings.TrimSpace(t.Statement) == strings.TrimSpace(o.Statement)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
