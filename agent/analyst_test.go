package agent

import (
	"encoding/json"
	"strings"
	"testing"

	"stocklens"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "fenced", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fenced no lang", in: "```\n[1, 2]\n```", want: `[1, 2]`},
		{name: "surrounding space", in: "  {\"a\": 1}\n", want: `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSON(tt.in); got != tt.want {
				t.Errorf("cleanJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanJSON_ModelOutputs(t *testing.T) {
	// typical fenced structure output must decode after cleaning
	out := "```json\n{\"nodes\": [{\"name\": \"Total Revenue\", \"layer\": 0}], \"links\": [{\"source\": \"Total Revenue\", \"target\": \"Gross Profit\", \"field\": \"Gross Profit\"}]}\n```"
	var s stocklens.SankeyStructure
	if err := json.Unmarshal([]byte(cleanJSON(out)), &s); err != nil {
		t.Fatalf("Unmarshal(cleanJSON()) error = %v", err)
	}
	if len(s.Nodes) != 1 || s.Nodes[0].Name != "Total Revenue" {
		t.Errorf("structure = %+v", s)
	}
}

func TestNewsContext(t *testing.T) {
	items := []stocklens.NewsItem{
		{Title: "Acme beats", Source: "Newswire", Date: "2025-08-29 10:00:00", Body: "Strong quarter"},
	}
	got := newsContext(items)
	for _, want := range []string{"1.", "Newswire", "Acme beats", "Strong quarter"} {
		if !strings.Contains(got, want) {
			t.Errorf("newsContext() = %q, missing %q", got, want)
		}
	}
	if got := newsContext(nil); !strings.Contains(got, "no articles") {
		t.Errorf("newsContext(nil) = %q", got)
	}
}

func TestFieldsList(t *testing.T) {
	got := fieldsList(map[string]float64{
		"Total Revenue": 90e9,
		"Net Income":    34e9,
	})
	// stable order, compacted values
	if !strings.Contains(got, "- Net Income: $34.00B") || !strings.Contains(got, "- Total Revenue: $90.00B") {
		t.Errorf("fieldsList() = %q", got)
	}
	if strings.Index(got, "Net Income") > strings.Index(got, "Total Revenue") {
		t.Errorf("fieldsList() not sorted: %q", got)
	}
	if got := fieldsList(nil); !strings.Contains(got, "no figures") {
		t.Errorf("fieldsList(nil) = %q", got)
	}
}
