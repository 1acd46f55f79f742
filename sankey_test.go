package stocklens

import (
	"fmt"
	"strings"
	"testing"
)

func testStatement() *Statement {
	return &Statement{
		Periods: []string{"2025-06-30", "2025-03-31"},
		Rows: map[string][]float64{
			"Total Revenue":                      {90_000e6, 85_000e6},
			"Cost Of Revenue":                    {-34_000e6, -33_000e6}, // sign-flipped on purpose
			"Gross Profit":                       {56_000e6, 52_000e6},
			"Research And Development":           {8_000e6, 7_500e6},
			"Selling General And Administration": {6_500e6, 6_200e6},
			"Operating Expense":                  {16_000e6, 15_000e6},
			"Operating Income":                   {40_000e6, 37_000e6},
			"Tax Provision":                      {6_000e6, 5_500e6},
			"Net Income":                         {34_000e6, 31_500e6},
		},
	}
}

func TestBuildSankey_Default(t *testing.T) {
	st := testStatement()
	d, err := BuildSankey(DefaultSankeyStructure(), st, nil)
	if err != nil {
		t.Fatalf("BuildSankey() error = %v", err)
	}

	// Sign-flipped cost of revenue must come through as a positive flow.
	found := false
	for _, f := range d.Flows() {
		if f.Source == "Total Revenue" && f.Target == "Cost of Revenue" {
			found = true
			if f.Value != 34_000e6 {
				t.Errorf("Cost of Revenue flow = %g, want %g", f.Value, 34_000e6)
			}
		}
		if f.Value <= 0 {
			t.Errorf("rendered non-positive flow %s -> %s = %g", f.Source, f.Target, f.Value)
		}
	}
	if !found {
		t.Errorf("no Cost of Revenue flow in %v", d.Flows())
	}
}

func TestBuildSankey_ResidualOpex(t *testing.T) {
	// Itemized R&D (8B) + SG&A (6.5B) do not cover Operating Expense (16B):
	// the remaining 1.5B must show up as Other OpEx.
	d, err := BuildSankey(DefaultSankeyStructure(), testStatement(), nil)
	if err != nil {
		t.Fatalf("BuildSankey() error = %v", err)
	}
	for _, f := range d.Flows() {
		if f.Target == "Other OpEx" {
			if f.Source != "Gross Profit" {
				t.Errorf("Other OpEx fed from %q, want Gross Profit", f.Source)
			}
			if f.Value != 1_500e6 {
				t.Errorf("Other OpEx = %g, want %g", f.Value, 1_500e6)
			}
			return
		}
	}
	t.Errorf("no Other OpEx flow in %v", d.Flows())
}

func TestBuildSankey_Segments(t *testing.T) {
	segments := []Segment{
		{Label: "Cloud", Value: 60, Growth: "+12%"},
		{Label: "Devices", Value: 30, Growth: "-2%"},
		{Label: "", Value: 5}, // unlabeled, must be skipped
	}
	d, err := BuildSankey(DefaultSankeyStructure(), testStatement(), segments)
	if err != nil {
		t.Fatalf("BuildSankey() error = %v", err)
	}
	var got []string
	for _, f := range d.Flows() {
		if f.Target == "Total Revenue" {
			got = append(got, f.Source)
			if f.Value != 60e9 && f.Value != 30e9 {
				t.Errorf("segment flow %s = %g, want billions", f.Source, f.Value)
			}
		}
	}
	if len(got) != 2 {
		t.Errorf("segment flows = %v, want [Cloud Devices]", got)
	}
}

func TestBuildSankey_Errors(t *testing.T) {
	if _, err := BuildSankey(DefaultSankeyStructure(), nil, nil); err == nil {
		t.Errorf("BuildSankey(nil statement) want error")
	}
	empty := &Statement{Periods: []string{"2025-06-30"}, Rows: map[string][]float64{}}
	if _, err := BuildSankey(DefaultSankeyStructure(), empty, nil); err == nil {
		t.Errorf("BuildSankey(empty statement) want error")
	}
}

func TestRepair(t *testing.T) {
	st := testStatement()
	s := &SankeyStructure{
		Nodes: []SankeyNode{
			{Name: "Total Revenue", Layer: 0},
			{Name: "Gross Profit", Layer: 1},
			{Name: "Gross Profit", Layer: 2}, // duplicate
			{Name: "Net Income", Layer: 0},   // backward target
			{Name: "Orphan", Layer: 3},
		},
		Links: []SankeyLink{
			{Source: "Total Revenue", Target: "Gross Profit", Field: "Gross Profit"},
			{Source: "Total Revenue", Target: "Gross Profit", Field: "Gross Profit"}, // duplicate
			{Source: "Gross Profit", Target: "Gross Profit", Field: "Gross Profit"},  // self loop
			{Source: "Gross Profit", Target: "Net Income", Field: "Net Income"},
			{Source: "Gross Profit", Target: "Ghost", Field: "Net Income"},               // unknown node
			{Source: "Total Revenue", Target: "Orphan", Field: "No Such Statement Row"}, // unresolvable field
		},
	}
	r := s.Repair(st)

	if len(r.Links) != 2 {
		t.Fatalf("Repair() kept %d links %v, want 2", len(r.Links), r.Links)
	}
	layers := make(map[string]int)
	for _, n := range r.Nodes {
		if _, dup := layers[n.Name]; dup {
			t.Errorf("Repair() kept duplicate node %q", n.Name)
		}
		layers[n.Name] = n.Layer
	}
	if _, ok := layers["Orphan"]; ok {
		t.Errorf("Repair() kept unlinked node Orphan")
	}
	for _, l := range r.Links {
		if layers[l.Target] <= layers[l.Source] {
			t.Errorf("Repair() left backward link %s(%d) -> %s(%d)",
				l.Source, layers[l.Source], l.Target, layers[l.Target])
		}
	}
}

func TestRepair_NodeCap(t *testing.T) {
	// 12 branches off revenue, each carrying i millions. The two smallest
	// must be shed to stay within the node cap.
	st := &Statement{Periods: []string{"2025-06-30"}, Rows: map[string][]float64{}}
	s := &SankeyStructure{Nodes: []SankeyNode{{Name: "Total Revenue", Layer: 0}}}
	for i := 1; i <= 11; i++ {
		field := fmt.Sprintf("Flow %02d", i)
		st.Rows[field] = []float64{float64(i) * 1e6}
		s.Nodes = append(s.Nodes, SankeyNode{Name: fmt.Sprintf("Branch %02d", i), Layer: 1})
		s.Links = append(s.Links, SankeyLink{Source: "Total Revenue", Target: fmt.Sprintf("Branch %02d", i), Field: field})
	}

	r := s.Repair(st)
	if len(r.Nodes) != maxSankeyNodes {
		t.Fatalf("Repair() kept %d nodes, want %d", len(r.Nodes), maxSankeyNodes)
	}
	kept := make(map[string]bool)
	for _, n := range r.Nodes {
		kept[n.Name] = true
	}
	if kept["Branch 01"] || kept["Branch 02"] {
		t.Errorf("Repair() kept the smallest branches: %v", kept)
	}
	if !kept["Total Revenue"] || !kept["Branch 11"] {
		t.Errorf("Repair() shed a large node: %v", kept)
	}
}

func TestRepair_Cycle(t *testing.T) {
	s := &SankeyStructure{
		Nodes: []SankeyNode{{Name: "A", Layer: 0}, {Name: "B", Layer: 1}},
		Links: []SankeyLink{
			{Source: "A", Target: "B"},
			{Source: "B", Target: "A"},
		},
	}
	r := s.Repair(nil)
	if len(r.Links) != 1 {
		t.Fatalf("Repair() kept %d links %v, want 1 from the cycle", len(r.Links), r.Links)
	}
	layers := make(map[string]int)
	for _, n := range r.Nodes {
		layers[n.Name] = n.Layer
	}
	l := r.Links[0]
	if layers[l.Target] <= layers[l.Source] {
		t.Errorf("Repair() left backward link %s(%d) -> %s(%d)",
			l.Source, layers[l.Source], l.Target, layers[l.Target])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       SankeyStructure
		wantErr bool
	}{
		{name: "default", s: *DefaultSankeyStructure(), wantErr: false},
		{name: "no nodes", s: SankeyStructure{Links: []SankeyLink{{Source: "a", Target: "b"}}}, wantErr: true},
		{name: "no links", s: SankeyStructure{Nodes: []SankeyNode{{Name: "a"}}}, wantErr: true},
		{
			name: "duplicate node",
			s: SankeyStructure{
				Nodes: []SankeyNode{{Name: "a"}, {Name: "a"}},
				Links: []SankeyLink{{Source: "a", Target: "a"}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNodeColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Total Revenue", colorRevenue},
		{"Cost of Revenue", colorCost},
		{"Tax", colorCost},
		{"R&D", colorOpex},
		{"SG&A", colorOpex},
		{"Gross Profit", colorProfit},
		{"Operating Income", colorProfit},
		{"Net Income", colorNet},
		{"Something Else", colorGrey},
	}
	for _, tt := range tests {
		if got := nodeColor(tt.name); got != tt.want {
			t.Errorf("nodeColor(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestRGBA(t *testing.T) {
	if got := rgba("#2E86C1", 0.3); got != "rgba(46, 134, 193, 0.3)" {
		t.Errorf("rgba() = %q", got)
	}
	if got := rgba("nonsense", 0.3); !strings.HasPrefix(got, "rgba(") {
		t.Errorf("rgba(nonsense) = %q, want an rgba fallback", got)
	}
}
