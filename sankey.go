package stocklens

import (
	"fmt"
	"sort"
	"strings"
)

// This file implements the income-statement flow builder: it turns a flow
// structure (nodes, directed links, field mapping) and a financial statement
// into a renderable Sankey diagram. Structures come from three places, in
// order: the per-ticker structure cache, AI inference over the statement's
// raw fields, and the classic default topology below.
//
// Statements are inconsistently labeled and sign-inconsistent across
// providers: links are resolved with fuzzy row lookup, values are folded to
// magnitudes, and non-positive flows are never rendered.

// SankeyNode is a named node placed on a layer of the flow diagram.
// Layer 0 holds revenue sources, the last layer the final bottom line.
type SankeyNode struct {
	Name  string `json:"name"`
	Layer int    `json:"layer"`
}

// SankeyLink is a directed flow between two named nodes. Field names the
// statement row the flow's value is read from.
type SankeyLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Field  string `json:"field"`
}

// SankeyStructure is the cached (or AI-inferred) shape of a ticker's
// income-statement flow.
type SankeyStructure struct {
	Nodes []SankeyNode `json:"nodes"`
	Links []SankeyLink `json:"links"`
	// FieldMapping maps display names to raw statement row labels.
	FieldMapping map[string]string `json:"field_mapping,omitempty"`
}

// Segment is one AI-extracted revenue segment, value in billions USD.
type Segment struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Growth string  `json:"growth"`
}

// SankeyDiagram is the renderable result: parallel node and link arrays in
// the classic plotly sankey layout.
type SankeyDiagram struct {
	Labels     []string  `json:"label"`
	Colors     []string  `json:"color"`
	Sources    []int     `json:"source"`
	Targets    []int     `json:"target"`
	Values     []float64 `json:"value"`
	LinkColors []string  `json:"link_color"`
	Tooltips   []string  `json:"custom_data"`
}

// Flow is one resolved diagram link in named form, for rendering.
type Flow struct {
	Source string
	Target string
	Value  float64
}

// Flows returns the diagram links in named form.
func (d *SankeyDiagram) Flows() []Flow {
	out := make([]Flow, len(d.Sources))
	for i := range d.Sources {
		out[i] = Flow{
			Source: d.Labels[d.Sources[i]],
			Target: d.Labels[d.Targets[i]],
			Value:  d.Values[i],
		}
	}
	return out
}

// Node color palette, App Economy style: blue revenue, green profit,
// red costs, orange opex.
const (
	colorRevenue = "#2E86C1"
	colorSegment = "#5DADE2"
	colorCost    = "#E74C3C"
	colorProfit  = "#28B463"
	colorOpex    = "#F39C12"
	colorNet     = "#1E8449"
	colorGrey    = "#95A5A6"
)

// DefaultSankeyStructure returns the classic income-statement topology used
// when no cached structure exists and inference is unavailable.
func DefaultSankeyStructure() *SankeyStructure {
	return &SankeyStructure{
		Nodes: []SankeyNode{
			{Name: "Total Revenue", Layer: 0},
			{Name: "Cost of Revenue", Layer: 1},
			{Name: "Gross Profit", Layer: 1},
			{Name: "R&D", Layer: 2},
			{Name: "SG&A", Layer: 2},
			{Name: "Operating Income", Layer: 2},
			{Name: "Tax", Layer: 3},
			{Name: "Net Income", Layer: 3},
		},
		Links: []SankeyLink{
			{Source: "Total Revenue", Target: "Cost of Revenue", Field: "Cost Of Revenue"},
			{Source: "Total Revenue", Target: "Gross Profit", Field: "Gross Profit"},
			{Source: "Gross Profit", Target: "R&D", Field: "Research And Development"},
			{Source: "Gross Profit", Target: "SG&A", Field: "Selling General And Administration"},
			{Source: "Gross Profit", Target: "Operating Income", Field: "Operating Income"},
			{Source: "Operating Income", Target: "Tax", Field: "Tax Provision"},
			{Source: "Operating Income", Target: "Net Income", Field: "Net Income"},
		},
		FieldMapping: map[string]string{
			"Total Revenue":    "Total Revenue",
			"Cost of Revenue":  "Cost Of Revenue",
			"Gross Profit":     "Gross Profit",
			"R&D":              "Research And Development",
			"SG&A":             "Selling General And Administration",
			"Operating Income": "Operating Income",
			"Tax":              "Tax Provision",
			"Net Income":       "Net Income",
		},
	}
}

// Validate reports whether the structure is usable at all. Repair fixes what
// it can; Validate rejects what it cannot.
func (s *SankeyStructure) Validate() error {
	if len(s.Nodes) == 0 {
		return fmt.Errorf("sankey structure has no nodes")
	}
	if len(s.Links) == 0 {
		return fmt.Errorf("sankey structure has no links")
	}
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Name == "" {
			return fmt.Errorf("sankey structure has an unnamed node")
		}
		if seen[n.Name] {
			return fmt.Errorf("sankey structure defines node %q twice", n.Name)
		}
		seen[n.Name] = true
	}
	return nil
}

// field resolves the statement row label a link reads from: the link's own
// field first, then the target's mapping entry, then the target name itself.
func (s *SankeyStructure) field(l SankeyLink) string {
	if l.Field != "" {
		return l.Field
	}
	if f, ok := s.FieldMapping[l.Target]; ok && f != "" {
		return f
	}
	return l.Target
}

// Repair returns a cleaned copy of the structure, fit for building against
// the given statement:
//
//   - self loops, duplicate links and links with unknown endpoints are dropped
//   - links whose field matches no statement row are dropped
//   - backward links (target layer <= source layer) are kept, the target is
//     pushed to the next layer instead; links still backward after that are
//     part of a cycle and are dropped
//   - the node count is capped at maxSankeyNodes, shedding the smallest flows
//   - nodes left without any link are dropped
//
// AI-inferred structures routinely need one or more of these.
func (s *SankeyStructure) Repair(st *Statement) *SankeyStructure {
	layers := make(map[string]int, len(s.Nodes))
	order := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, dup := layers[n.Name]; dup {
			continue
		}
		layers[n.Name] = n.Layer
		order = append(order, n.Name)
	}

	type edge struct{ src, tgt string }
	seenLink := make(map[edge]bool)
	links := make([]SankeyLink, 0, len(s.Links))
	for _, l := range s.Links {
		if l.Source == l.Target {
			continue
		}
		if _, ok := layers[l.Source]; !ok {
			continue
		}
		if _, ok := layers[l.Target]; !ok {
			continue
		}
		if seenLink[edge{l.Source, l.Target}] {
			continue
		}
		if st != nil {
			if _, ok := st.Row(s.field(l)); !ok {
				continue
			}
		}
		seenLink[edge{l.Source, l.Target}] = true
		links = append(links, l)
	}

	// Relax layers until every link points forward. Bounded by the node
	// count: an acyclic link set settles within that many passes, a cycle
	// never does and leaves a backward link behind.
	for range order {
		moved := false
		for _, l := range links {
			if layers[l.Target] <= layers[l.Source] {
				layers[l.Target] = layers[l.Source] + 1
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	// Whatever still points backward sits on a cycle; drop it.
	forward := links[:0]
	for _, l := range links {
		if layers[l.Target] > layers[l.Source] {
			forward = append(forward, l)
		}
	}
	links = forward

	links = s.capNodes(st, order, layers, links)

	used := make(map[string]bool)
	for _, l := range links {
		used[l.Source] = true
		used[l.Target] = true
	}
	nodes := make([]SankeyNode, 0, len(order))
	for _, name := range order {
		if used[name] {
			nodes = append(nodes, SankeyNode{Name: name, Layer: layers[name]})
		}
	}

	return &SankeyStructure{Nodes: nodes, Links: links, FieldMapping: s.FieldMapping}
}

// maxSankeyNodes bounds the diagram size; past this a flow chart stops
// reading as one.
const maxSankeyNodes = 10

// capNodes enforces maxSankeyNodes by shedding the nodes carrying the least
// flow, deepest layer first, and the links touching them.
func (s *SankeyStructure) capNodes(st *Statement, order []string, layers map[string]int, links []SankeyLink) []SankeyLink {
	used := make(map[string]bool)
	for _, l := range links {
		used[l.Source] = true
		used[l.Target] = true
	}
	count := 0
	for _, name := range order {
		if used[name] {
			count++
		}
	}
	if count <= maxSankeyNodes {
		return links
	}

	weight := make(map[string]float64, count)
	for _, l := range links {
		v := 0.0
		if st != nil {
			v = st.LatestAbs(s.field(l))
		}
		weight[l.Source] += v
		weight[l.Target] += v
	}
	candidates := make([]string, 0, count)
	for _, name := range order {
		if used[name] {
			candidates = append(candidates, name)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if weight[a] != weight[b] {
			return weight[a] < weight[b]
		}
		return layers[a] > layers[b]
	})

	dropped := make(map[string]bool)
	for _, name := range candidates[:count-maxSankeyNodes] {
		dropped[name] = true
	}
	kept := links[:0]
	for _, l := range links {
		if dropped[l.Source] || dropped[l.Target] {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// nodeColor classifies a node name into the palette role.
func nodeColor(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "net income"):
		return colorNet
	case strings.Contains(n, "revenue") && !strings.Contains(n, "cost"):
		return colorRevenue
	case strings.Contains(n, "cost") || strings.Contains(n, "cogs") ||
		strings.Contains(n, "tax") || strings.Contains(n, "interest expense"):
		return colorCost
	case strings.Contains(n, "r&d") || strings.Contains(n, "research") ||
		strings.Contains(n, "sg&a") || strings.Contains(n, "selling") ||
		strings.Contains(n, "marketing") || strings.Contains(n, "opex") ||
		strings.Contains(n, "operating expense"):
		return colorOpex
	case strings.Contains(n, "profit") || strings.Contains(n, "income"):
		return colorProfit
	default:
		return colorGrey
	}
}

// rgba converts a palette hex color to a translucent rgba() link color.
func rgba(hex string, alpha float64) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Sprintf("rgba(180, 180, 180, %.1f)", alpha)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.1f)", r, g, b, alpha)
}

// BuildSankey resolves a structure against a statement and optional revenue
// segments into a renderable diagram. It returns an error when nothing at
// all can be rendered.
func BuildSankey(structure *SankeyStructure, st *Statement, segments []Segment) (*SankeyDiagram, error) {
	if st == nil || len(st.Periods) == 0 {
		return nil, fmt.Errorf("no income statement data")
	}
	if structure == nil {
		structure = DefaultSankeyStructure()
	}
	repaired := structure.Repair(st)

	d := &SankeyDiagram{}
	index := make(map[string]int)
	getIdx := func(name, color string) int {
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(d.Labels)
		d.Labels = append(d.Labels, name)
		d.Colors = append(d.Colors, color)
		return index[name]
	}
	addLink := func(src, srcColor, tgt, tgtColor string, val float64, linkColor string) {
		// never render a non-positive flow
		if val <= 0 {
			return
		}
		s := getIdx(src, srcColor)
		t := getIdx(tgt, tgtColor)
		d.Sources = append(d.Sources, s)
		d.Targets = append(d.Targets, t)
		d.Values = append(d.Values, val)
		if linkColor == "" {
			linkColor = "rgba(180, 180, 180, 0.5)"
		}
		d.LinkColors = append(d.LinkColors, linkColor)
		d.Tooltips = append(d.Tooltips, FormatLargeNumber(val))
	}

	// Revenue segments feed the revenue node from the left.
	if revenue, ok := revenueNode(repaired); ok {
		for _, seg := range segments {
			if seg.Label == "" {
				continue
			}
			addLink(seg.Label, colorSegment, revenue, nodeColor(revenue),
				seg.Value*1e9, rgba(colorSegment, 0.3))
		}
	}

	for _, l := range repaired.Links {
		val := st.LatestAbs(repaired.field(l))
		addLink(l.Source, nodeColor(l.Source), l.Target, nodeColor(l.Target),
			val, rgba(nodeColor(l.Target), 0.3))
	}

	addResidualOpex(d, repaired, st, addLink)

	if len(d.Values) == 0 {
		return nil, fmt.Errorf("no renderable flows in statement")
	}
	return d, nil
}

// revenueNode picks the node segments should feed: the first node named like
// revenue on the lowest layer.
func revenueNode(s *SankeyStructure) (string, bool) {
	best, bestLayer := "", 0
	for _, n := range s.Nodes {
		if !strings.Contains(strings.ToLower(n.Name), "revenue") {
			continue
		}
		if best == "" || n.Layer < bestLayer {
			best, bestLayer = n.Name, n.Layer
		}
	}
	return best, best != ""
}

// addResidualOpex derives an "Other OpEx" flow when the statement's total
// operating expense exceeds the itemized expense flows out of Gross Profit.
// Without it the diagram silently under-reports spend for companies that
// itemize only part of their OpEx.
func addResidualOpex(d *SankeyDiagram, s *SankeyStructure, st *Statement,
	addLink func(src, srcColor, tgt, tgtColor string, val float64, linkColor string)) {

	const from = "Gross Profit"
	opex, ok := st.Latest("Operating Expense")
	if !ok {
		return
	}
	if opex < 0 {
		opex = -opex
	}

	covered := 0.0
	found := false
	for _, l := range s.Links {
		if l.Source != from {
			continue
		}
		found = true
		if nodeColor(l.Target) == colorOpex {
			covered += st.LatestAbs(s.field(l))
		}
	}
	if !found {
		return
	}
	if remaining := opex - covered; remaining > 0 {
		addLink(from, nodeColor(from), "Other OpEx", colorOpex, remaining, rgba(colorOpex, 0.3))
	}
}
