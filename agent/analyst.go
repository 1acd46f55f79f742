package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"stocklens"
)

// Model tiers. Structure inference and thesis work go to the pro model,
// summaries go to the cheaper flash tier.
const (
	ModelPro   = "gemini-3-pro-preview"
	ModelFlash = "gemini-3-flash-preview"
)

const baseInstruction = `You are a buy-side equity research analyst.
Be factual and concise. Ground every claim in the material provided in the
prompt; never invent figures. Format output as plain markdown without a
top-level title.`

// Analyst performs the one-shot research calls behind the dashboard
// sections. It is stateless; every call carries its own material.
type Analyst struct {
	client *genai.Client
}

// NewAnalyst connects to Gemini using the GEMINI_API_KEY environment
// variable.
func NewAnalyst(ctx context.Context) (*Analyst, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client (is GEMINI_API_KEY set?): %w", err)
	}
	return &Analyst{client: client}, nil
}

// generate runs one prompt against one model and returns the text.
func (a *Analyst) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0.2),
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: baseInstruction}}},
		})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from %s", model)
	}
	return text, nil
}

// newsContext renders articles into prompt material.
func newsContext(items []stocklens.NewsItem) string {
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. [%s, %s] %s\n%s\n\n", i+1, it.Source, it.Date, it.Title, it.Body)
	}
	if b.Len() == 0 {
		return "(no articles found)\n"
	}
	return b.String()
}

// cleanJSON strips markdown code fences the model sometimes wraps around
// JSON output.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// NewsDigest condenses recent articles into the dashboard's news summary.
func (a *Analyst) NewsDigest(ctx context.Context, name string, items []stocklens.NewsItem) (string, error) {
	prompt := fmt.Sprintf(`Summarize the recent news about %s below into at most
5 bullet points. Lead each bullet with the theme in bold. End with one line
"Overall sentiment:" qualified as positive, negative or mixed.

Articles:
%s`, name, newsContext(items))
	return a.generate(ctx, ModelFlash, prompt)
}

// Strategy synthesizes the bull case, bear case and key variance from
// earnings-call coverage.
func (a *Analyst) Strategy(ctx context.Context, name string, items []stocklens.NewsItem) (string, error) {
	prompt := fmt.Sprintf(`From the earnings coverage about %s below, write three
sections with the exact markdown headers "## Bull Case", "## Bear Case" and
"## Key Variance". 2-4 bullets each. Key Variance names the single factor
most likely to decide which case plays out.

Coverage:
%s`, name, newsContext(items))
	return a.generate(ctx, ModelPro, prompt)
}

// FinancialDrivers explains what moved revenue and margins in the latest
// quarter, combining statement figures and press coverage.
func (a *Analyst) FinancialDrivers(ctx context.Context, name string, st *stocklens.Statement, items []stocklens.NewsItem) (string, error) {
	prompt := fmt.Sprintf(`Explain the main drivers behind %s's latest quarterly
results in at most 5 bullets: what moved revenue, what moved margins, and any
one-offs. Latest-quarter figures (USD):

%s
Coverage:
%s`, name, fieldsContext(st), newsContext(items))
	return a.generate(ctx, ModelPro, prompt)
}

// Events builds a short timeline of notable recent and upcoming events.
func (a *Analyst) Events(ctx context.Context, name string, next stocklens.EarningsInfo, items []stocklens.NewsItem) (string, error) {
	calendar := "unknown"
	if next.NextEarnings != "" {
		calendar = next.NextEarnings
	}
	prompt := fmt.Sprintf(`List notable events for %s as two markdown sections
"## Recent" and "## Upcoming", at most 4 dated bullets each. The next
confirmed earnings date is %s; include it under Upcoming.

Coverage:
%s`, name, calendar, newsContext(items))
	return a.generate(ctx, ModelFlash, prompt)
}

// CoreDriver names the single metric that matters most for the company, used
// to frame the overview section.
func (a *Analyst) CoreDriver(ctx context.Context, name, summary string) (string, error) {
	prompt := fmt.Sprintf(`In one sentence, name the single business metric that
matters most for %s investors and why. Business summary:

%s`, name, summary)
	return a.generate(ctx, ModelFlash, prompt)
}

// Competitors returns the ticker symbols of the closest public competitors.
func (a *Analyst) Competitors(ctx context.Context, name, ticker string, max int) ([]string, error) {
	prompt := fmt.Sprintf(`List the %d closest publicly traded competitors of
%s (%s). Respond with ONLY a JSON array of their US ticker symbols, e.g.
["MSFT", "GOOGL"]. No commentary, no markdown.`, max, name, ticker)
	out, err := a.generate(ctx, ModelFlash, prompt)
	if err != nil {
		return nil, err
	}
	var tickers []string
	if err := json.Unmarshal([]byte(cleanJSON(out)), &tickers); err != nil {
		return nil, fmt.Errorf("competitor list is not valid JSON: %w", err)
	}
	cleaned := tickers[:0]
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" && t != strings.ToUpper(ticker) {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) > max {
		cleaned = cleaned[:max]
	}
	return cleaned, nil
}

// BrandingKeywords returns search terms associated with a company: parent
// company, flagship products, alternative tickers. Used to widen a news
// search that came back thin.
func (a *Analyst) BrandingKeywords(ctx context.Context, name, ticker string) ([]string, error) {
	prompt := fmt.Sprintf(`For %s (%s), list its parent company name, its top 3
product or brand names, and any alternative ticker symbols. Respond with ONLY
a comma-separated list of the terms. No commentary, no markdown.`, name, ticker)
	out, err := a.generate(ctx, ModelFlash, prompt)
	if err != nil {
		return nil, err
	}
	var keywords []string
	for _, k := range strings.Split(cleanJSON(out), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}

// Segments extracts the latest revenue split by segment from coverage.
// Values are billions of USD.
func (a *Analyst) Segments(ctx context.Context, name string, items []stocklens.NewsItem) ([]stocklens.Segment, error) {
	prompt := fmt.Sprintf(`Extract %s's revenue by segment for the latest
reported quarter from the coverage below. Respond with ONLY a JSON array of
objects {"label": string, "value": number, "growth": string} where value is
billions of USD and growth is the year-over-year change like "+12%%" (empty
string if unknown). Return [] if the coverage does not state a segment split.
No commentary, no markdown.

Coverage:
%s`, name, newsContext(items))
	out, err := a.generate(ctx, ModelPro, prompt)
	if err != nil {
		return nil, err
	}
	var segments []stocklens.Segment
	if err := json.Unmarshal([]byte(cleanJSON(out)), &segments); err != nil {
		return nil, fmt.Errorf("segment split is not valid JSON: %w", err)
	}
	kept := segments[:0]
	for _, s := range segments {
		if s.Label != "" && s.Value > 0 {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

// thesisDraft is the JSON shape the thesis prompts request.
type thesisDraft struct {
	Statement              string `json:"statement"`
	FalsificationCondition string `json:"falsification_condition"`
	Horizon                string `json:"horizon"`
	Confidence             int    `json:"confidence"`
}

// GenerateThesis drafts a falsifiable investment thesis from research
// material gathered by the dashboard.
func (a *Analyst) GenerateThesis(ctx context.Context, name, ticker, material string) (stocklens.Thesis, error) {
	prompt := fmt.Sprintf(`Draft one falsifiable investment thesis for %s (%s)
from the research material below. Respond with ONLY a JSON object
{"statement": string, "falsification_condition": string, "horizon": string,
"confidence": number}. The statement is one specific, measurable claim. The
falsification condition names the observable outcome that would disprove it.
Horizon is exactly one of %q. Confidence is an integer 1-10. No commentary,
no markdown.

Material:
%s`, name, ticker, stocklens.Horizons, material)
	out, err := a.generate(ctx, ModelPro, prompt)
	if err != nil {
		return stocklens.Thesis{}, err
	}
	var draft thesisDraft
	if err := json.Unmarshal([]byte(cleanJSON(out)), &draft); err != nil {
		return stocklens.Thesis{}, fmt.Errorf("thesis draft is not valid JSON: %w", err)
	}
	return stocklens.NewThesis(ticker, draft.Statement, draft.FalsificationCondition, draft.Horizon, draft.Confidence)
}

// RefineThesis rewrites an existing thesis according to user feedback,
// keeping it falsifiable.
func (a *Analyst) RefineThesis(ctx context.Context, t stocklens.Thesis, feedback string) (stocklens.Thesis, error) {
	current, _ := json.Marshal(thesisDraft{
		Statement:              t.Statement,
		FalsificationCondition: t.FalsificationCondition,
		Horizon:                t.Horizon,
		Confidence:             t.Confidence,
	})
	prompt := fmt.Sprintf(`Refine this investment thesis for %s according to the
feedback. Keep it one specific, measurable claim with an observable
falsification condition. Respond with ONLY the same JSON shape. Horizon is
exactly one of %q.

Current thesis:
%s

Feedback:
%s`, t.Ticker, stocklens.Horizons, current, feedback)
	out, err := a.generate(ctx, ModelPro, prompt)
	if err != nil {
		return stocklens.Thesis{}, err
	}
	var draft thesisDraft
	if err := json.Unmarshal([]byte(cleanJSON(out)), &draft); err != nil {
		return stocklens.Thesis{}, fmt.Errorf("refined thesis is not valid JSON: %w", err)
	}
	refined := t
	refined.Statement = draft.Statement
	refined.FalsificationCondition = draft.FalsificationCondition
	refined.Horizon = draft.Horizon
	refined.Confidence = draft.Confidence
	return refined, refined.Validate()
}

// InferStructure asks the model for a flow structure matching an unfamiliar
// statement shape. The caller repairs and caches the result.
func (a *Analyst) InferStructure(ctx context.Context, name string, fields map[string]float64) (*stocklens.SankeyStructure, error) {
	prompt := fmt.Sprintf(`Design an income-statement flow diagram for %s from
its latest quarterly figures below. Respond with ONLY a JSON object
{"nodes": [{"name": string, "layer": number}], "links": [{"source": string,
"target": string, "field": string}], "field_mapping": {string: string}}.

Rules:
- at most 10 nodes; layer 0 is revenue, higher layers flow right
- every link's "field" must be EXACTLY one of the field names given below
- every link must point from a lower layer to a higher layer
- for banks use net interest income plus fee income; for insurers use
  premiums earned plus investment income as the revenue sources
- field_mapping maps each node name to the statement field it displays

Fields (USD):
%s`, name, fieldsList(fields))
	out, err := a.generate(ctx, ModelPro, prompt)
	if err != nil {
		return nil, err
	}
	var s stocklens.SankeyStructure
	if err := json.Unmarshal([]byte(cleanJSON(out)), &s); err != nil {
		return nil, fmt.Errorf("inferred structure is not valid JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("inferred structure is unusable: %w", err)
	}
	return &s, nil
}

// fieldsContext renders the latest-quarter statement rows for a prompt.
func fieldsContext(st *stocklens.Statement) string {
	if st == nil {
		return "(no statement data)\n"
	}
	return fieldsList(st.LatestFields())
}

// fieldsList renders field -> value lines in a stable order.
func fieldsList(fields map[string]float64) string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "- %s: %s\n", n, stocklens.FormatLargeNumber(fields[n]))
	}
	if b.Len() == 0 {
		return "(no figures available)\n"
	}
	return b.String()
}
