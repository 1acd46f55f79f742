package yahoo

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"stocklens"
)

// Quarterly statement rows, provider field -> canonical row label. The
// canonical labels are the ones the flow builder and the financial tables
// look up.
var incomeFields = map[string]string{
	"totalRevenue":                 "Total Revenue",
	"costOfRevenue":                "Cost Of Revenue",
	"grossProfit":                  "Gross Profit",
	"researchDevelopment":          "Research And Development",
	"sellingGeneralAdministrative": "Selling General And Administration",
	"operatingIncome":              "Operating Income",
	"incomeTaxExpense":             "Tax Provision",
	"interestExpense":              "Interest Expense",
	"ebit":                         "EBIT",
	"netIncome":                    "Net Income",
}

var cashflowFields = map[string]string{
	"totalCashFromOperatingActivities": "Operating Cash Flow",
	"capitalExpenditures":              "Capital Expenditure",
	"netIncome":                        "Net Income",
}

// QuarterlyIncome fetches the quarterly income statements, newest first.
func (c *Client) QuarterlyIncome(ctx context.Context, ticker string) (*stocklens.Statement, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "incomeStatementHistoryQuarterly")
	if err != nil {
		return nil, err
	}
	st, err := buildStatement(jobj,
		result+".incomeStatementHistoryQuarterly.incomeStatementHistory", incomeFields)
	if err != nil {
		return nil, fmt.Errorf("no quarterly income statement for %q: %w", ticker, err)
	}
	deriveOperatingExpense(st)
	return st, nil
}

// QuarterlyCashflow fetches the quarterly cash flow statements, newest first.
func (c *Client) QuarterlyCashflow(ctx context.Context, ticker string) (*stocklens.Statement, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "cashflowStatementHistoryQuarterly")
	if err != nil {
		return nil, err
	}
	st, err := buildStatement(jobj,
		result+".cashflowStatementHistoryQuarterly.cashflowStatements", cashflowFields)
	if err != nil {
		return nil, fmt.Errorf("no quarterly cash flow statement for %q: %w", ticker, err)
	}
	return st, nil
}

// buildStatement turns a list of per-quarter statement objects into a
// Statement, keeping only mapped fields. Quarters come newest first from the
// provider, which is also the statement's order.
func buildStatement(jobj any, path string, fields map[string]string) (*stocklens.Statement, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	quarters, ok := jval.([]any)
	if !ok || len(quarters) == 0 {
		return nil, fmt.Errorf("empty statement history")
	}

	st := &stocklens.Statement{Rows: make(map[string][]float64)}
	for _, label := range fields {
		st.Rows[label] = make([]float64, 0, len(quarters))
	}
	for _, jq := range quarters {
		q, ok := jq.(map[string]any)
		if !ok {
			continue
		}
		st.Periods = append(st.Periods, rawFmt(q, "endDate"))
		for field, label := range fields {
			st.Rows[label] = append(st.Rows[label], rawVal(q, field))
		}
	}
	// drop rows the provider never filled
	for label, values := range st.Rows {
		all := true
		for _, v := range values {
			if v != 0 {
				all = false
				break
			}
		}
		if all {
			delete(st.Rows, label)
		}
	}
	if len(st.Periods) == 0 || len(st.Rows) == 0 {
		return nil, fmt.Errorf("empty statement history")
	}
	return st, nil
}

// deriveOperatingExpense adds an "Operating Expense" row (without cost of
// revenue, the way screeners report it) when it can be derived. Yahoo's own
// totalOperatingExpenses includes COGS and would double-count.
func deriveOperatingExpense(st *stocklens.Statement) {
	gp, okGP := st.Rows["Gross Profit"]
	oi, okOI := st.Rows["Operating Income"]
	if !okGP || !okOI || len(gp) != len(oi) {
		return
	}
	opex := make([]float64, len(gp))
	for i := range gp {
		opex[i] = gp[i] - oi[i]
	}
	st.Rows["Operating Expense"] = opex
}

// rawVal reads an {"raw": n, "fmt": "..."} wrapped number field.
func rawVal(obj map[string]any, field string) float64 {
	wrapped, ok := obj[field].(map[string]any)
	if !ok {
		return 0
	}
	v, _ := wrapped["raw"].(float64)
	return v
}

// rawFmt reads the formatted form of a wrapped field, e.g. an endDate as
// "2025-06-30".
func rawFmt(obj map[string]any, field string) string {
	wrapped, ok := obj[field].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := wrapped["fmt"].(string)
	return s
}
