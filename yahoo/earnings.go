package yahoo

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"stocklens"
)

// EarningsHistory fetches the reported EPS of the last quarters, the input
// for trailing-earnings valuation bands. Quarters with no reported figure
// (future reports) are skipped.
func (c *Client) EarningsHistory(ctx context.Context, ticker string) ([]stocklens.EarningsPoint, error) {
	jobj, err := c.quoteSummary(ctx, ticker, "earningsHistory")
	if err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(result+".earningsHistory.history", jobj)
	if err != nil {
		return nil, fmt.Errorf("no earnings history for %q: %w", ticker, err)
	}
	quarters, ok := jval.([]any)
	if !ok || len(quarters) == 0 {
		return nil, fmt.Errorf("no earnings history for %q", ticker)
	}

	var points []stocklens.EarningsPoint
	for _, jq := range quarters {
		q, ok := jq.(map[string]any)
		if !ok {
			continue
		}
		quarter := rawFmt(q, "quarter")
		if quarter == "" {
			continue
		}
		if wrapped, ok := q["epsActual"].(map[string]any); !ok || wrapped["raw"] == nil {
			continue
		}
		points = append(points, stocklens.EarningsPoint{
			Quarter: quarter,
			EPS:     rawVal(q, "epsActual"),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no reported earnings for %q", ticker)
	}
	return points, nil
}
