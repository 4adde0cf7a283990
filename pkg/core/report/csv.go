package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fairvalue/pkg/core/dcf"
)

// BatchRow is one ticker's outcome in a batch run.
type BatchRow struct {
	Ticker           string
	Result           *dcf.Result
	CurrentPrice     float64
	AssumedMarginPct float64
	Err              error
}

var batchHeader = []string{
	"stock", "fair_value", "current_price", "upside/(downside)",
	"assumed_revenue_growth(%)", "assumed_fcf_margin (%)",
	"current_price_rev_growth (%)", "current_price_fcf_margin (%)",
	"current_price_required_return (%)",
}

// WriteBatchCSV writes batch results to a timestamped CSV under dir and
// returns the path. Rows whose valuation failed carry an Error marker in the
// fair-value column and blanks elsewhere, so one bad ticker never hides the
// rest of the run.
func WriteBatchCSV(dir, name string, rows []BatchRow) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("20060102-150405")+"_"+name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(batchHeader); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(batchRecord(row)); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

func batchRecord(row BatchRow) []string {
	if row.Err != nil || row.Result == nil {
		return []string{row.Ticker, "Error", "", "", "", "", "", "", ""}
	}
	r := row.Result
	return []string{
		row.Ticker,
		fmt.Sprintf("$%.2f", r.FairValuePerShare),
		fmt.Sprintf("$%.2f", row.CurrentPrice),
		fmt.Sprintf("%.2f%%", r.UpDownsidePct),
		fmt.Sprintf("%.2f%%", r.ImpliedCAGRPct),
		fmt.Sprintf("%.2f%%", row.AssumedMarginPct),
		solveCell(r.RequiredRevenueGrowth),
		solveCell(r.RequiredFCFMargin),
		solveCell(r.RequiredDiscountRate),
	}
}
