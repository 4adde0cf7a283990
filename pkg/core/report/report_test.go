package report

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fairvalue/pkg/core/dcf"
)

func sampleResult() *dcf.Result {
	return &dcf.Result{
		FairValuePerShare:     42.50,
		ImpliedCAGRPct:        8.00,
		UpDownsidePct:         21.43,
		RequiredRevenueGrowth: dcf.SolveOutcome{Percent: 5.12, Converged: true},
		RequiredFCFMargin:     dcf.SolveOutcome{Percent: 12.30, Converged: true},
		RequiredDiscountRate:  dcf.SolveOutcome{Percent: 13.75, Converged: true},
	}
}

func sampleInputs() Inputs {
	return Inputs{
		Ticker:       "INTC",
		Currency:     "USD",
		Years:        7,
		MarginPct:    15.00,
		DiscountPct:  10.00,
		TerminalPct:  2.50,
		CurrentPrice: 35.00,
	}
}

func TestTextReport(t *testing.T) {
	out := Text(sampleInputs(), sampleResult())
	for _, want := range []string{
		"for next 7 years",
		"fair value for INTC stock is $42.50",
		"upside/downside is 21.43%",
		"grow at 5.12% average annual rate",
		"free cash flow margin of 12.30%",
		"13.75% annualized return",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in report:\n%s", want, out)
		}
	}
}

func TestTextReportFailedSolve(t *testing.T) {
	res := sampleResult()
	res.RequiredDiscountRate = dcf.SolveOutcome{Converged: false, Residual: 3.2}
	out := Text(sampleInputs(), res)
	if !strings.Contains(out, "you get n/a annualized return") {
		t.Errorf("failed solve should render n/a:\n%s", out)
	}
	// Other levers unaffected.
	if !strings.Contains(out, "5.12%") {
		t.Errorf("converged levers should still render:\n%s", out)
	}
}

func TestMarkdownReport(t *testing.T) {
	md, err := Markdown(sampleInputs(), sampleResult(), "Revenue Growth  10.00%\n")
	if err != nil {
		t.Fatalf("markdown render failed: %v", err)
	}
	for _, want := range []string{
		"# INTC DCF Valuation",
		"**Fair value per share:** $42.50",
		"| Revenue growth | 5.12% |",
		"Revenue Growth  10.00%",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in markdown:\n%s", want, md)
		}
	}
}

func TestWriteBatchCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	rows := []BatchRow{
		{Ticker: "INTC", Result: sampleResult(), CurrentPrice: 35.00, AssumedMarginPct: 15.00},
		{Ticker: "BADT", Err: errors.New("ticker not found")},
	}
	path, err := WriteBatchCSV(dir, "watchlist.csv", rows)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "stock" || records[0][1] != "fair_value" {
		t.Errorf("bad header: %v", records[0])
	}
	if records[1][0] != "INTC" || records[1][1] != "$42.50" {
		t.Errorf("bad result row: %v", records[1])
	}
	if records[2][0] != "BADT" || records[2][1] != "Error" {
		t.Errorf("failed ticker should carry Error marker: %v", records[2])
	}
}
