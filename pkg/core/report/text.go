// Package report renders valuation results for humans: the console block of
// the single-ticker tool, a markdown report for the HTTP API, and the batch
// results CSV. The engine itself never formats anything.
package report

import (
	"fmt"
	"strings"

	"fairvalue/pkg/core/dcf"
)

// Inputs carries the request context needed to narrate a result.
type Inputs struct {
	Ticker       string
	Currency     string
	Years        int
	MarginPct    float64 // average assumed FCF margin, percent
	DiscountPct  float64
	TerminalPct  float64
	CurrentPrice float64
}

func solveCell(out dcf.SolveOutcome) string {
	if !out.Converged {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", out.Percent)
}

// Text renders the classic console block: assumptions, fair value, upside, and
// the three "to justify the current price" alternatives.
func Text(in Inputs, res *dcf.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your inputs, for next %d years,\n", in.Years)
	fmt.Fprintf(&b, "Assuming %.2f%% of average annual revenue growth,\n", res.ImpliedCAGRPct)
	fmt.Fprintf(&b, "         %.2f%% of free cash flow margin, and\n", in.MarginPct)
	fmt.Fprintf(&b, "         %.2f%% of terminal growth rate,\n\n", in.TerminalPct)
	fmt.Fprintf(&b, "The fair value for %s stock is $%.2f to get %.2f%% of annualized return for next %d years.\n",
		in.Ticker, res.FairValuePerShare, in.DiscountPct, in.Years)
	fmt.Fprintf(&b, "\nBased on previous close price of $%.2f, the upside/downside is %.2f%%\n",
		in.CurrentPrice, res.UpDownsidePct)
	fmt.Fprintf(&b, "\nTo justify the current stock price of $%.2f, Either,\n", in.CurrentPrice)
	fmt.Fprintf(&b, "%s would have to grow at %s average annual rate for next %d years\n",
		in.Ticker, solveCell(res.RequiredRevenueGrowth), in.Years)
	fmt.Fprintf(&b, "  or     have free cash flow margin of %s\n", solveCell(res.RequiredFCFMargin))
	fmt.Fprintf(&b, "  or     you get %s annualized return for next %d years compared to assumed %.2f%%\n",
		solveCell(res.RequiredDiscountRate), in.Years, in.DiscountPct)
	return b.String()
}
