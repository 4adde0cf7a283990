package report

import (
	"fmt"
	"strings"

	"fairvalue/pkg/core/dcf"
	"fairvalue/pkg/core/utils"
)

// Markdown renders the result as a markdown document for API consumers. The
// output is checked with the markdown validator before being returned, so a
// formatting regression fails loudly instead of shipping a broken report.
func Markdown(in Inputs, res *dcf.Result, trendTable string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s DCF Valuation\n\n", in.Ticker)

	if trendTable != "" {
		b.WriteString("```\n")
		b.WriteString(trendTable)
		b.WriteString("```\n\n")
	}

	fmt.Fprintf(&b, "**Fair value per share:** $%.2f  \n", res.FairValuePerShare)
	fmt.Fprintf(&b, "**Current price:** $%.2f  \n", in.CurrentPrice)
	fmt.Fprintf(&b, "**Upside/Downside:** %.2f%%\n\n", res.UpDownsidePct)

	fmt.Fprintf(&b, "Assumptions: %.2f%% revenue CAGR, %.2f%% FCF margin, %.2f%% discount rate, %.2f%% terminal growth over %d years.\n\n",
		res.ImpliedCAGRPct, in.MarginPct, in.DiscountPct, in.TerminalPct, in.Years)

	b.WriteString("## To justify the current price\n\n")
	fmt.Fprintf(&b, "| Lever | Required value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Revenue growth | %s |\n", solveCell(res.RequiredRevenueGrowth))
	fmt.Fprintf(&b, "| FCF margin | %s |\n", solveCell(res.RequiredFCFMargin))
	fmt.Fprintf(&b, "| Annualized return | %s |\n", solveCell(res.RequiredDiscountRate))

	md := b.String()
	if !utils.ValidateMarkdown(md) {
		return "", fmt.Errorf("generated report is not valid markdown")
	}
	return md, nil
}
