package dcf

// Result bundles everything one valuation request produces: the forward fair
// value, the CAGR implied by the growth schedule, and the three independent
// reverse solves. Each reverse lever is held against the caller's original
// values for the other two, so the three answers do not describe one
// consistent alternate world. Each answers "what if only this changed".
type Result struct {
	FairValuePerShare float64 `json:"fair_value_per_share"`
	ImpliedCAGRPct    float64 `json:"implied_cagr_pct"`
	UpDownsidePct     float64 `json:"up_downside_pct"`

	RequiredRevenueGrowth SolveOutcome `json:"required_revenue_growth"`
	RequiredFCFMargin     SolveOutcome `json:"required_fcf_margin"`
	RequiredDiscountRate  SolveOutcome `json:"required_discount_rate"`
}

// Valuate runs the forward valuation plus all three reverse solves. A reverse
// solve failing to converge degrades only its own field (Converged=false); the
// returned error is non-nil only when the shared inputs are invalid, in which
// case nothing could be computed at all.
func Valuate(a Assumptions, f MarketFacts) (*Result, error) {
	fv, err := FairValuePerShare(a, f)
	if err != nil {
		return nil, err
	}
	upside, err := UpDownsidePercent(fv, f.Price)
	if err != nil {
		return nil, err
	}

	res := &Result{
		FairValuePerShare: fv,
		ImpliedCAGRPct:    ImpliedCAGRPercent(a.RevenueGrowth, a.Years),
		UpDownsidePct:     upside,
	}

	// Inputs already validated above; per-lever NonConvergence is recorded in
	// the outcome itself and intentionally not propagated.
	res.RequiredRevenueGrowth, _ = SolveRequiredGrowth(a, f)
	res.RequiredFCFMargin, _ = SolveRequiredMargin(a, f)
	res.RequiredDiscountRate, _ = SolveRequiredDiscountRate(a, f)
	return res, nil
}
