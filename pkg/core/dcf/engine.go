package dcf

import "math"

// FairValuePerShare runs the forward two-stage DCF and returns the unrounded
// intrinsic value per share.
//
// FORMULA:
//
//	Revenue_i = Revenue_{i-1} × (1 + g_i)
//	FCF_i     = Revenue_i × m_i
//	PV        = Σ FCF_i / (1 + r)^i
//	TV        = FCF_N × (1 + tgr) / (r − tgr), discounted by (1 + r)^N
//	FairValue = (PV + discounted TV) / shares
//
// Cash flows are end-of-period; no intra-year adjustment. Rounding is left to
// the presentation boundary.
func FairValuePerShare(a Assumptions, f MarketFacts) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := f.Validate(); err != nil {
		return 0, err
	}
	return fairValue(a, f), nil
}

// fairValue is the validated fast path shared with the reverse solver, which
// probes thousands of candidate assumption sets per solve.
func fairValue(a Assumptions, f MarketFacts) float64 {
	growth := a.RevenueGrowth.Materialize(a.Years)
	margin := a.FCFMargin.Materialize(a.Years)

	var pvExplicit float64
	var lastFCF, lastFactor float64
	revenue := f.Revenue
	for i := 0; i < a.Years; i++ {
		revenue *= 1 + growth[i]
		fcf := revenue * margin[i]
		factor := math.Pow(1+a.DiscountRate, float64(i+1))
		pvExplicit += fcf / factor
		lastFCF, lastFactor = fcf, factor
	}

	// Gordon growth terminal value, discounted by the final explicit-year factor.
	terminal := lastFCF * (1 + a.TerminalGrowth) / (a.DiscountRate - a.TerminalGrowth)
	terminal /= lastFactor

	return (pvExplicit + terminal) / f.Shares
}

// ProjectedRevenue returns revenue after the full horizon, compounding the
// growth schedule from the trailing revenue. Display-only convenience.
func ProjectedRevenue(a Assumptions, startingRevenue float64) float64 {
	revenue := startingRevenue
	for _, g := range a.RevenueGrowth.Materialize(a.Years) {
		revenue *= 1 + g
	}
	return revenue
}
