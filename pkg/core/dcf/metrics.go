package dcf

import "math"

// round2 rounds to 2 decimal places, the precision of all reported percentages.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ImpliedCAGRPercent returns the compound annual growth rate implied by a growth
// schedule, as a percent rounded to 2 decimals. A uniform schedule is its own
// CAGR. For a per-year schedule the factors are compounded into one multiplier
// and the N-th root taken with the sign extracted first, so a cumulative decline
// past -100% stays real instead of producing a complex root.
//
// FORMULA: CAGR = sign(M) × (|M|^(1/N) − 1), M = Π (1 + g_i)
func ImpliedCAGRPercent(growth Schedule, years int) float64 {
	if growth.IsUniform() {
		return round2(100 * growth.Materialize(1)[0])
	}
	m := 1.0
	for _, g := range growth.Materialize(years) {
		m *= 1 + g
	}
	sign := 1.0
	if m < 0 {
		sign = -1.0
	}
	return round2(sign * 100 * (math.Pow(math.Abs(m), 1/float64(years)) - 1))
}

// UpDownsidePercent returns how far fair value sits from the current price, as
// a percent of the price rounded to 2 decimals. Positive means undervalued.
func UpDownsidePercent(fairValue, currentPrice float64) (float64, error) {
	if currentPrice <= 0 {
		return 0, &InvalidMarketFactError{Reason: "current price must be positive for upside/downside"}
	}
	return round2((fairValue - currentPrice) / currentPrice * 100), nil
}
