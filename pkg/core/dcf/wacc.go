package dcf

// Cost-of-capital helpers for callers who want to derive the discount rate
// instead of supplying it directly.

// CostOfEquityCAPM calculates required return on equity using CAPM.
//
// FORMULA: r_e = r_f + β × MRP
func CostOfEquityCAPM(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// BlendedWACC calculates the weighted average cost of capital.
//
// FORMULA: WACC = r_d × (1 − T) × (D/V) + r_e × (E/V)
func BlendedWACC(costOfDebt, taxRate, debtWeight, costOfEquity, equityWeight float64) float64 {
	afterTaxDebtCost := costOfDebt * (1 - taxRate) * debtWeight
	return afterTaxDebtCost + costOfEquity*equityWeight
}
