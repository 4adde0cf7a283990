// Package dcf implements a two-stage discounted free cash flow valuation engine
// and the reverse solves built on top of it: given the market price, find the
// single revenue growth rate, FCF margin, or discount rate that justifies it.
package dcf

import "fmt"

// Schedule is a per-year rate input that the caller may supply either as one
// rate applied to every projected year or as an explicit per-year sequence.
// The engine always works on the materialized sequence; whether the input was
// uniform is kept so CAGR can take the exact scalar path.
type Schedule struct {
	rates   []float64
	uniform bool
}

// Uniform returns a schedule that applies the same rate to every projected year.
func Uniform(rate float64) Schedule {
	return Schedule{rates: []float64{rate}, uniform: true}
}

// PerYear returns a schedule with an explicit rate for each projected year.
// The length must equal the assumption horizon; Validate enforces this.
func PerYear(rates ...float64) Schedule {
	return Schedule{rates: append([]float64(nil), rates...)}
}

// IsUniform reports whether the schedule was supplied as a single rate.
func (s Schedule) IsUniform() bool { return s.uniform }

// Materialize expands the schedule to exactly years entries.
func (s Schedule) Materialize(years int) []float64 {
	if s.uniform {
		out := make([]float64, years)
		for i := range out {
			out[i] = s.rates[0]
		}
		return out
	}
	return s.rates
}

func (s Schedule) check(name string, years int) error {
	if len(s.rates) == 0 {
		return &InvalidAssumptionError{Reason: fmt.Sprintf("%s schedule is empty", name)}
	}
	if !s.uniform && len(s.rates) != years {
		return &InvalidAssumptionError{Reason: fmt.Sprintf(
			"%s schedule has %d entries for a %d-year horizon", name, len(s.rates), years)}
	}
	return nil
}

// Assumptions are the caller-controlled inputs of a valuation. All rates are
// fractions (0.10 = 10%).
type Assumptions struct {
	RevenueGrowth  Schedule
	FCFMargin      Schedule
	Years          int
	DiscountRate   float64
	TerminalGrowth float64
}

// Validate rejects assumptions the engine cannot price. In particular a discount
// rate at or below the terminal growth rate makes the Gordon-growth terminal
// value divergent, so it is refused up front rather than producing Inf/NaN.
func (a Assumptions) Validate() error {
	if a.Years < 1 {
		return &InvalidAssumptionError{Reason: fmt.Sprintf("horizon must be at least 1 year, got %d", a.Years)}
	}
	if err := a.RevenueGrowth.check("revenue growth", a.Years); err != nil {
		return err
	}
	if err := a.FCFMargin.check("fcf margin", a.Years); err != nil {
		return err
	}
	if a.DiscountRate <= a.TerminalGrowth {
		return &InvalidAssumptionError{Reason: fmt.Sprintf(
			"discount rate %.4f must exceed terminal growth %.4f", a.DiscountRate, a.TerminalGrowth)}
	}
	return nil
}

// MarketFacts are the observed inputs supplied by a market data provider:
// trailing twelve-month revenue, shares outstanding and the current price.
type MarketFacts struct {
	Revenue float64
	Shares  float64
	Price   float64
}

// Validate enforces numeric sanity. Provenance is the provider's business.
func (f MarketFacts) Validate() error {
	if f.Revenue <= 0 {
		return &InvalidMarketFactError{Reason: fmt.Sprintf("starting revenue must be positive, got %g", f.Revenue)}
	}
	if f.Shares <= 0 {
		return &InvalidMarketFactError{Reason: fmt.Sprintf("total shares must be positive, got %g", f.Shares)}
	}
	if f.Price <= 0 {
		return &InvalidMarketFactError{Reason: fmt.Sprintf("current price must be positive, got %g", f.Price)}
	}
	return nil
}
