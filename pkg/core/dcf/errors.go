package dcf

import "fmt"

// InvalidAssumptionError indicates a structurally bad set of valuation assumptions
// (non-positive horizon, schedule length mismatch, discount rate at or below the
// terminal growth rate). The engine rejects these before computing anything.
type InvalidAssumptionError struct {
	Reason string
}

func (e *InvalidAssumptionError) Error() string {
	return fmt.Sprintf("invalid assumption: %s", e.Reason)
}

// InvalidMarketFactError indicates a market observation that makes the arithmetic
// meaningless (non-positive revenue, shares, or price).
type InvalidMarketFactError struct {
	Reason string
}

func (e *InvalidMarketFactError) Error() string {
	return fmt.Sprintf("invalid market fact: %s", e.Reason)
}

// NonConvergenceError reports a single failed reverse solve. The other levers and
// the forward fair value remain valid; callers should degrade only the affected field.
type NonConvergenceError struct {
	Lever    string
	Residual float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("reverse solve for %s did not converge (residual %g)", e.Lever, e.Residual)
}
