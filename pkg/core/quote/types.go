// Package quote retrieves the market-observed inputs of a valuation: current
// price, shares outstanding, trailing revenue, and enough financial history to
// display growth and margin trends. The valuation engine treats all of this as
// caller-supplied input; providers here are interchangeable sources.
package quote

import (
	"context"
	"fmt"

	"fairvalue/pkg/core/dcf"
)

// Snapshot is everything a provider knows about a ticker at fetch time.
// History slices are annual figures ordered newest first and may be empty
// when a source exposes only the current values.
type Snapshot struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Shares   float64 `json:"shares"`
	Revenue  float64 `json:"revenue"` // trailing twelve months

	RevenueHistory []float64 `json:"revenue_history,omitempty"`
	FCFHistory     []float64 `json:"fcf_history,omitempty"`
	SharesHistory  []float64 `json:"shares_history,omitempty"`
}

// MarketFacts converts the snapshot to the engine's input type.
func (s *Snapshot) MarketFacts() dcf.MarketFacts {
	return dcf.MarketFacts{Revenue: s.Revenue, Shares: s.Shares, Price: s.Price}
}

// Provider fetches a snapshot for a ticker. Implementations must be safe for
// concurrent use.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (*Snapshot, error)
}

// APIError is returned when an upstream data source answers with a non-OK
// status, so callers can distinguish rate limiting from bad tickers.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}
