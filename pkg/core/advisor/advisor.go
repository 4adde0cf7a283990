// Package advisor asks an LLM to suggest the two judgment inputs of a
// valuation (forward revenue growth and FCF margin) from the company's
// historical trend data. Suggestions are starting points for the user, never
// fed into the engine automatically.
package advisor

import (
	"context"
	"fmt"

	"fairvalue/pkg/core/agent"
	"fairvalue/pkg/core/quote"
	"fairvalue/pkg/core/utils"
)

// Suggestion is the advisor's structured answer, percents like every other
// user-facing rate.
type Suggestion struct {
	RevGrowthPct float64 `json:"rev_growth_pct"`
	FCFMarginPct float64 `json:"fcf_margin_pct"`
	Rationale    string  `json:"rationale"`
}

const systemPrompt = `You are a conservative equity analyst. Given a company's
historical revenue growth and free-cash-flow margins, suggest a forward average
annual revenue growth rate and FCF margin for a multi-year DCF valuation.
Anchor on the history; do not extrapolate one good year. Respond with JSON:
{"rev_growth_pct": <number>, "fcf_margin_pct": <number>, "rationale": "<one sentence>"}`

// Advisor produces assumption suggestions via a configured LLM provider.
type Advisor struct {
	manager *agent.Manager
}

func New(manager *agent.Manager) *Advisor {
	return &Advisor{manager: manager}
}

// Suggest builds a prompt from the snapshot's trend history and parses the
// model's JSON answer tolerantly (models wrap JSON in fences or drop quotes
// often enough that strict decoding alone is unreliable).
func (a *Advisor) Suggest(ctx context.Context, snap *quote.Snapshot, years int) (*Suggestion, error) {
	prompt := fmt.Sprintf(
		"Company: %s (%s)\nValuation horizon: %d years\n\nHistorical trends:\n%s",
		snap.Name, snap.Ticker, years, quote.TrendTable(snap))

	provider := a.manager.GetProvider("assumption_advisor")
	raw, err := provider.GenerateResponse(ctx, prompt, systemPrompt,
		map[string]interface{}{"json": true})
	if err != nil {
		return nil, fmt.Errorf("advisor generation failed: %w", err)
	}

	var s Suggestion
	if err := utils.SmartParse(utils.CleanMarkdown(raw), &s); err != nil {
		return nil, fmt.Errorf("advisor returned unparseable output: %w", err)
	}
	if s.RevGrowthPct < -100 || s.RevGrowthPct > 200 || s.FCFMarginPct < -100 || s.FCFMarginPct > 100 {
		return nil, fmt.Errorf("advisor suggestion out of range: %+v", s)
	}
	return &s, nil
}
