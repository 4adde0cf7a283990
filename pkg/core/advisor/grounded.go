package advisor

import (
	"context"
	"fmt"

	"fairvalue/pkg/core/utils"
)

// MarketContext fetches a short search-grounded commentary on a company's
// current growth outlook, served next to the trend table. The heavy lifting
// (search tool wiring, citation extraction) lives in the provider; this only
// shapes the question.
func (a *Advisor) MarketContext(ctx context.Context, ticker, name string) (string, error) {
	prompt := fmt.Sprintf(
		"In at most three sentences of plain markdown, summarize the current revenue growth outlook and analyst expectations for %s (ticker %s).",
		name, ticker)

	provider := a.manager.GetProvider("market_context")
	raw, err := provider.GenerateResponse(ctx, prompt, "", map[string]interface{}{
		"google_search": true,
	})
	if err != nil {
		return "", fmt.Errorf("market context generation failed: %w", err)
	}
	if raw == "" {
		return "", fmt.Errorf("market context: empty response")
	}
	return utils.CleanMarkdown(raw), nil
}
