package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// YahooProvider implements Provider using the Yahoo Finance quoteSummary API.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooProvider creates a Yahoo Finance provider; proxyURL may be empty.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// rawValue is Yahoo's {"raw": 123, "fmt": "123"} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// quoteSummary is the subset of the quoteSummary response the valuation needs.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName          string   `json:"shortName"`
				Currency           string   `json:"currency"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
			} `json:"price"`
			DefaultKeyStatistics struct {
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				TotalRevenue rawValue `json:"totalRevenue"`
				FreeCashflow rawValue `json:"freeCashflow"`
			} `json:"financialData"`
			IncomeStatementHistory struct {
				Statements []struct {
					TotalRevenue rawValue `json:"totalRevenue"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
			CashflowStatementHistory struct {
				Statements []struct {
					TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
					CapitalExpenditures              rawValue `json:"capitalExpenditures"`
				} `json:"cashflowStatements"`
			} `json:"cashflowStatementHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Fetch retrieves price, shares, trailing revenue and annual history.
func (p *YahooProvider) Fetch(ctx context.Context, ticker string) (*Snapshot, error) {
	modules := "price,defaultKeyStatistics,financialData,incomeStatementHistory,cashflowStatementHistory"
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		p.BaseURL, url.PathEscape(strings.ToUpper(ticker)), modules)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Provider: "yahoo", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var summary quoteSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", ticker)
	}

	r := summary.QuoteSummary.Result[0]
	snap := &Snapshot{
		Ticker:   strings.ToUpper(ticker),
		Name:     r.Price.ShortName,
		Currency: r.Price.Currency,
		Price:    r.Price.RegularMarketPrice.Raw,
		Shares:   r.DefaultKeyStatistics.SharesOutstanding.Raw,
		Revenue:  r.FinancialData.TotalRevenue.Raw,
	}
	for _, st := range r.IncomeStatementHistory.Statements {
		snap.RevenueHistory = append(snap.RevenueHistory, st.TotalRevenue.Raw)
	}
	for _, st := range r.CashflowStatementHistory.Statements {
		// FCF = operating cash flow + capex (capex reported negative).
		snap.FCFHistory = append(snap.FCFHistory,
			st.TotalCashFromOperatingActivities.Raw+st.CapitalExpenditures.Raw)
	}
	if snap.Price <= 0 || snap.Shares <= 0 || snap.Revenue <= 0 {
		return nil, fmt.Errorf("yahoo: incomplete quote for %s (price=%g shares=%g revenue=%g)",
			ticker, snap.Price, snap.Shares, snap.Revenue)
	}
	return snap, nil
}
