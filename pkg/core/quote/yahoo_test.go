package quote

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

const quoteSummaryFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "shortName": "Intel Corporation",
        "currency": "USD",
        "regularMarketPrice": {"raw": 34.50, "fmt": "34.50"}
      },
      "defaultKeyStatistics": {
        "sharesOutstanding": {"raw": 4200000000, "fmt": "4.2B"}
      },
      "financialData": {
        "totalRevenue": {"raw": 54000000000, "fmt": "54B"},
        "freeCashflow": {"raw": 9000000000, "fmt": "9B"}
      },
      "incomeStatementHistory": {
        "incomeStatementHistory": [
          {"totalRevenue": {"raw": 54000000000}},
          {"totalRevenue": {"raw": 63000000000}},
          {"totalRevenue": {"raw": 79000000000}}
        ]
      },
      "cashflowStatementHistory": {
        "cashflowStatements": [
          {"totalCashFromOperatingActivities": {"raw": 15000000000},
           "capitalExpenditures": {"raw": -25000000000}},
          {"totalCashFromOperatingActivities": {"raw": 29000000000},
           "capitalExpenditures": {"raw": -20000000000}}
        ]
      }
    }],
    "error": null
  }
}`

func TestYahooFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/INTC" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(quoteSummaryFixture))
	}))
	defer srv.Close()

	p := NewYahooProvider("")
	p.BaseURL = srv.URL

	snap, err := p.Fetch(context.Background(), "intc")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if snap.Ticker != "INTC" || snap.Name != "Intel Corporation" {
		t.Errorf("bad identity: %+v", snap)
	}
	if snap.Price != 34.50 || snap.Shares != 4.2e9 || snap.Revenue != 54e9 {
		t.Errorf("bad facts: price=%g shares=%g revenue=%g", snap.Price, snap.Shares, snap.Revenue)
	}
	if len(snap.RevenueHistory) != 3 || snap.RevenueHistory[0] != 54e9 {
		t.Errorf("bad revenue history: %v", snap.RevenueHistory)
	}
	// FCF = CFO + capex (capex negative): 15B - 25B = -10B, 29B - 20B = 9B
	if len(snap.FCFHistory) != 2 || math.Abs(snap.FCFHistory[0]+10e9) > 1 || math.Abs(snap.FCFHistory[1]-9e9) > 1 {
		t.Errorf("bad fcf history: %v", snap.FCFHistory)
	}
}

func TestYahooFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewYahooProvider("")
	p.BaseURL = srv.URL

	_, err := p.Fetch(context.Background(), "INTC")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", apiErr.StatusCode)
	}
}

func TestParseScaledNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$34.50", 34.50},
		{"4.2B", 4.2e9},
		{"1.05T", 1.05e12},
		{"345.6M", 345.6e6},
		{"12,345", 12345},
		{"980K", 980000},
	}
	for _, c := range cases {
		got, err := parseScaledNumber(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > math.Abs(c.want)*1e-12 {
			t.Errorf("%q: expected %g, got %g", c.in, c.want, got)
		}
	}
	if _, err := parseScaledNumber("-"); err == nil {
		t.Error("expected error for placeholder dash")
	}
}
